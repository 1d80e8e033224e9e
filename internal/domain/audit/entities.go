package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	EntityApplication = "loan_application"
	EntityReceipt     = "orcr_receipt"
)

// Table: audit_logs
type Entry struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID     string         `gorm:"column:user_id;size:64;not null" json:"user_id"`
	Action     string         `gorm:"column:action;size:40;not null" json:"action"`
	EntityType string         `gorm:"column:entity_type;size:30;not null;index:idx_audit_logs_entity,priority:1" json:"entity_type"`
	EntityID   string         `gorm:"column:entity_id;size:32;not null;index:idx_audit_logs_entity,priority:2" json:"entity_id"`
	OldValues  datatypes.JSON `gorm:"column:old_values" json:"old_values,omitempty"`
	NewValues  datatypes.JSON `gorm:"column:new_values" json:"new_values,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

// NewEntry snapshots old and new values as JSON; nil values stay NULL.
func NewEntry(userID, action, entityType, entityID string, oldValues, newValues any) (*Entry, error) {
	e := &Entry{UserID: userID, Action: action, EntityType: entityType, EntityID: entityID}
	var err error
	if e.OldValues, err = snapshot(oldValues); err != nil {
		return nil, err
	}
	if e.NewValues, err = snapshot(newValues); err != nil {
		return nil, err
	}
	return e, nil
}

func snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListByEntity returns the trail oldest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]Entry, error)
}
