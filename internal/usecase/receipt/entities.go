package receipt

import (
	domain "loan-origination/internal/domain/receipt"
)

type ListInput struct {
	ApplicationID string
	Page          int
	Limit         int
}

type ListResult struct {
	Items      []domain.Receipt `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// Recorder receives receipt counters; metrics.Metrics implements it.
type Recorder interface {
	ReceiptIssued(receiptType string)
	ReceiptVoided()
	NumberCollision(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ReceiptIssued(string) {}
func (nopRecorder) ReceiptVoided() {}
func (nopRecorder) NumberCollision(string) {}
