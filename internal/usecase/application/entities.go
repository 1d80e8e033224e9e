package application

import (
	"github.com/shopspring/decimal"

	domain "loan-origination/internal/domain/application"
)

// TransitionRequest is an action with its optional payload.
type TransitionRequest struct {
	Action         string           `json:"action"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	Reason         string           `json:"reason,omitempty"`
}

func (r TransitionRequest) input() domain.TransitionInput {
	in := domain.TransitionInput{Notes: r.Notes, Reason: r.Reason}
	if r.ApprovedAmount != nil {
		in.ApprovedAmount = decimal.NewNullDecimal(*r.ApprovedAmount)
	}
	if r.InterestRate != nil {
		in.InterestRate = decimal.NewNullDecimal(*r.InterestRate)
	}
	return in
}

type ListInput struct {
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Items      []domain.Summary `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// Stats feeds the dashboard.
type Stats struct {
	Total    int64                   `json:"total"`
	Pending  int64                   `json:"pending"`
	ByStatus map[domain.Status]int64 `json:"by_status"`
	Recent   []domain.Summary        `json:"recent"`
}

// StepResult is the outcome of a stateless step check.
type StepResult struct {
	Step   int               `json:"step"`
	Name   string            `json:"name"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Recorder receives workflow counters; metrics.Metrics implements it.
type Recorder interface {
	ApplicationCreated()
	DraftSaved(step int)
	TransitionRecorded(action, outcome string)
	NumberCollision(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ApplicationCreated() {}
func (nopRecorder) DraftSaved(int) {}
func (nopRecorder) TransitionRecorded(string, string) {}
func (nopRecorder) NumberCollision(string) {}
