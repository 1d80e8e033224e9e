package application

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusSubmitted       Status = "SUBMITTED"
	StatusPendingVetting  Status = "PENDING_VETTING"
	StatusApproved        Status = "APPROVED"
	StatusDisapproved     Status = "DISAPPROVED"
	StatusForDisbursement Status = "FOR_DISBURSEMENT"
	StatusActive          Status = "ACTIVE"
	StatusFullyPaid       Status = "FULLY_PAID"
	StatusCancelled       Status = "CANCELLED"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusDraft, StatusSubmitted, StatusPendingVetting, StatusApproved, StatusDisapproved,
	StatusForDisbursement, StatusActive, StatusFullyPaid, StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports the end states of the workflow. DISAPPROVED still
// accepts cancel.
func (s Status) Terminal() bool {
	switch s {
	case StatusFullyPaid, StatusDisapproved, StatusCancelled:
		return true
	}
	return false
}

// ReceiptEligible reports whether receipts may be issued against an
// application in this status.
func (s Status) ReceiptEligible() bool {
	switch s {
	case StatusApproved, StatusForDisbursement, StatusActive:
		return true
	}
	return false
}

type Action string

const (
	ActionSubmit          Action = "submit"
	ActionStartVetting    Action = "start_vetting"
	ActionApprove         Action = "approve"
	ActionDisapprove      Action = "disapprove"
	ActionForDisbursement Action = "for_disbursement"
	ActionActivate        Action = "activate"
	ActionMarkPaid        Action = "mark_paid"
	ActionCancel          Action = "cancel"
)

// Actions lists every action in a stable order.
var Actions = []Action{
	ActionSubmit, ActionStartVetting, ActionApprove, ActionDisapprove,
	ActionForDisbursement, ActionActivate, ActionMarkPaid, ActionCancel,
}

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Action]transition{
	ActionSubmit:          {from: []Status{StatusDraft}, to: StatusSubmitted},
	ActionStartVetting:    {from: []Status{StatusSubmitted}, to: StatusPendingVetting},
	ActionApprove:         {from: []Status{StatusSubmitted, StatusPendingVetting}, to: StatusApproved},
	ActionDisapprove:      {from: []Status{StatusSubmitted, StatusPendingVetting}, to: StatusDisapproved},
	ActionForDisbursement: {from: []Status{StatusApproved}, to: StatusForDisbursement},
	ActionActivate:        {from: []Status{StatusForDisbursement}, to: StatusActive},
	ActionMarkPaid:        {from: []Status{StatusActive}, to: StatusFullyPaid},
	ActionCancel: {from: []Status{
		StatusDraft, StatusSubmitted, StatusPendingVetting,
		StatusApproved, StatusDisapproved, StatusForDisbursement,
	}, to: StatusCancelled},
}

func (a Action) Valid() bool {
	_, ok := transitions[a]
	return ok
}

// Target is the status an action leads to.
func (a Action) Target() Status { return transitions[a].to }

// RequiresDecision marks the actions only an approver may take.
func (a Action) RequiresDecision() bool {
	return a == ActionApprove || a == ActionDisapprove
}

// RequiresReason marks the actions whose payload must carry a reason.
func (a Action) RequiresReason() bool {
	return a == ActionDisapprove || a == ActionCancel
}

// Allows reports whether the action is legal from status s.
func (a Action) Allows(s Status) bool {
	for _, from := range transitions[a].from {
		if from == s {
			return true
		}
	}
	return false
}

// AllowedActions returns the legal actions from s in stable order.
func (s Status) AllowedActions() []Action {
	var out []Action
	for _, a := range Actions {
		if a.Allows(s) {
			out = append(out, a)
		}
	}
	return out
}
