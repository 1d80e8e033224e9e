package application

import (
	"errors"
	"fmt"
	"strings"

	"loan-origination/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("application %w", apperr.ErrNotFound)
	// ErrInvalidState: the operation needs a DRAFT application.
	ErrInvalidState = fmt.Errorf("application is not editable: %w", apperr.ErrConflict)
	// ErrStaleStatus: the status changed between read and write.
	ErrStaleStatus              = fmt.Errorf("application status changed concurrently: %w", apperr.ErrConflict)
	ErrDuplicateReferenceNumber = fmt.Errorf("duplicate reference number: %w", apperr.ErrUnavailable)
	ErrInvalidTransition        = errors.New("invalid state transition")
)

// InvalidTransitionError reports an illegal (status, action) pair together
// with what would have been legal.
type InvalidTransitionError struct {
	Current Status
	Action  Action
	Allowed []Action
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, a := range e.Allowed {
		allowed[i] = string(a)
	}
	return fmt.Sprintf("cannot %s application in status %s (allowed: [%s])",
		e.Action, e.Current, strings.Join(allowed, ", "))
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition || target == apperr.ErrConflict
}
