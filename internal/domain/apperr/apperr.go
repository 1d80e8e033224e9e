package apperr

import (
	"errors"
	"sort"
	"strings"
)

// Facts shared by every domain package. Packages wrap these so the HTTP
// layer can translate them without knowing each domain.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrUnavailable     = errors.New("unavailable")
)

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

// Add keeps the first message recorded for a field.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f FieldErrors) Empty() bool { return len(f) == 0 }

// Merge copies other into f without overwriting existing messages.
func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f.Add(k, v)
	}
}

// Fields returns the field names in a stable order.
func (f FieldErrors) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError carries per-field messages; errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Fields() {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid wraps a non-empty set of field errors.
func Invalid(fields FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// InvalidField is shorthand for a single failing field.
func InvalidField(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: msg}}
}

// AsValidation extracts the field map when err is a validation failure.
func AsValidation(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
