package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// translate maps a missing row to the caller's domain sentinel.
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isDuplicateKey recognises unique index violations. TranslateError covers
// the configured dialects; the message checks catch sessions opened without it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
