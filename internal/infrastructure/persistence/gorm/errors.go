package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// notFoundAs swaps gorm's record-not-found for the domain's own error.
func notFoundAs(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// exactlyOne checks a write that targets a single row by primary key.
func exactlyOne(result *gorm.DB, notFound error) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// isDuplicate recognises unique violations with and without TranslateError
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}
