// Package models implements the gorm models for the Pocketfold store.
package models

import (
	"strings"

	"gorm.io/gorm"
)

// Ledger groups the accounts, categories and financial events of one user.
type Ledger struct {
	DefaultModel
	Name     string
	Note     string
	Currency string
}

// BeforeSave trims whitespace from all strings.
func (l *Ledger) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Note = strings.TrimSpace(l.Note)
	l.Currency = strings.TrimSpace(l.Currency)

	return nil
}
