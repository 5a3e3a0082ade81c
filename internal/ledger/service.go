// Package ledger implements the consistency subsystem of Pocketfold:
// writing a financial event so that the per-category budget view and
// the per-account balance view stay correct, mutating or deleting an
// already recorded event including its paired counterpart, and the
// read side both views are reconciled against.
package ledger

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pocketfold/backend/internal/notify"
)

// Service executes all writes against the ledger store. The store
// handle, logger and notification hub are injected; the service holds
// no global state.
//
// Operations run synchronously per request and perform several
// sequential store calls without a wrapping transaction. Correctness
// relies on the saga compensation in this package, not on store
// atomicity.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
	hub *notify.Hub
}

// NewService returns a Service using the given store handle.
func NewService(db *gorm.DB, log zerolog.Logger, hub *notify.Hub) *Service {
	return &Service{
		db:  db,
		log: log,
		hub: hub,
	}
}

// DB exposes the injected store handle for read-only collaborators.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// publish sends a change signal unless the service runs without a hub.
func (s *Service) publish(event notify.Event) {
	if s.hub == nil {
		return
	}

	s.hub.Publish(event)
}
