// Package client implements the UI-side state handling: an optimistic
// mirror of the budget aggregates and the reconciliation loop that
// keeps it in sync with authoritative server state.
package client

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/ledger"
)

// PendingCategoryID is the temporary sentinel id an optimistically
// added category carries until the authoritative row arrives.
var PendingCategoryID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

// Snapshot is an immutable local mirror of the category aggregate
// summary. Transitions return a new Snapshot and never perform I/O;
// callers invoke the real write separately and either roll back on
// failure or sync on authoritative arrival.
type Snapshot struct {
	Categories       []ledger.CategorySummary `json:"categories"`
	TotalBudgetCaps  decimal.Decimal          `json:"totalBudgetCaps"`
	UnallocatedFunds decimal.Decimal          `json:"unallocatedFunds"`
}

// NewSnapshot builds a Snapshot from an authoritative server summary.
func NewSnapshot(summary ledger.LedgerSummary) Snapshot {
	categories := make([]ledger.CategorySummary, len(summary.Categories))
	copy(categories, summary.Categories)

	return Snapshot{
		Categories:       categories,
		TotalBudgetCaps:  summary.TotalBudgetCaps,
		UnallocatedFunds: summary.UnallocatedFunds,
	}
}

func (s Snapshot) clone() Snapshot {
	categories := make([]ledger.CategorySummary, len(s.Categories))
	copy(categories, s.Categories)
	s.Categories = categories
	return s
}

// AddCategory inserts a zero-spend category under the pending sentinel
// id and claims its cap from the unallocated funds.
func (s Snapshot) AddCategory(name string, budgetCap decimal.Decimal) Snapshot {
	next := s.clone()

	next.Categories = append(next.Categories, ledger.CategorySummary{
		CategoryID:            PendingCategoryID,
		Name:                  name,
		BudgetCap:             budgetCap,
		ActualSpend:           decimal.Zero,
		Remaining:             budgetCap,
		UtilizationPercentage: decimal.Zero,
	})
	next.TotalBudgetCaps = next.TotalBudgetCaps.Add(budgetCap)
	next.UnallocatedFunds = next.UnallocatedFunds.Sub(budgetCap)

	return next
}

// UpdateBudget sets a new cap for a category, recomputing the derived
// fields from its already known spend, and adjusts both totals by the
// cap delta.
func (s Snapshot) UpdateBudget(id uuid.UUID, newCap decimal.Decimal) Snapshot {
	next := s.clone()

	for i, category := range next.Categories {
		if category.CategoryID != id {
			continue
		}

		capDelta := newCap.Sub(category.BudgetCap)
		category.BudgetCap = newCap
		category.Remaining = newCap.Sub(category.ActualSpend)
		category.UtilizationPercentage = ledger.Utilization(newCap, category.ActualSpend)
		next.Categories[i] = category

		next.TotalBudgetCaps = next.TotalBudgetCaps.Add(capDelta)
		next.UnallocatedFunds = next.UnallocatedFunds.Sub(capDelta)
		break
	}

	return next
}

// UpdateName renames a category.
func (s Snapshot) UpdateName(id uuid.UUID, newName string) Snapshot {
	next := s.clone()

	for i, category := range next.Categories {
		if category.CategoryID == id {
			category.Name = newName
			next.Categories[i] = category
			break
		}
	}

	return next
}

// DeleteCategory removes a category and reverses its cap contribution
// to both totals.
func (s Snapshot) DeleteCategory(id uuid.UUID) Snapshot {
	next := s.clone()

	for i, category := range next.Categories {
		if category.CategoryID != id {
			continue
		}

		next.Categories = append(next.Categories[:i], next.Categories[i+1:]...)
		next.TotalBudgetCaps = next.TotalBudgetCaps.Sub(category.BudgetCap)
		next.UnallocatedFunds = next.UnallocatedFunds.Add(category.BudgetCap)
		break
	}

	return next
}

// Projector holds the live snapshot. Speculative transitions are
// applied immediately on user action; Rollback restores a prior
// snapshot wholesale after a failed write, Sync replaces the state with
// authoritative server data.
type Projector struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// NewProjector returns a projector holding an empty snapshot.
func NewProjector() *Projector {
	return &Projector{}
}

// Current returns the live snapshot.
func (p *Projector) Current() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot
}

// Apply runs a transition against the live snapshot and returns the
// snapshot it replaced, to be kept for Rollback.
func (p *Projector) Apply(transition func(Snapshot) Snapshot) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	previous := p.snapshot
	p.snapshot = transition(p.snapshot)
	return previous
}

// Rollback replaces the live state wholesale with a prior snapshot.
func (p *Projector) Rollback(previous Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot = previous
}

// Sync replaces the live state wholesale with authoritative data.
func (p *Projector) Sync(summary ledger.LedgerSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot = NewSnapshot(summary)
}
