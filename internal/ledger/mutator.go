package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/notify"
)

// UpdateAccountTransaction applies a partial update to an account-side
// record, recomputes the balance delta from the sign function and
// propagates the change to a linked budget-side record.
//
// The linked-pair propagation is best-effort: its failure is logged but
// does not fail the primary update. This is a documented eventual
// consistency gap, not an oversight.
func (s *Service) UpdateAccountTransaction(req UpdateAccountTransactionRequest) (models.AccountTransaction, error) {
	if err := req.Validate(); err != nil {
		return models.AccountTransaction{}, err
	}

	var row models.AccountTransaction
	if err := s.db.First(&row, req.ID).Error; err != nil {
		return models.AccountTransaction{}, err
	}

	var account models.Account
	if err := s.db.First(&account, row.AccountID).Error; err != nil {
		return models.AccountTransaction{}, err
	}

	magnitude := row.Amount.Abs()
	if req.Magnitude != nil {
		magnitude = req.Magnitude.Abs()
	}

	kind := row.Kind
	if req.Kind != nil {
		kind = *req.Kind
	}

	oldSigned := row.Amount
	newSigned := SignedAmount(magnitude, kind, account.Class)
	balanceDiff := newSigned.Sub(oldSigned)

	// Apply the balance delta first, then persist the row. If the row
	// persist fails, the balance change is reverted before reporting
	// the failure.
	if !balanceDiff.IsZero() {
		err := s.db.Model(&account).Update("balance", account.Balance.Add(balanceDiff)).Error
		if err != nil {
			return models.AccountTransaction{}, &StageError{Stage: "apply balance delta", Err: err}
		}
	}

	row.Amount = newSigned
	row.Kind = kind
	if req.Description != nil {
		row.Description = *req.Description
	}
	if req.Date != nil {
		row.Date = *req.Date
	}

	if err := s.db.Save(&row).Error; err != nil {
		if !balanceDiff.IsZero() {
			if revertErr := s.db.Model(&account).Update("balance", account.Balance).Error; revertErr != nil {
				return models.AccountTransaction{}, &ConsistencyError{
					Stage:           "persist account transaction",
					Err:             err,
					CompensationErr: revertErr,
				}
			}
		}

		return models.AccountTransaction{}, &StageError{Stage: "persist account transaction", Err: err}
	}

	if row.TransactionID != nil {
		s.propagateToBudgetSide(row, magnitude)
	}

	s.publish(notify.Event{Collection: notify.CollectionAccountTransactions, Op: notify.OpUpdated, LedgerID: account.LedgerID, RowID: row.ID})
	s.publish(notify.Event{Collection: notify.CollectionAccounts, Op: notify.OpUpdated, LedgerID: account.LedgerID, RowID: account.ID})

	return row, nil
}

// propagateToBudgetSide mirrors description, date and amount onto the
// linked budget-side record and keeps the category spend aggregate in
// step. Failures are logged only.
func (s *Service) propagateToBudgetSide(row models.AccountTransaction, magnitude decimal.Decimal) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, *row.TransactionID).Error; err != nil {
		s.log.Warn().Err(err).Str("accountTransaction", row.ID.String()).Msg("linked pair propagation failed")
		return
	}

	oldAmount := transaction.Amount
	transaction.Amount = BudgetAmount(magnitude, BudgetTypeForKind(row.Kind))
	transaction.Description = row.Description
	transaction.Date = row.Date

	if err := s.db.Save(&transaction).Error; err != nil {
		s.log.Warn().Err(err).Str("transaction", transaction.ID.String()).Msg("linked pair propagation failed")
		return
	}

	spendDiff := oldAmount.Sub(transaction.Amount)
	if transaction.CategoryID != nil && !spendDiff.IsZero() {
		var category models.Category
		err := s.db.First(&category, *transaction.CategoryID).Error
		if err == nil {
			err = s.db.Model(&category).Update("spend", category.Spend.Add(spendDiff)).Error
		}
		if err != nil {
			s.log.Warn().Err(err).Str("transaction", transaction.ID.String()).Msg("category spend propagation failed")
			return
		}

		s.publish(notify.Event{Collection: notify.CollectionCategories, Op: notify.OpUpdated, LedgerID: transaction.LedgerID, RowID: *transaction.CategoryID})
	}

	s.publish(notify.Event{Collection: notify.CollectionTransactions, Op: notify.OpUpdated, LedgerID: transaction.LedgerID, RowID: transaction.ID})
}

// DeleteAccountTransaction removes an account-side record, deletes the
// budget-side counterpart of a linked pair and reverses the aggregate
// contributions of both exactly once.
//
// The pair rows reference each other, so the budget side's link is
// cleared before either row is deleted, and the aggregates are only
// touched once both rows are gone. A failure before the first delete
// leaves everything untouched; a failure after it means the stores
// have diverged and is reported as a consistency warning.
func (s *Service) DeleteAccountTransaction(req DeleteAccountTransactionRequest) error {
	var row models.AccountTransaction
	if err := s.db.First(&row, req.ID).Error; err != nil {
		return err
	}

	var account models.Account
	if err := s.db.First(&account, row.AccountID).Error; err != nil {
		return err
	}

	var transaction models.Transaction
	linked := row.TransactionID != nil
	if linked {
		if err := s.db.First(&transaction, *row.TransactionID).Error; err != nil {
			return &StageError{Stage: "load linked transaction", Err: err}
		}

		if err := s.db.Model(&transaction).Update("account_transaction_id", nil).Error; err != nil {
			return &StageError{Stage: "unlink pair", Err: err}
		}
	}

	if err := s.db.Unscoped().Delete(&models.AccountTransaction{}, row.ID).Error; err != nil {
		// The pair is unlinked with both rows still present.
		return &ConsistencyError{Stage: "delete account transaction", Err: err}
	}

	if linked {
		if err := s.db.Unscoped().Delete(&models.Transaction{}, transaction.ID).Error; err != nil {
			// The account side is gone while its counterpart remains.
			return &ConsistencyError{Stage: "delete linked transaction", Err: err}
		}
	}

	// Reverse the row's contribution to the balance.
	if err := s.db.Model(&account).Update("balance", account.Balance.Sub(row.Amount)).Error; err != nil {
		return &ConsistencyError{Stage: "reverse balance delta", Err: err}
	}

	if linked && transaction.CategoryID != nil {
		var category models.Category
		err := s.db.First(&category, *transaction.CategoryID).Error
		if err == nil {
			err = s.db.Model(&category).Update("spend", category.Spend.Add(transaction.Amount)).Error
		}
		if err != nil {
			return &ConsistencyError{Stage: "reverse category spend delta", Err: err}
		}
	}

	s.publish(notify.Event{Collection: notify.CollectionAccountTransactions, Op: notify.OpDeleted, LedgerID: account.LedgerID, RowID: row.ID})
	s.publish(notify.Event{Collection: notify.CollectionAccounts, Op: notify.OpUpdated, LedgerID: account.LedgerID, RowID: account.ID})
	if linked {
		s.publish(notify.Event{Collection: notify.CollectionTransactions, Op: notify.OpDeleted, LedgerID: transaction.LedgerID, RowID: transaction.ID})
		if transaction.CategoryID != nil {
			s.publish(notify.Event{Collection: notify.CollectionCategories, Op: notify.OpUpdated, LedgerID: transaction.LedgerID, RowID: *transaction.CategoryID})
		}
	}

	return nil
}
