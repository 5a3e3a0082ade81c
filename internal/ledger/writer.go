package ledger

import (
	"github.com/google/uuid"

	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/notify"
)

// CreateUnified records a new financial event. It writes the
// budget-side Transaction, and when a settlement account is resolved,
// the account-side AccountTransaction as a linked pair, then applies
// the aggregate deltas to the account balance and the category spend.
//
// When a later step fails, the completed steps are compensated in
// reverse order before the failure is reported: an unlinked orphan
// budget record is worse than no record.
func (s *Service) CreateUnified(req CreateUnifiedRequest) (CreateUnifiedResult, error) {
	if err := req.Validate(); err != nil {
		return CreateUnifiedResult{}, err
	}

	// Resolve the settlement account. An explicit account wins, an
	// explicit "no account" suppresses the suggestion resolver.
	var accountID *uuid.UUID
	var suggested *SuggestedAccount

	switch {
	case req.NoAccount:
	case req.AccountID != nil:
		accountID = req.AccountID
	case req.CategoryID != nil:
		suggestion, err := s.SuggestAccount(*req.CategoryID, req.Description)
		if err != nil {
			return CreateUnifiedResult{}, err
		}

		if suggestion.AccountID != nil {
			accountID = suggestion.AccountID
			suggested = &suggestion
		}
	}

	if req.RequireAccount && accountID == nil {
		return CreateUnifiedResult{}, ErrAccountRequired
	}

	// Load referenced rows before the first write so that a bad
	// reference fails validation, not compensation.
	var account models.Account
	if accountID != nil {
		if err := s.db.First(&account, *accountID).Error; err != nil {
			return CreateUnifiedResult{}, err
		}
	}

	var category models.Category
	if req.CategoryID != nil {
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			return CreateUnifiedResult{}, err
		}
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	transaction := models.Transaction{
		LedgerID:    req.LedgerID,
		CategoryID:  req.CategoryID,
		Amount:      BudgetAmount(req.Magnitude, req.Type),
		Date:        req.Date,
		Description: req.Description,
		Source:      source,
		Notes:       req.Notes,
	}

	var accountTransaction models.AccountTransaction

	steps := []step{
		{
			name: "create budget transaction",
			run: func() error {
				return s.db.Create(&transaction).Error
			},
			compensate: func() error {
				return s.db.Unscoped().Delete(&models.Transaction{}, transaction.ID).Error
			},
		},
	}

	if accountID != nil {
		kind := KindForType(req.Type, account.Class)

		steps = append(steps,
			step{
				name: "create account transaction",
				run: func() error {
					accountTransaction = models.AccountTransaction{
						AccountID:     account.ID,
						Amount:        SignedAmount(req.Magnitude, kind, account.Class),
						Kind:          kind,
						Date:          req.Date,
						Description:   req.Description,
						TransactionID: &transaction.ID,
					}
					return s.db.Create(&accountTransaction).Error
				},
				compensate: func() error {
					return s.db.Unscoped().Delete(&models.AccountTransaction{}, accountTransaction.ID).Error
				},
			},
			step{
				name: "link pair",
				run: func() error {
					transaction.AccountTransactionID = &accountTransaction.ID
					return s.db.Model(&transaction).Update("account_transaction_id", accountTransaction.ID).Error
				},
				compensate: func() error {
					return s.db.Model(&transaction).Update("account_transaction_id", nil).Error
				},
			},
			step{
				name: "apply balance delta",
				run: func() error {
					// Delta against the balance read above, written as an
					// absolute value. No compare-and-swap guards this:
					// concurrent writers to the same account can race,
					// which is accepted for single-user use.
					return s.db.Model(&account).Update("balance", account.Balance.Add(accountTransaction.Amount)).Error
				},
				compensate: func() error {
					return s.db.Model(&account).Update("balance", account.Balance).Error
				},
			},
		)
	}

	if req.CategoryID != nil {
		steps = append(steps, step{
			name: "apply category spend delta",
			run: func() error {
				return s.db.Model(&category).Update("spend", category.Spend.Sub(transaction.Amount)).Error
			},
			compensate: func() error {
				return s.db.Model(&category).Update("spend", category.Spend).Error
			},
		})
	}

	var sg saga
	if err := sg.execute(steps...); err != nil {
		if IsConsistencyWarning(err) {
			s.log.Error().Err(err).Str("ledger", req.LedgerID.String()).Msg("unified write compensation failed")
		}
		return CreateUnifiedResult{}, err
	}

	s.publish(notify.Event{Collection: notify.CollectionTransactions, Op: notify.OpCreated, LedgerID: req.LedgerID, RowID: transaction.ID})
	if req.CategoryID != nil {
		s.publish(notify.Event{Collection: notify.CollectionCategories, Op: notify.OpUpdated, LedgerID: req.LedgerID, RowID: category.ID})
	}
	if accountID != nil {
		s.publish(notify.Event{Collection: notify.CollectionAccountTransactions, Op: notify.OpCreated, LedgerID: req.LedgerID, RowID: accountTransaction.ID})
		s.publish(notify.Event{Collection: notify.CollectionAccounts, Op: notify.OpUpdated, LedgerID: req.LedgerID, RowID: account.ID})
	}

	result := CreateUnifiedResult{
		Transaction: transaction,
		Suggested:   suggested,
	}
	if accountID != nil {
		result.AccountTransaction = &accountTransaction
	}

	return result, nil
}
