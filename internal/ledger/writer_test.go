package ledger_test

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
)

func testDate() time.Time {
	return time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestCreateUnifiedRejectsInvalidRequests() {
	l := suite.createTestLedger(models.Ledger{})

	tests := []struct {
		name     string
		request  ledger.CreateUnifiedRequest
		expected error
	}{
		{
			"missing description",
			ledger.CreateUnifiedRequest{LedgerID: l.ID, Magnitude: decimal.NewFromInt(10), Date: testDate(), Type: ledger.TypeExpense},
			ledger.ErrDescriptionRequired,
		},
		{
			"zero amount",
			ledger.CreateUnifiedRequest{LedgerID: l.ID, Description: "Coffee", Date: testDate(), Type: ledger.TypeExpense},
			ledger.ErrMagnitudeNotPositive,
		},
		{
			"negative amount",
			ledger.CreateUnifiedRequest{LedgerID: l.ID, Description: "Coffee", Magnitude: decimal.NewFromInt(-10), Date: testDate(), Type: ledger.TypeExpense},
			ledger.ErrMagnitudeNotPositive,
		},
		{
			"missing date",
			ledger.CreateUnifiedRequest{LedgerID: l.ID, Description: "Coffee", Magnitude: decimal.NewFromInt(10), Type: ledger.TypeExpense},
			ledger.ErrDateRequired,
		},
		{
			"invalid type",
			ledger.CreateUnifiedRequest{LedgerID: l.ID, Description: "Coffee", Magnitude: decimal.NewFromInt(10), Date: testDate(), Type: "transfer"},
			ledger.ErrTypeInvalid,
		},
	}

	for _, tt := range tests {
		_, err := suite.service.CreateUnified(tt.request)
		suite.Assert().ErrorIs(err, tt.expected, tt.name)
		suite.Assert().ErrorIs(err, ledger.ErrValidation, tt.name)
	}

	// Nothing may have been written.
	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCreateUnifiedBudgetOnly() {
	l := suite.createTestLedger(models.Ledger{})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID, BudgetCap: decimal.NewFromInt(800)})

	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Groceries run",
		Magnitude:   decimal.NewFromInt(100),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		CategoryID:  &category.ID,
		NoAccount:   true,
	})
	suite.Require().Nil(err)

	suite.Assert().Nil(result.AccountTransaction)
	suite.Assert().Nil(result.Suggested)
	suite.Assert().True(decimal.NewFromInt(-100).Equal(result.Transaction.Amount), "amount is %s", result.Transaction.Amount)
	suite.Assert().Equal("manual", result.Transaction.Source)

	suite.Require().Nil(suite.db.First(&category, category.ID).Error)
	suite.Assert().True(decimal.NewFromInt(100).Equal(category.Spend), "spend is %s", category.Spend)

	computed, err := category.ComputedSpend(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(category.Spend.Equal(computed), "aggregate %s diverges from computed %s", category.Spend, computed)
}

func (suite *TestSuiteStandard) TestCreateUnifiedLinkedPair() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(1000)})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID, BudgetCap: decimal.NewFromInt(800)})

	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Dinner",
		Magnitude:   decimal.NewFromInt(50),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		CategoryID:  &category.ID,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)
	suite.Require().NotNil(result.AccountTransaction)

	// Both records express the same event in their own sign convention
	// and reference each other.
	suite.Assert().True(decimal.NewFromInt(-50).Equal(result.Transaction.Amount), "budget amount is %s", result.Transaction.Amount)
	suite.Assert().True(decimal.NewFromInt(-50).Equal(result.AccountTransaction.Amount), "account amount is %s", result.AccountTransaction.Amount)
	suite.Assert().Equal(models.KindWithdrawal, result.AccountTransaction.Kind)

	suite.Require().NotNil(result.Transaction.AccountTransactionID)
	suite.Assert().Equal(result.AccountTransaction.ID, *result.Transaction.AccountTransactionID)
	suite.Require().NotNil(result.AccountTransaction.TransactionID)
	suite.Assert().Equal(result.Transaction.ID, *result.AccountTransaction.TransactionID)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(950).Equal(account.Balance), "balance is %s", account.Balance)

	computed, err := account.ComputedBalance(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(account.Balance.Equal(computed), "aggregate %s diverges from computed %s", account.Balance, computed)
}

func (suite *TestSuiteStandard) TestCreateUnifiedAssetAccountSequence() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(1000)})

	_, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Salary",
		Magnitude:   decimal.NewFromInt(200),
		Date:        testDate(),
		Type:        ledger.TypeIncome,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)

	_, err = suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Takeout",
		Magnitude:   decimal.NewFromInt(50),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(1150).Equal(account.Balance), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestCreateUnifiedLiabilityAccountSequence() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, Class: models.AccountClassLiability})

	// A charge grows the liability.
	_, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "New laptop",
		Magnitude:   decimal.NewFromInt(500),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)

	// A payment shrinks it.
	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Card payment",
		Magnitude:   decimal.NewFromInt(200),
		Date:        testDate(),
		Type:        ledger.TypeIncome,
		AccountID:   &account.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.KindPayment, result.AccountTransaction.Kind)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(300).Equal(account.Balance), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestCreateUnifiedAdoptsSuggestion() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	category := suite.createTestCategory(models.Category{
		LedgerID:        l.ID,
		Type:            models.CategoryTypeSavingsGoal,
		LinkedAccountID: &account.ID,
	})

	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Vacation fund",
		Magnitude:   decimal.NewFromInt(75),
		Date:        testDate(),
		Type:        ledger.TypeIncome,
		CategoryID:  &category.ID,
	})
	suite.Require().Nil(err)

	suite.Require().NotNil(result.Suggested)
	suite.Assert().Equal(ledger.ReasonLinkedSavingsGoal, result.Suggested.Reason)
	suite.Require().NotNil(result.AccountTransaction)
	suite.Assert().Equal(account.ID, result.AccountTransaction.AccountID)
}

func (suite *TestSuiteStandard) TestCreateUnifiedNoAccountSuppressesSuggestion() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	category := suite.createTestCategory(models.Category{
		LedgerID:        l.ID,
		Type:            models.CategoryTypeSavingsGoal,
		LinkedAccountID: &account.ID,
	})

	result, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Vacation fund",
		Magnitude:   decimal.NewFromInt(75),
		Date:        testDate(),
		Type:        ledger.TypeIncome,
		CategoryID:  &category.ID,
		NoAccount:   true,
	})
	suite.Require().Nil(err)

	suite.Assert().Nil(result.Suggested)
	suite.Assert().Nil(result.AccountTransaction)
}

func (suite *TestSuiteStandard) TestCreateUnifiedRequireAccount() {
	l := suite.createTestLedger(models.Ledger{})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID})

	_, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:       l.ID,
		Description:    "Unmatched",
		Magnitude:      decimal.NewFromInt(10),
		Date:           testDate(),
		Type:           ledger.TypeExpense,
		CategoryID:     &category.ID,
		RequireAccount: true,
	})
	suite.Assert().ErrorIs(err, ledger.ErrAccountRequired)
}

// When the account-side write fails, the already created budget record
// must be compensated away. No partial pair may remain.
func (suite *TestSuiteStandard) TestCreateUnifiedCompensatesOnAccountSideFailure() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(1000)})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID, BudgetCap: decimal.NewFromInt(800)})

	// Fail account-side inserts only; the budget-side insert must go
	// through so that the compensating delete is exercised.
	suite.Require().Nil(suite.db.Callback().Create().Before("gorm:create").Register("fail_account_side", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.AccountTransaction); ok {
			_ = tx.AddError(errors.New("account record store unavailable"))
		}
	}))

	_, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Dinner",
		Magnitude:   decimal.NewFromInt(50),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		CategoryID:  &category.ID,
		AccountID:   &account.ID,
	})
	suite.Require().NotNil(err)
	suite.Assert().False(ledger.IsConsistencyWarning(err), "compensation should have succeeded: %v", err)

	var stageError *ledger.StageError
	suite.Require().ErrorAs(err, &stageError)
	suite.Assert().Equal("create account transaction", stageError.Stage)

	// The budget record was rolled back and no aggregate moved.
	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(account.Balance), "balance is %s", account.Balance)

	suite.Require().Nil(suite.db.First(&category, category.ID).Error)
	suite.Assert().True(category.Spend.IsZero(), "spend is %s", category.Spend)
}

func (suite *TestSuiteStandard) TestCreateUnifiedUnknownAccount() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	unknown := account.ID
	suite.Require().Nil(suite.db.Unscoped().Delete(&models.Account{}, account.ID).Error)

	_, err := suite.service.CreateUnified(ledger.CreateUnifiedRequest{
		LedgerID:    l.ID,
		Description: "Dinner",
		Magnitude:   decimal.NewFromInt(50),
		Date:        testDate(),
		Type:        ledger.TypeExpense,
		AccountID:   &unknown,
	})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
