package models_test

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryRejectsNegativeCap() {
	l := suite.createTestLedger(models.Ledger{})

	err := suite.db.Create(&models.Category{
		LedgerID:  l.ID,
		Name:      "Groceries",
		BudgetCap: decimal.NewFromInt(-1),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetCapNegative)
}

func (suite *TestSuiteStandard) TestCategoryLinkedTypesNeedAccount() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	for _, categoryType := range []models.CategoryType{models.CategoryTypeSavingsGoal, models.CategoryTypeDebtPayment} {
		err := suite.db.Create(&models.Category{
			LedgerID: l.ID,
			Name:     string(categoryType),
			Type:     categoryType,
		}).Error
		suite.Assert().ErrorIs(err, models.ErrLinkedAccountUnset, "type %s", categoryType)

		err = suite.db.Create(&models.Category{
			LedgerID:        l.ID,
			Name:            string(categoryType),
			Type:            categoryType,
			LinkedAccountID: &account.ID,
		}).Error
		suite.Assert().Nil(err, "type %s", categoryType)
	}
}

func (suite *TestSuiteStandard) TestCategoryLinkedAccountMustExist() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	unknown := account.ID
	suite.Require().Nil(suite.db.Unscoped().Delete(&models.Account{}, account.ID).Error)

	err := suite.db.Create(&models.Category{
		LedgerID:        l.ID,
		Name:            "Vacation",
		Type:            models.CategoryTypeSavingsGoal,
		LinkedAccountID: &unknown,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryTypeValid() {
	suite.Assert().True(models.CategoryTypeRegular.Valid())
	suite.Assert().True(models.CategoryTypeSavingsGoal.Valid())
	suite.Assert().True(models.CategoryTypeDebtPayment.Valid())
	suite.Assert().False(models.CategoryType("bucket").Valid())
}

func (suite *TestSuiteStandard) TestCategoryComputedSpend() {
	l := suite.createTestLedger(models.Ledger{})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID})

	for _, amount := range []int64{-100, -250, -300} {
		err := suite.db.Create(&models.Transaction{
			LedgerID:   l.ID,
			CategoryID: &category.ID,
			Amount:     decimal.NewFromInt(amount),
		}).Error
		suite.Require().Nil(err)
	}

	// Spend is the negated sum, a net outflow is positive.
	computed, err := category.ComputedSpend(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(650).Equal(computed), "computed spend is %s", computed)

	count, err := category.TransactionCount(suite.db)
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(3), count)
}

func (suite *TestSuiteStandard) TestCategoryComputedSpendWithoutTransactions() {
	l := suite.createTestLedger(models.Ledger{})
	category := suite.createTestCategory(models.Category{LedgerID: l.ID})

	computed, err := category.ComputedSpend(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(computed.IsZero(), "computed spend is %s", computed)
}
