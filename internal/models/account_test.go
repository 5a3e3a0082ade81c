package models_test

import (
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	l := suite.createTestLedger(models.Ledger{})

	account := suite.createTestAccount(models.Account{
		LedgerID: l.ID,
		Name:     " Checking ",
		Note:     " A note\t",
	})

	suite.Assert().Equal("Checking", account.Name)
	suite.Assert().Equal("A note", account.Note)
}

func (suite *TestSuiteStandard) TestAccountClassDefaultsToAsset() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})

	suite.Require().Nil(suite.db.First(&account, account.ID).Error)
	suite.Assert().Equal(models.AccountClassAsset, account.Class)
}

func (suite *TestSuiteStandard) TestAccountClassValid() {
	suite.Assert().True(models.AccountClassAsset.Valid())
	suite.Assert().True(models.AccountClassLiability.Valid())
	suite.Assert().False(models.AccountClass("checking").Valid())
	suite.Assert().False(models.AccountClass("").Valid())
}

func (suite *TestSuiteStandard) TestAccountRequiresLedger() {
	err := suite.db.Create(&models.Account{Name: "Orphaned"}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountComputedBalance() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(1000)})

	for _, amount := range []int64{200, -50} {
		err := suite.db.Create(&models.AccountTransaction{
			AccountID: account.ID,
			Amount:    decimal.NewFromInt(amount),
			Kind:      models.KindDeposit,
		}).Error
		suite.Require().Nil(err)
	}

	computed, err := account.ComputedBalance(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(1150).Equal(computed), "computed balance is %s", computed)
}

func (suite *TestSuiteStandard) TestAccountComputedBalanceWithoutTransactions() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID, OpeningBalance: decimal.NewFromInt(42)})

	computed, err := account.ComputedBalance(suite.db)
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(42).Equal(computed), "computed balance is %s", computed)
}

func (suite *TestSuiteStandard) TestAccountTransactions() {
	l := suite.createTestLedger(models.Ledger{})
	account := suite.createTestAccount(models.Account{LedgerID: l.ID})
	other := suite.createTestAccount(models.Account{LedgerID: l.ID})

	err := suite.db.Create(&models.AccountTransaction{
		AccountID: account.ID,
		Amount:    decimal.NewFromInt(10),
		Kind:      models.KindDeposit,
	}).Error
	suite.Require().Nil(err)

	transactions, err := account.Transactions(suite.db)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 1)

	transactions, err = other.Transactions(suite.db)
	suite.Require().Nil(err)
	suite.Assert().Len(transactions, 0)
}
