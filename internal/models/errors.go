package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountNameNotUnique  = errors.New("the account name must be unique for the ledger")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the ledger")

	ErrBudgetCapNegative  = errors.New("the budget cap must not be negative")
	ErrLinkedAccountUnset = errors.New("savings goal and debt payment categories need a linked account")
)
