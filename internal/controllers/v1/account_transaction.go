package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
)

func (co Controller) registerAccountTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetAccountTransactions)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetAccountTransaction)
		r.PATCH("/:id", co.UpdateAccountTransaction)
		r.DELETE("/:id", co.DeleteAccountTransaction)
	}
}

// @Summary		List account transactions
// @Description	Returns a list of account-side transactions
// @Tags			AccountTransactions
// @Produce		json
// @Success		200	{array}		models.AccountTransaction
// @Failure		400	{object}	httpError
// @Param			account	query	string	false	"Filter by account ID"
// @Router			/v1/account-transactions [get]
func (co Controller) GetAccountTransactions(c *gin.Context) {
	q := co.Service.DB().Order("datetime(account_transactions.date) DESC, datetime(account_transactions.created_at) DESC")

	if accountParam := c.Query("account"); accountParam != "" {
		accountID, err := httputil.UUIDFromString(accountParam)
		if err != nil {
			abortWithError(c, err)
			return
		}
		q = q.Where(&models.AccountTransaction{AccountID: accountID})
	}

	var rows []models.AccountTransaction
	if err := q.Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get account transaction
// @Description	Returns a specific account-side transaction
// @Tags			AccountTransactions
// @Produce		json
// @Success		200	{object}	models.AccountTransaction
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-transactions/{id} [get]
func (co Controller) GetAccountTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.AccountTransaction
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Update account transaction
// @Description	Updates an account-side transaction. The account balance is adjusted by the amount difference, and for linked pairs the change is mirrored to the budget side.
// @Tags			AccountTransactions
// @Accept			json
// @Produce		json
// @Success		200					{object}	models.AccountTransaction
// @Failure		400					{object}	httpError
// @Failure		404					{object}	httpError
// @Failure		500					{object}	httpError
// @Param			id					path		string								true	"ID formatted as string"
// @Param			accountTransaction	body		ledger.UpdateAccountTransactionRequest	true	"AccountTransaction"
// @Router			/v1/account-transactions/{id} [patch]
func (co Controller) UpdateAccountTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var request ledger.UpdateAccountTransactionRequest
	if err := httputil.BindData(c, &request); err != nil {
		abortWithError(c, err)
		return
	}
	request.ID = id

	row, err := co.Service.UpdateAccountTransaction(request)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Delete account transaction
// @Description	Deletes an account-side transaction. The account balance is adjusted and for linked pairs the budget-side counterpart is deleted as well.
// @Tags			AccountTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/account-transactions/{id} [delete]
func (co Controller) DeleteAccountTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	err = co.Service.DeleteAccountTransaction(ledger.DeleteAccountTransactionRequest{ID: id})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
