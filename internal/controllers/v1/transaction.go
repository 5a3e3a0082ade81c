package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/types"
)

func (co Controller) registerTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGet)
		r.GET("/:id", co.GetTransaction)
	}
}

// @Summary		Create transaction
// @Description	Records a financial event. Depending on the request this creates a budget-side transaction, an account-side transaction, or a cross-linked pair, and keeps the derived balances in step.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	ledger.CreateUnifiedResult
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			transaction	body		ledger.CreateUnifiedRequest	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var request ledger.CreateUnifiedRequest
	if err := httputil.BindData(c, &request); err != nil {
		abortWithError(c, err)
		return
	}

	result, err := co.Service.CreateUnified(request)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary		List transactions
// @Description	Returns budget-side transactions, optionally restricted to a calendar month
// @Tags			Transactions
// @Produce		json
// @Success		200	{array}		models.Transaction
// @Failure		400	{object}	httpError
// @Param			ledger	query	string	false	"Filter by ledger ID"
// @Param			month	query	string	false	"Only transactions in this month, formatted as YYYY-MM. Requires the ledger parameter."
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	if monthParam := c.Query("month"); monthParam != "" {
		month, err := types.ParseMonth(monthParam)
		if err != nil {
			abortWithError(c, errMonthInvalid)
			return
		}

		ledgerParam := c.Query("ledger")
		if ledgerParam == "" {
			abortWithError(c, errLedgerParameterUnset)
			return
		}

		ledgerID, err := httputil.UUIDFromString(ledgerParam)
		if err != nil {
			abortWithError(c, err)
			return
		}

		rows, err := co.Service.PeriodTransactions(ledgerID, month)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, rows)
		return
	}

	q := co.Service.DB().Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC")

	if ledgerParam := c.Query("ledger"); ledgerParam != "" {
		ledgerID, err := httputil.UUIDFromString(ledgerParam)
		if err != nil {
			abortWithError(c, err)
			return
		}
		q = q.Where(&models.Transaction{LedgerID: ledgerID})
	}

	var rows []models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get transaction
// @Description	Returns a specific budget-side transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	models.Transaction
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Transaction
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}
