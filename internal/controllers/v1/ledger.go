package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/models"
)

func (co Controller) registerLedgerRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetLedgers)
		r.POST("", co.CreateLedger)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetLedger)
		r.GET("/:id/summary", co.GetLedgerSummary)
		r.PATCH("/:id", co.UpdateLedger)
		r.DELETE("/:id", co.DeleteLedger)
	}
}

type LedgerEditable struct {
	Name     string `json:"name" example:"Household"`
	Note     string `json:"note" example:"Our shared expenses" default:""`
	Currency string `json:"currency" example:"€" default:""`
}

func (editable LedgerEditable) model() models.Ledger {
	return models.Ledger{
		Name:     editable.Name,
		Note:     editable.Note,
		Currency: editable.Currency,
	}
}

// @Summary		Create ledger
// @Description	Creates a new ledger
// @Tags			Ledgers
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Ledger
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			ledger	body		LedgerEditable	true	"Ledger"
// @Router			/v1/ledgers [post]
func (co Controller) CreateLedger(c *gin.Context) {
	var editable LedgerEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	row := editable.model()

	if err := co.Service.DB().Create(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// @Summary		List ledgers
// @Description	Returns a list of ledgers
// @Tags			Ledgers
// @Produce		json
// @Success		200	{array}		models.Ledger
// @Failure		500	{object}	httpError
// @Router			/v1/ledgers [get]
func (co Controller) GetLedgers(c *gin.Context) {
	var rows []models.Ledger
	if err := co.Service.DB().Order("name ASC").Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get ledger
// @Description	Returns a specific ledger
// @Tags			Ledgers
// @Produce		json
// @Success		200	{object}	models.Ledger
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id} [get]
func (co Controller) GetLedger(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Ledger
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Ledger summary
// @Description	Returns the category summaries and portfolio totals of the ledger
// @Tags			Ledgers
// @Produce		json
// @Success		200	{object}	ledger.LedgerSummary
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id}/summary [get]
func (co Controller) GetLedgerSummary(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Ledger
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	summary, err := co.Service.LedgerSummary(row.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary		Update ledger
// @Description	Updates an existing ledger
// @Tags			Ledgers
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Ledger
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			ledger	body		LedgerEditable	true	"Ledger"
// @Router			/v1/ledgers/{id} [patch]
func (co Controller) UpdateLedger(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Ledger
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LedgerEditable{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	var editable LedgerEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	// Only the fields present in the body are written.
	if len(updateFields) > 0 {
		err = co.Service.DB().Model(&row).Select("", updateFields...).Updates(editable.model()).Error
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Delete ledger
// @Description	Deletes a ledger
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id} [delete]
func (co Controller) DeleteLedger(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Ledger
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	if err := co.Service.DB().Delete(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
