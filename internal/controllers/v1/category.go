package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfold/backend/internal/httputil"
	"github.com/pocketfold/backend/internal/models"
)

func (co Controller) registerCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetCategory)
		r.GET("/:id/suggested-account", co.GetSuggestedAccount)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

type CategoryEditable struct {
	LedgerID        uuid.UUID           `json:"ledgerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Name            string              `json:"name" example:"Groceries"`
	Type            models.CategoryType `json:"type" example:"regular" default:"regular"`
	LinkedAccountID *uuid.UUID          `json:"linkedAccountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88107ed9"`
	BudgetCap       decimal.Decimal     `json:"budgetCap" example:"800.00"`
	Archived        bool                `json:"archived" default:"false"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		LedgerID:        editable.LedgerID,
		Name:            editable.Name,
		Type:            editable.Type,
		LinkedAccountID: editable.LinkedAccountID,
		BudgetCap:       editable.BudgetCap,
		Archived:        editable.Archived,
	}
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	models.Category
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	if editable.Type == "" {
		editable.Type = models.CategoryTypeRegular
	}
	if !editable.Type.Valid() {
		abortWithError(c, errCategoryTypeInvalid)
		return
	}

	row := editable.model()

	if err := co.Service.DB().Create(&row).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// @Summary		List categories
// @Description	Returns a list of categories
// @Tags			Categories
// @Produce		json
// @Success		200	{array}		models.Category
// @Failure		400	{object}	httpError
// @Param			ledger	query	string	false	"Filter by ledger ID"
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	q := co.Service.DB().Order("name ASC")

	if ledgerParam := c.Query("ledger"); ledgerParam != "" {
		ledgerID, err := httputil.UUIDFromString(ledgerParam)
		if err != nil {
			abortWithError(c, err)
			return
		}
		q = q.Where(&models.Category{LedgerID: ledgerID})
	}

	var rows []models.Category
	if err := q.Find(&rows).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	models.Category
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Category
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// @Summary		Suggested account
// @Description	Returns the account that new transactions in this category should default to
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	ledger.SuggestedAccount
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id			path	string	true	"ID formatted as string"
// @Param			description	query	string	false	"Transaction description to match rules against"
// @Router			/v1/categories/{id}/suggested-account [get]
func (co Controller) GetSuggestedAccount(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	suggested, err := co.Service.SuggestAccount(id, c.Query("description"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggested)
}

// @Summary		Update category
// @Description	Updates the editable fields of a category. The spend aggregate changes through transactions only.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	models.Category
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Category
	if err := co.Service.DB().First(&row, id).Error; err != nil {
		abortWithError(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abortWithError(c, err)
		return
	}

	if editable.Type != "" && !editable.Type.Valid() {
		abortWithError(c, errCategoryTypeInvalid)
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

// @Summary		Delete category
// @Description	Deletes a category
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var row models.Category
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
