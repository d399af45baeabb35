package controllers

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

type CategoryEditable struct {
	Name         string          `json:"name"`
	InitialValue decimal.Decimal `json:"initialValue"`
}

type CategoryUpdate struct {
	Name  *string          `json:"name"`
	Delta *decimal.Decimal `json:"delta"`
}

// GetCategories returns all categories. The name query parameter filters by
// name and supports the * wildcard.
func (co Controller) GetCategories(c *gin.Context) {
	categories, err := co.Ledger.Categories()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if pattern := c.Query("name"); pattern != "" {
		filtered := make([]models.Category, 0, len(categories))
		for _, category := range categories {
			if glob.Glob(pattern, category.Name) {
				filtered = append(filtered, category)
			}
		}
		categories = filtered
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a new category funded from the unassigned funds.
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	category, err := co.Ledger.CreateCategory(editable.Name, editable.InitialValue)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategory returns a specific category.
func (co Controller) GetCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category, err := co.Ledger.Category(id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory renames a category and/or moves money between it and the
// unassigned funds. A rename and a revalue are each one atomic operation.
func (co Controller) UpdateCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var update CategoryUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if update.Name != nil {
		if err := co.Ledger.RenameCategory(id, *update.Name); err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	if update.Delta != nil {
		if err := co.Ledger.RevalueCategory(id, *update.Delta); err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	category, err := co.Ledger.Category(id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category. The confirm query parameter must repeat
// the category name.
func (co Controller) DeleteCategory(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category, err := co.Ledger.Category(id)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	confirm := c.Query("confirm") == category.Name
	if err := co.Ledger.DeleteCategory(id, confirm); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
