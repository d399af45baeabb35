package controllers

import (
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterBudgetRoutes registers the routes for budget files with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBudgetList)
	r.GET("", co.GetBudgets)
	r.POST("", co.CreateBudget)

	r.OPTIONS("/:name", co.OptionsBudgetDetail)
	r.DELETE("/:name", co.DeleteBudget)
}

func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

type BudgetEditable struct {
	Name string `json:"name"`
}

type Budget struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// GetBudgets lists all budgets in the data directory and marks the one this
// server has open.
func (co Controller) GetBudgets(c *gin.Context) {
	names, err := co.Budgets.List()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budgets := make([]Budget, 0, len(names))
	for _, name := range names {
		budgets = append(budgets, Budget{
			Name:   name,
			Active: name == co.ActiveBudget,
		})
	}

	c.JSON(http.StatusOK, budgets)
}

// CreateBudget sets up a new, empty budget file. The server keeps serving
// its active budget, opening another budget is a process restart.
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	session, err := co.Budgets.Create(editable.Name)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := session.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, Budget{Name: session.Name})
}

// DeleteBudget removes a budget file. The active budget cannot be deleted.
func (co Controller) DeleteBudget(c *gin.Context) {
	name := c.Param("name")

	if name == co.ActiveBudget {
		c.JSON(http.StatusBadRequest, httpError{Error: errActiveBudget.Error()})
		return
	}

	names, err := co.Budgets.List()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !slices.Contains(names, name) {
		c.JSON(http.StatusNotFound, httpError{Error: "there is no budget matching your query"})
		return
	}

	if err := co.Budgets.Delete(name); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
