package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/Fooshman135/BensBudget/internal/ledger"
	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with UID
	{
		r.OPTIONS("/:uid", co.OptionsTransactionDetail)
		r.GET("/:uid", co.GetTransaction)
		r.PATCH("/:uid", co.UpdateTransaction)
		r.DELETE("/:uid", co.DeleteTransaction)
	}
}

func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// TransactionUpdate carries a partial transaction edit. Every present field
// is applied as one field-level edit with its own balance bookkeeping.
type TransactionUpdate struct {
	AccountID  *uuid.UUID       `json:"accountId"`
	CategoryID *uuid.UUID       `json:"categoryId"`
	Amount     *decimal.Decimal `json:"amount"`
	Payee      *string          `json:"payee"`
	Date       *time.Time       `json:"date"`
	Memo       *string          `json:"memo"`

	// categoryPresent distinguishes "categoryId": null, which clears the
	// category, from an absent key.
	categoryPresent bool
}

// UnmarshalJSON records whether the categoryId key was present, a null value
// and an absent key both bind to a nil pointer otherwise.
func (u *TransactionUpdate) UnmarshalJSON(data []byte) error {
	type alias TransactionUpdate
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	*u = TransactionUpdate(a)
	_, u.categoryPresent = keys["categoryId"]
	return nil
}

// GetTransactions returns all transactions, newest first. Query parameters:
// account and category filter by ID ("none" matches transactions without a
// category), payee filters with the * wildcard, from and to bound the date
// (YYYY-MM-DD, inclusive).
func (co Controller) GetTransactions(c *gin.Context) {
	transactions, err := co.Ledger.Transactions()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	filtered := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if filter.matches(transaction) {
			filtered = append(filtered, transaction)
		}
	}

	c.JSON(http.StatusOK, filtered)
}

// CreateTransaction commits a new transaction.
func (co Controller) CreateTransaction(c *gin.Context) {
	var create ledger.TransactionCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transaction, err := co.Ledger.CreateTransaction(create)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransaction returns a specific transaction.
func (co Controller) GetTransaction(c *gin.Context) {
	uid, err := httputil.UIDFromParam(c, "uid")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction, err := co.Ledger.Transaction(uid)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction applies field-level edits to a transaction. The edits
// are ordered so that an income to expense flip can set its category in the
// same request.
func (co Controller) UpdateTransaction(c *gin.Context) {
	uid, err := httputil.UIDFromParam(c, "uid")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction, err := co.Ledger.Transaction(uid)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update TransactionUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	edits := make([]func() error, 0, 6)

	if update.AccountID != nil && *update.AccountID != transaction.AccountID {
		edits = append(edits, func() error {
			return co.Ledger.SetTransactionAccount(uid, *update.AccountID)
		})
	}

	categoryEdit := func() error {
		return co.Ledger.SetTransactionCategory(uid, update.CategoryID)
	}
	amountEdit := func() error {
		return co.Ledger.SetTransactionAmount(uid, *update.Amount)
	}

	switch {
	case update.categoryPresent && update.Amount != nil:
		// A category must be in place before an amount edit turns the
		// transaction into an expense, and may only be cleared after an
		// amount edit turns it into income.
		if update.Amount.IsNegative() {
			edits = append(edits, categoryEdit, amountEdit)
		} else {
			edits = append(edits, amountEdit, categoryEdit)
		}
	case update.categoryPresent:
		edits = append(edits, categoryEdit)
	case update.Amount != nil:
		edits = append(edits, amountEdit)
	}

	if update.Payee != nil && *update.Payee != transaction.Payee {
		edits = append(edits, func() error {
			return co.Ledger.SetTransactionPayee(uid, *update.Payee)
		})
	}
	if update.Date != nil {
		edits = append(edits, func() error {
			return co.Ledger.SetTransactionDate(uid, *update.Date)
		})
	}
	if update.Memo != nil {
		edits = append(edits, func() error {
			return co.Ledger.SetTransactionMemo(uid, *update.Memo)
		})
	}

	for _, edit := range edits {
		if err := edit(); err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	transaction, err = co.Ledger.Transaction(uid)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction reverses a transaction's effects and removes it.
func (co Controller) DeleteTransaction(c *gin.Context) {
	uid, err := httputil.UIDFromParam(c, "uid")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := co.Ledger.DeleteTransaction(uid); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type transactionFilter struct {
	accountID  uuid.UUID
	categoryID uuid.UUID
	noCategory bool
	payee      string
	from, to   time.Time
}

func parseTransactionFilter(c *gin.Context) (transactionFilter, error) {
	var filter transactionFilter
	var err error

	filter.accountID, err = httputil.UUIDFromString(c.Query("account"))
	if err != nil {
		return filter, err
	}

	if category := c.Query("category"); category == "none" {
		filter.noCategory = true
	} else {
		filter.categoryID, err = httputil.UUIDFromString(category)
		if err != nil {
			return filter, err
		}
	}

	filter.payee = c.Query("payee")

	if from := c.Query("from"); from != "" {
		filter.from, err = time.Parse("2006-01-02", from)
		if err != nil {
			return filter, err
		}
	}
	if to := c.Query("to"); to != "" {
		filter.to, err = time.Parse("2006-01-02", to)
		if err != nil {
			return filter, err
		}
		filter.to = filter.to.AddDate(0, 0, 1)
	}

	return filter, nil
}

func (f transactionFilter) matches(t models.Transaction) bool {
	if f.accountID != uuid.Nil && t.AccountID != f.accountID {
		return false
	}

	if f.noCategory && t.CategoryID != nil {
		return false
	}
	if f.categoryID != uuid.Nil && (t.CategoryID == nil || *t.CategoryID != f.categoryID) {
		return false
	}

	if f.payee != "" && !glob.Glob(f.payee, t.Payee) {
		return false
	}

	if !f.from.IsZero() && t.Date.Before(f.from) {
		return false
	}
	if !f.to.IsZero() && !t.Date.Before(f.to) {
		return false
	}

	return true
}
