package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StartingBalancePayee is the reserved payee of the synthetic transaction
// that records an account's opening balance.
const StartingBalancePayee = "Starting Balance"

// Transaction represents money moving in or out of an account.
//
// Amount is signed: positive for an inflow, negative for an outflow.
// CategoryID is nil only for income and zero-amount transactions, in which
// case the amount is routed to the unassigned funds pool.
type Transaction struct {
	DefaultModel
	UID        uint64          `json:"uid" gorm:"uniqueIndex:transaction_uid"`
	AccountID  uuid.UUID       `json:"accountId"`
	Account    Account         `json:"-"`
	CategoryID *uuid.UUID      `json:"categoryId"`
	Category   Category        `json:"-"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Payee      string          `json:"payee"`
	Date       time.Time       `json:"date"`
	Memo       string          `json:"memo"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
//   - normalizes a pointer to the nil UUID to a nil CategoryID
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Payee = strings.TrimSpace(t.Payee)
	t.Memo = strings.TrimSpace(t.Memo)

	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
