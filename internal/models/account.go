package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a real-world account holding money, e.g. a bank account.
//
// Balance is maintained incrementally by the ledger and is never negative,
// the model does not allow credit.
type Account struct {
	DefaultModel
	Name    string          `json:"name" gorm:"uniqueIndex:account_name"`
	Balance decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from the name.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}
