package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category represents an envelope that money from the accounts is assigned to.
//
// Value is the amount currently assigned to the envelope. It goes negative
// when the envelope is overspent.
type Category struct {
	DefaultModel
	Name  string          `json:"name" gorm:"uniqueIndex:category_name"`
	Value decimal.Decimal `json:"value" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from the name.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
