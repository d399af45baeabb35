package ledger

import (
	"fmt"
	"strings"

	"github.com/Fooshman135/BensBudget/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Categories returns all categories, ordered by name.
func (l *Ledger) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := l.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Category returns a single category.
func (l *Ledger) Category(id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := l.db.First(&category, "id = ?", id).Error
	return category, err
}

// CreateCategory creates a category funded with initialValue from the
// unassigned funds pool.
//
// initialValue must be within [0, unassigned funds]. The UI may offer the
// pool maximum as a default, but the value is never clamped silently.
func (l *Ledger) CreateCategory(name string, initialValue decimal.Decimal) (models.Category, error) {
	var category models.Category

	err := l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if strings.TrimSpace(name) == "" {
			return aggregateDelta{}, ErrNameEmpty
		}

		if initialValue.IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: the initial value must not be negative", ErrValueOutOfRange)
		}

		if initialValue.GreaterThan(l.unassignedFunds) {
			return aggregateDelta{}, fmt.Errorf("%w: %s requested, %s available", ErrInsufficientUnassignedFunds, initialValue, l.unassignedFunds)
		}

		category = models.Category{Name: name, Value: initialValue}
		if err := tx.Create(&category).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{unassigned: initialValue.Neg()}, nil
	})

	return category, err
}

// RenameCategory renames a category. Transactions reference categories by ID,
// so no further writes are needed and the rename is a single atomic update.
func (l *Ledger) RenameCategory(id uuid.UUID, newName string) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		if strings.TrimSpace(newName) == "" {
			return aggregateDelta{}, ErrNameEmpty
		}

		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return aggregateDelta{}, err
		}

		if category.Name == strings.TrimSpace(newName) {
			return aggregateDelta{}, nil
		}

		if err := tx.Model(&category).Update("name", strings.TrimSpace(newName)).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{}, nil
	})
}

// RevalueCategory moves delta between the unassigned funds pool and the
// category: a positive delta assigns money to the category, a negative delta
// returns money to the pool. This is the only way money moves between a
// category and the pool outside of transactions.
//
// For a non-negative category, delta is bounded below by -value and above by
// the unassigned funds. An overspent category may only be repaired: delta
// must be positive and may raise the value at most to zero.
func (l *Ledger) RevalueCategory(id uuid.UUID, delta decimal.Decimal) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return aggregateDelta{}, err
		}

		if delta.IsZero() {
			return aggregateDelta{}, nil
		}

		if delta.GreaterThan(l.unassignedFunds) {
			return aggregateDelta{}, fmt.Errorf("%w: %s requested, %s available", ErrInsufficientUnassignedFunds, delta, l.unassignedFunds)
		}

		if category.Value.IsNegative() {
			if !delta.IsPositive() {
				return aggregateDelta{}, fmt.Errorf("%w: an overspent category may only be assigned money", ErrValueOutOfRange)
			}
			if category.Value.Add(delta).IsPositive() {
				return aggregateDelta{}, fmt.Errorf("%w: an overspent category may be raised at most to zero, %s needed", ErrValueOutOfRange, category.Value.Neg())
			}
		} else if delta.Neg().GreaterThan(category.Value) {
			return aggregateDelta{}, fmt.Errorf("%w: the category only holds %s", ErrValueOutOfRange, category.Value)
		}

		err := tx.Model(&category).Update("value", category.Value.Add(delta)).Error
		if err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{unassigned: delta.Neg()}, nil
	})
}

// DeleteCategory removes a category and returns its value to the unassigned
// funds pool. It fails when any transaction still references the category,
// and when the pool cannot absorb a negative value.
//
// The caller has to pass confirm=true, deletion is destructive and the
// presentation layer is expected to ask first.
func (l *Ledger) DeleteCategory(id uuid.UUID, confirm bool) error {
	return l.mutate(func(tx *gorm.DB) (aggregateDelta, error) {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return aggregateDelta{}, err
		}

		if !confirm {
			return aggregateDelta{}, ErrNotConfirmed
		}

		var count int64
		err := tx.Model(&models.Transaction{}).Where("category_id = ?", id).Count(&count).Error
		if err != nil {
			return aggregateDelta{}, err
		}
		if count > 0 {
			return aggregateDelta{}, fmt.Errorf("%w: %d transactions reference this category", ErrReferencedByTransactions, count)
		}

		if l.unassignedFunds.Add(category.Value).IsNegative() {
			return aggregateDelta{}, fmt.Errorf("%w: the category is overspent by %s", ErrInsufficientUnassignedFunds, category.Value.Neg())
		}

		if err := tx.Delete(&category).Error; err != nil {
			return aggregateDelta{}, err
		}

		return aggregateDelta{unassigned: category.Value}, nil
	})
}
