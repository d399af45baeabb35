package controllers

import (
	"errors"
	"net/http"

	"github.com/Fooshman135/BensBudget/internal/budget"
	"github.com/Fooshman135/BensBudget/internal/models"
)

type httpError struct {
	Error string `json:"error"`
}

var errActiveBudget = errors.New("the budget that is currently open cannot be deleted")

// status returns the appropriate HTTP status for an error from the ledger,
// the models or the budget registry.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, budget.ErrNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
