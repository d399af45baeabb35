package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountNameNotUnique  = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
)
