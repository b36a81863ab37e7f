package models

import (
	"errors"
)

// ErrValidation marks errors caused by bad caller input.
var ErrValidation = errors.New("validation error")
