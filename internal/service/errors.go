package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput wraps validation failures so handlers can answer 400.
	ErrInvalidInput = errors.New("invalid input")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
