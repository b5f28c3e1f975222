package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrQuotaExhausted = errors.New("quota exhausted")
	ErrStorage        = errors.New("storage error")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// storageError keeps the driver message so it reaches the response body.
func storageError(op string, err error) error {
	return fmt.Errorf("%w while %s: %v", ErrStorage, op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
