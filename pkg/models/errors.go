package models

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by a bad URL or unsupported options.
var ErrInvalidInput = errors.New("invalid input")

// FetchError is returned when the target page answers with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Status)
}
