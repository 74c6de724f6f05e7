package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyMessage  = errors.New("message must carry text, a file or an audio note")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidName   = errors.New("invalid name")
	ErrShortPassword = errors.New("password must have at least 6 characters")
)

// APIError is a semantic rejection from the API; the message is shown to the
// user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }
func (e *APIError) Conflict() bool { return e.Status == http.StatusConflict }

// FetchError marks a failed listing or loading operation. The previous state
// is always left untouched.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch failed: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// SendError marks a failed user action. No local mutation happened.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send failed: %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }
