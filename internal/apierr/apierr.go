package apierr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound tags a missing-entity error with a 404 for the HTTP edge.
func NotFound(err error) *Error {
	return New(http.StatusNotFound, "not_found", err)
}

// Conflict tags a uniqueness violation with a 409.
func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}
