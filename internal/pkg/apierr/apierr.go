package apierr

import "fmt"

// Error is an error carrying an HTTP-style status, used at external
// collaborator boundaries (registry lookups) so handlers can pass the
// upstream status through.
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

func (e *Error) HTTPStatusCode() int { return e.Status }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
