package handlers

import "errors"

var (
	errStateMismatch = errors.New("oauth state mismatch")
	errNoSession     = errors.New("no active session")
)
