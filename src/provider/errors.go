package provider

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyInitialized = errors.New("adapter already initialized")
	ErrNotInitialized     = errors.New("adapter not initialized")
	ErrMalformedRevision  = errors.New("malformed source revision")
	ErrAuthFailed         = errors.New("authentication failed")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check that your personal access token is valid and has Build (read) scope.\n  - Set AZURE_DEVOPS_TOKEN to a valid PAT",
			Err:     err,
		}
	}

	if errors.Is(err, ErrNotInitialized) {
		return &UserError{
			Message: "Adapter not initialized",
			Hint:    "Call Initialize with a configuration source before querying builds.",
			Err:     err,
		}
	}

	return err
}
