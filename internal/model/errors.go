package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no matching record exists.
var ErrNotFound = errors.New("record not found")

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDataMissing = errors.New("company record missing for user")
	ErrUnauthenticated    = errors.New("authentication required")
)

// Token verification errors. Callers treat all three as a rejected token;
// they are distinguished only for diagnostics.
var (
	ErrTokenExpired   = errors.New("session token expired")
	ErrTokenSignature = errors.New("session token signature invalid")
	ErrTokenMalformed = errors.New("session token malformed")
)

// OTP protocol errors.
var (
	ErrInvalidMobile    = errors.New("mobile number must be 11 digits starting with 09")
	ErrInvalidCode      = errors.New("verification code must be 5 digits")
	ErrMobileRegistered = errors.New("mobile number already registered")
	ErrCodeNotFound     = errors.New("no verification code issued for this mobile")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrTooManyAttempts  = errors.New("verification attempts exhausted")
	ErrCodeMismatch     = errors.New("verification code mismatch")
)

// CodeMismatchError is returned on a wrong-but-not-final verification attempt.
// It unwraps to ErrCodeMismatch and carries the attempts the caller has left.
type CodeMismatchError struct {
	RemainingAttempts int
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("verification code mismatch, %d attempts remaining", e.RemainingAttempts)
}

func (e *CodeMismatchError) Unwrap() error {
	return ErrCodeMismatch
}
