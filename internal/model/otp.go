package model

import "time"

// OTP protocol parameters.
const (
	OTPTTL         = 5 * time.Minute
	OTPMaxAttempts = 3
	OTPCodeMin     = 10000
	OTPCodeMax     = 99999
)

// OTPEntry is an ephemeral verification record keyed by mobile number.
// At most one live entry exists per mobile; a new issuance overwrites it.
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// OTPStore is keyed volatile storage for one-time codes. Do serializes
// compound read-modify-write sequences for a single mobile; Set, Get and
// Delete are safe to call from inside the passed function.
type OTPStore interface {
	Set(mobile string, entry OTPEntry)
	Get(mobile string) (OTPEntry, bool)
	Delete(mobile string) bool
	Do(mobile string, fn func())
}
