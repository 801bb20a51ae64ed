package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

var (
	mobilePattern = regexp.MustCompile(`^09\d{9}$`)
	codePattern   = regexp.MustCompile(`^\d{5}$`)
)

// OTP implements the one-time code protocol: rate-checked issuance and
// attempt-limited verification on top of the OTP store.
type OTP struct {
	store       model.OTPStore
	credentials model.CredentialStore
	sender      model.SMSSender
	logger      *logger.Logger
}

// NewOTP creates a new OTP service.
func NewOTP(store model.OTPStore, credentials model.CredentialStore, sender model.SMSSender, logger *logger.Logger) *OTP {
	return &OTP{
		store:       store,
		credentials: credentials,
		sender:      sender,
		logger:      logger,
	}
}

// RequestCode issues a fresh 5-digit code for the mobile, overwriting any
// previous entry. The mobile must not already belong to a registered account,
// which makes this endpoint registration-only. The raw code is returned for
// non-production exposure; callers must never reveal it in production.
func (s *OTP) RequestCode(ctx context.Context, mobile string) (string, error) {
	if !mobilePattern.MatchString(mobile) {
		return "", model.ErrInvalidMobile
	}

	lookupCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	defer cancel()

	_, err := s.credentials.GetByMobile(lookupCtx, mobile)
	if err == nil {
		return "", model.ErrMobileRegistered
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("OTP service: failed to check mobile registration",
			"mobile", mobile,
			"error", err.Error())
		return "", fmt.Errorf("failed to check mobile registration: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	s.store.Do(mobile, func() {
		s.store.Set(mobile, model.OTPEntry{
			Code:      code,
			ExpiresAt: time.Now().Add(model.OTPTTL),
			Attempts:  0,
		})
	})

	if err := s.sender.Send(ctx, mobile, fmt.Sprintf("Verification code: %s", code)); err != nil {
		s.logger.Error("OTP service: failed to deliver code",
			"mobile", mobile,
			"error", err.Error())
		return "", fmt.Errorf("failed to deliver verification code: %w", err)
	}

	s.logger.Info("OTP service: code issued", "mobile", mobile)

	return code, nil
}

// VerifyCode checks the submitted code against the stored entry. The check
// order is load-bearing: expiry first, then the attempt limit, then the
// match, so expired and exhausted entries are cleaned up before an attempt
// is consumed and an exhausting failure is reported distinctly from a wrong
// code. The entry is removed on success, expiry and limit.
func (s *OTP) VerifyCode(ctx context.Context, mobile, code string) error {
	if !mobilePattern.MatchString(mobile) {
		return model.ErrInvalidMobile
	}
	if !codePattern.MatchString(code) {
		return model.ErrInvalidCode
	}

	var verifyErr error
	s.store.Do(mobile, func() {
		entry, ok := s.store.Get(mobile)
		if !ok {
			verifyErr = model.ErrCodeNotFound
			return
		}

		if time.Now().After(entry.ExpiresAt) {
			s.store.Delete(mobile)
			verifyErr = model.ErrCodeExpired
			return
		}

		if entry.Attempts >= model.OTPMaxAttempts {
			s.store.Delete(mobile)
			verifyErr = model.ErrTooManyAttempts
			return
		}

		if entry.Code != code {
			entry.Attempts++
			if entry.Attempts >= model.OTPMaxAttempts {
				s.store.Delete(mobile)
				verifyErr = model.ErrTooManyAttempts
				return
			}
			s.store.Set(mobile, entry)
			verifyErr = &model.CodeMismatchError{RemainingAttempts: model.OTPMaxAttempts - entry.Attempts}
			return
		}

		s.store.Delete(mobile)
	})

	if verifyErr != nil {
		s.logger.Info("OTP service: verification failed",
			"mobile", mobile,
			"error", verifyErr.Error())
		return verifyErr
	}

	s.logger.Info("OTP service: verification successful", "mobile", mobile)

	return nil
}

// generateCode draws a code uniformly from [OTPCodeMin, OTPCodeMax].
func generateCode() (string, error) {
	span := int64(model.OTPCodeMax - model.OTPCodeMin + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+model.OTPCodeMin), nil
}
