package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// OTPService defines one-time code issuance and verification operations.
type OTPService interface {
	RequestCode(ctx context.Context, mobile string) (string, error)
	VerifyCode(ctx context.Context, mobile, code string) error
}

// OTP handles HTTP endpoints for mobile verification codes.
type OTP struct {
	otpService OTPService
	// exposeCodes returns the raw code in the response. Development only;
	// production wiring must keep this false.
	exposeCodes bool
	logger      *logger.Logger
}

// NewOTP creates a new OTP handler.
func NewOTP(otpService OTPService, exposeCodes bool, logger *logger.Logger) *OTP {
	return &OTP{
		otpService:  otpService,
		exposeCodes: exposeCodes,
		logger:      logger,
	}
}

type otpRequestBody struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
}

type otpRequestResponse struct {
	Issued  bool   `json:"issued"`
	DevCode string `json:"devCode,omitempty"`
}

type otpVerifyBody struct {
	Mobile string `json:"mobile"`
	Code   string `json:"code"`
}

type otpVerifyResponse struct {
	Verified bool `json:"verified"`
}

// Request issues a verification code for an unregistered mobile number.
func (h *OTP) Request(w http.ResponseWriter, r *http.Request) {
	var req otpRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		handleError(w, model.ErrInvalidMobile)
		return
	}

	h.logger.Debug("OTP handler: processing code request", "mobile", req.Mobile)

	code, err := h.otpService.RequestCode(r.Context(), req.Mobile)
	if err != nil {
		h.logger.Error("OTP handler: code request failed",
			"mobile", req.Mobile,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := otpRequestResponse{Issued: true}
	if h.exposeCodes {
		resp.DevCode = code
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify checks a submitted code against the stored entry.
func (h *OTP) Verify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Var(req.Mobile, "required,mobile"); err != nil {
		handleError(w, model.ErrInvalidMobile)
		return
	}
	if err := validate.Var(req.Code, "required,otpcode"); err != nil {
		handleError(w, model.ErrInvalidCode)
		return
	}

	if err := h.otpService.VerifyCode(r.Context(), req.Mobile, req.Code); err != nil {
		h.logger.Info("OTP handler: verification failed",
			"mobile", req.Mobile,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, otpVerifyResponse{Verified: true})
}
