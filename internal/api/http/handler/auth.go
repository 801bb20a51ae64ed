package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// AuthService defines login and session refresh operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (model.SessionUser, error)
	Refresh(ctx context.Context, current model.SessionUser, groups []string) model.SessionUser
}

// CookieSettings describes the session cookie contract.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Auth handles HTTP endpoints for session management.
type Auth struct {
	authService    AuthService
	tokens         model.TokenManager
	contextManager model.ContextManager
	cookie         CookieSettings
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokens model.TokenManager, contextManager model.ContextManager, cookie CookieSettings, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokens:         tokens,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User model.SessionUser `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Login authenticates credentials and sets the session cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	h.logger.Debug("Auth handler: processing login request", "username", req.Username)

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	if !h.issueCookie(w, user) {
		return
	}

	h.logger.Info("Auth handler: login completed", "username", req.Username)

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Logout deletes the session cookie. The token itself stays cryptographically
// valid until its natural expiry; logout is client-side only. Idempotent.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Verify returns the session payload of the authenticated request.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		handleError(w, model.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

type refreshRequest struct {
	RefreshFields []string `json:"refreshFields"`
}

// Refresh re-fetches the requested (or absent) derived field groups, merges
// them into the session payload and re-issues the cookie with a new token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		handleError(w, model.ErrUnauthenticated)
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Debug("Auth handler: processing refresh request",
		"user_id", user.UserID,
		"fields", req.RefreshFields)

	refreshed := h.authService.Refresh(r.Context(), user, req.RefreshFields)

	if !h.issueCookie(w, refreshed) {
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: refreshed})
}

func (h *Auth) issueCookie(w http.ResponseWriter, user model.SessionUser) bool {
	tokenString, err := h.tokens.GenerateSessionToken(user)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue session token",
			"user_id", user.UserID,
			"error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return true
}
