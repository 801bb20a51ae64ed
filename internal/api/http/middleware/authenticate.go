package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// Authenticate validates the session cookie and injects the session payload
// into the request context. Requests without a valid token get 401.
type Authenticate struct {
	tokens         model.TokenManager
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokens:         tokens,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Handle is the chi middleware function.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			m.reject(w)
			return
		}

		user, err := m.tokens.ParseSessionToken(cookie.Value)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
			m.reject(w)
			return
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": model.ErrUnauthenticated.Error()})
}
