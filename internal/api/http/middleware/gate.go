package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// Gate classifies inbound paths as protected or auth-only and redirects
// based on session token validity. Verification here is shallow: it decides
// traversability only, per-resource authorization stays with each handler.
type Gate struct {
	tokens     model.TokenManager
	cookieName string
	protected  []string
	authOnly   []string
	authPath   string
	homePath   string
	logger     *logger.Logger
}

// NewGate creates a new Gate middleware instance. Protected paths redirect
// unauthenticated requests to authPath with the original path preserved in
// the return parameter; auth-only paths redirect authenticated requests to
// homePath.
func NewGate(tokens model.TokenManager, cookieName string, protected, authOnly []string, authPath, homePath string, logger *logger.Logger) *Gate {
	return &Gate{
		tokens:     tokens,
		cookieName: cookieName,
		protected:  protected,
		authOnly:   authOnly,
		authPath:   authPath,
		homePath:   homePath,
		logger:     logger,
	}
}

// Handle is the chi middleware function.
func (m *Gate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		valid := m.hasValidToken(r)

		switch {
		case m.classify(path) == classProtected && !valid:
			target := m.authPath + "?return=" + url.QueryEscape(path)
			http.Redirect(w, r, target, http.StatusFound)
		case m.classify(path) == classAuthOnly && valid:
			http.Redirect(w, r, m.homePath, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

type pathClass int

const (
	classOpen pathClass = iota
	classProtected
	classAuthOnly
)

// classify resolves the path against both prefix sets with longest-prefix
// semantics, so a more specific auth-only prefix can sit under a protected
// one and vice versa.
func (m *Gate) classify(path string) pathClass {
	protectedLen := longestPrefix(path, m.protected)
	authOnlyLen := longestPrefix(path, m.authOnly)

	switch {
	case protectedLen == 0 && authOnlyLen == 0:
		return classOpen
	case protectedLen >= authOnlyLen:
		return classProtected
	default:
		return classAuthOnly
	}
}

func longestPrefix(path string, prefixes []string) int {
	longest := 0
	for _, p := range prefixes {
		if len(p) > longest && matchesPrefix(path, p) {
			longest = len(p)
		}
	}
	return longest
}

// matchesPrefix matches on path segment boundaries: /panel matches /panel
// and /panel/docs but not /paneling.
func matchesPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/' || strings.HasSuffix(prefix, "/")
}

func (m *Gate) hasValidToken(r *http.Request) bool {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	if _, err := m.tokens.ParseSessionToken(cookie.Value); err != nil {
		return false
	}
	return true
}
