package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/mforoutan/nak-tender-manager-sub001/internal/api/http/context"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/testutil"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/token"
)

const cookieName = "session"

func sessionFixture() model.SessionUser {
	return model.SessionUser{UserID: uuid.New(), CompanyID: uuid.New(), Username: "contractor01"}
}

func TestAuthenticate_ValidCookie(t *testing.T) {
	tokens := token.NewJWT("secret")
	ctxMgr := httpctx.NewManager()
	m := NewAuthenticate(tokens, ctxMgr, cookieName, testutil.MakeNoopLogger())

	user := sessionFixture()
	tokenString, err := tokens.GenerateSessionToken(user)
	require.NoError(t, err)

	var gotUser model.SessionUser
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = ctxMgr.GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: tokenString})
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, user.UserID, gotUser.UserID)
}

func TestAuthenticate_MissingCookie(t *testing.T) {
	m := NewAuthenticate(token.NewJWT("secret"), httpctx.NewManager(), cookieName, testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expired := token.NewJWTWithTTL("secret", -1)
	tokenString, err := expired.GenerateSessionToken(sessionFixture())
	require.NoError(t, err)

	m := NewAuthenticate(token.NewJWT("secret"), httpctx.NewManager(), cookieName, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: tokenString})
	rec := httptest.NewRecorder()

	m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ForeignSignature(t *testing.T) {
	other := token.NewJWT("other-secret")
	tokenString, err := other.GenerateSessionToken(sessionFixture())
	require.NoError(t, err)

	m := NewAuthenticate(token.NewJWT("secret"), httpctx.NewManager(), cookieName, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: tokenString})
	rec := httptest.NewRecorder()

	m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign signature")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
