package model

// TokenManager issues and verifies signed session tokens.
type TokenManager interface {
	GenerateSessionToken(user SessionUser) (string, error)
	ParseSessionToken(token string) (SessionUser, error)
}
