package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"bookcatalog/internal/platform/crypto"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

// Credentials identify the single administrator allowed to modify the catalog.
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

type Service struct {
	secret   string
	admin    Credentials
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewService(secret string, admin Credentials, tokenTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		secret:   secret,
		admin:    admin,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login checks username and password and issues an admin access token.
// It returns the token and its lifetime in seconds.
func (s *Service) Login(ctx context.Context, username, password string) (string, int, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	// bcrypt runs even for an unknown username
	passOK := crypto.VerifyPassword(s.admin.PasswordHash, password)
	if !userOK || !passOK || s.admin.PasswordHash == "" {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return "", 0, ErrUnauthorized
	}

	token, jti, err := crypto.GenerateToken(s.secret, username, crypto.RoleAdmin, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	s.logger.InfoContext(ctx, "token issued", "username", username, "jti", jti)
	return token, int(s.tokenTTL.Seconds()), nil
}
