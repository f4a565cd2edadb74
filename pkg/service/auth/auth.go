// Package auth issues and inspects the JWT tokens used by the web API.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

// Service signs tokens for logged-in users and reads identity claims back.
type Service struct {
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// GenerateToken signs an HS256 token carrying the user identity claims.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["username"] = u.Username
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("Token signing failed", "user", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// CurrentUserID extracts the user id claim from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token has no user_id claim")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
