package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

func newService(secret string) *Service {
	return New(
		&config.Jwt{Secret: secret, Expiry: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	svc := newService("test-secret")
	u, err := domain.NewUser("alice", "pw")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	id, err := svc.CurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
}

func TestCurrentUserIDMissingClaim(t *testing.T) {
	svc := newService("test-secret")
	token := jwt.New(jwt.SigningMethodHS256)

	_, err := svc.CurrentUserID(token)
	assert.Error(t, err)
}

func TestCurrentUserIDBadUUID(t *testing.T) {
	svc := newService("test-secret")
	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims.(jwt.MapClaims)["user_id"] = "not-a-uuid"

	_, err := svc.CurrentUserID(token)
	assert.Error(t, err)
}

func TestTokenSignedWithConfiguredSecret(t *testing.T) {
	svc := newService("secret-a")
	u, err := domain.NewUser("bob", "pw")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}
