package user

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

type fakeRepo struct {
	users      []domain.User
	session    uuid.UUID
	hasSession bool
}

func (f *fakeRepo) LoadUsers() ([]domain.User, error) {
	out := make([]domain.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeRepo) SaveUsers(users []domain.User) error {
	f.users = users
	return nil
}

func (f *fakeRepo) LoadSession() (uuid.UUID, bool, error) {
	return f.session, f.hasSession, nil
}

func (f *fakeRepo) SaveSession(userID uuid.UUID) error {
	f.session = userID
	f.hasSession = true
	return nil
}

func (f *fakeRepo) ClearSession() error {
	f.session = uuid.Nil
	f.hasSession = false
	return nil
}

func newService(repo *fakeRepo) *Service {
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterAndLogin(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	u, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, "s3cret", u.Password, "password must be stored hashed")

	logged, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.True(t, repo.hasSession)
	assert.Equal(t, u.ID, repo.session)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Register("alice", "one")
	require.NoError(t, err)

	_, err = svc.Register("alice", "two")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)
	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrUserUnauthorized)
	assert.False(t, repo.hasSession, "failed login must not start a session")
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Login("nobody", "pw")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCurrentWithoutSession(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Current()
	assert.ErrorIs(t, err, domain.ErrUserUnauthorized)
}

func TestCurrentAfterLogin(t *testing.T) {
	svc := newService(&fakeRepo{})
	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	_, err = svc.Login("alice", "s3cret")
	require.NoError(t, err)

	u, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestCurrentWithDeletedUser(t *testing.T) {
	repo := &fakeRepo{session: uuid.New(), hasSession: true}
	svc := newService(repo)

	_, err := svc.Current()
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogoutClearsSession(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)
	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	_, err = svc.Login("alice", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	assert.False(t, repo.hasSession)

	_, err = svc.Current()
	assert.ErrorIs(t, err, domain.ErrUserUnauthorized)
}

func TestLogoutWhileLoggedOut(t *testing.T) {
	svc := newService(&fakeRepo{})
	assert.NoError(t, svc.Logout())
}

func TestAuthenticateDoesNotStartSession(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)
	_, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	u, err := svc.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.False(t, repo.hasSession)
}
