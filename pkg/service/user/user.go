// Package user manages registration, authentication, and the CLI session.
package user

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

// Repository persists users and the single-user CLI session.
type Repository interface {
	LoadUsers() ([]domain.User, error)
	SaveUsers([]domain.User) error
	LoadSession() (uuid.UUID, bool, error)
	SaveSession(userID uuid.UUID) error
	ClearSession() error
}

// Service handles user registration and authentication.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// New creates a user service.
func New(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates a new user with a unique username.
func (s *Service) Register(username, password string) (*domain.User, error) {
	users, err := s.repo.LoadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}

	u, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}
	users = append(users, *u)
	if err := s.repo.SaveUsers(users); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "username", username, "id", u.ID)
	return u, nil
}

// Authenticate verifies credentials without touching the session. Web API
// clients use this directly since their identity lives in the bearer token.
func (s *Service) Authenticate(username, password string) (*domain.User, error) {
	users, err := s.repo.LoadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		if !users[i].CheckPassword(password) {
			s.logger.Warn("Failed login attempt", "username", username)
			return nil, domain.ErrUserUnauthorized
		}
		return &users[i], nil
	}

	s.logger.Warn("Failed login attempt: unknown user", "username", username)
	return nil, domain.ErrUserNotFound
}

// Login verifies credentials and records the session.
func (s *Service) Login(username, password string) (*domain.User, error) {
	u, err := s.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSession(u.ID); err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", "username", username)
	return u, nil
}

// Logout clears the session; logging out while logged out is not an error.
func (s *Service) Logout() error {
	if u, err := s.Current(); err == nil {
		s.logger.Info("User logged out", "username", u.Username)
	}
	return s.repo.ClearSession()
}

// Current returns the logged-in user. An empty session reports
// ErrUserUnauthorized; a session pointing at a deleted user reports
// ErrUserNotFound.
func (s *Service) Current() (*domain.User, error) {
	id, ok, err := s.repo.LoadSession()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserUnauthorized
	}
	return s.Get(id)
}

// Get returns a user by ID.
func (s *Service) Get(id uuid.UUID) (*domain.User, error) {
	users, err := s.repo.LoadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}
