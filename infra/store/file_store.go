// Package store persists the ledger's state as JSON files under a single
// data directory: the rate cache snapshot, the append-only rate history,
// users, portfolios, and the CLI session.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

const (
	ratesFile      = "rates.json"
	historyFile    = "exchange_rates.json"
	usersFile      = "users.json"
	portfoliosFile = "portfolios.json"
	sessionFile    = "session.json"
)

// FileStore implements ratestore.Store plus the user/portfolio/session
// repositories on top of plain JSON files. Every read goes back to disk so
// concurrent refreshes from other processes are always observed.
type FileStore struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a file store rooted at dir, creating it when missing.
func New(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: logger, now: time.Now}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readJSON decodes a file into v. Missing or corrupt files report ok=false
// with a nil error so callers can self-heal with an empty structure.
func (s *FileStore) readJSON(name string, v any) (ok bool, err error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("Corrupt data file, treating as empty", "file", name, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0o644)
}

// writeJSONAtomic writes to a temp file in the same directory and renames it
// over the target, so a reader never observes a partially written file.
func (s *FileStore) writeJSONAtomic(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(name + ".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(name))
}

// LoadSnapshot reads the current rate cache snapshot.
func (s *FileStore) LoadSnapshot() (*domain.RateSnapshot, error) {
	snap := domain.EmptyRateSnapshot()
	ok, err := s.readJSON(ratesFile, snap)
	if err != nil {
		return nil, err
	}
	if !ok || snap.Pairs == nil {
		return domain.EmptyRateSnapshot(), nil
	}
	return snap, nil
}

// SaveRates replaces the snapshot with a fresh one built from rates, stamping
// every pair and last_refresh with the current time.
func (s *FileStore) SaveRates(rates map[string]float64, source string) error {
	now := s.now()
	snap := domain.RateSnapshot{
		Pairs:       make(map[string]domain.CachedRate, len(rates)),
		LastRefresh: &now,
	}
	for pair, rate := range rates {
		snap.Pairs[pair] = domain.CachedRate{
			Rate:      rate,
			UpdatedAt: now,
			Source:    source,
		}
	}
	if err := s.writeJSONAtomic(ratesFile, snap); err != nil {
		return err
	}
	s.logger.Info("Saved rates snapshot", "pairs", len(rates), "source", source)
	return nil
}

// LoadHistory reads the full history log, oldest first.
func (s *FileStore) LoadHistory() ([]domain.HistoryRecord, error) {
	var history []domain.HistoryRecord
	ok, err := s.readJSON(historyFile, &history)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.HistoryRecord{}, nil
	}
	return history, nil
}

// AppendHistory reads the full history list, appends the record, and rewrites
// the file. Acceptable for a low-volume personal ledger.
func (s *FileStore) AppendHistory(rec domain.HistoryRecord) error {
	history, err := s.LoadHistory()
	if err != nil {
		return err
	}
	history = append(history, rec)
	return s.writeJSON(historyFile, history)
}

// LoadUsers reads all registered users.
func (s *FileStore) LoadUsers() ([]domain.User, error) {
	var users []domain.User
	ok, err := s.readJSON(usersFile, &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.User{}, nil
	}
	return users, nil
}

// SaveUsers rewrites the user list.
func (s *FileStore) SaveUsers(users []domain.User) error {
	return s.writeJSON(usersFile, users)
}

// LoadPortfolios reads all portfolios.
func (s *FileStore) LoadPortfolios() ([]domain.Portfolio, error) {
	var portfolios []domain.Portfolio
	ok, err := s.readJSON(portfoliosFile, &portfolios)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Portfolio{}, nil
	}
	return portfolios, nil
}

// SavePortfolios rewrites the portfolio list.
func (s *FileStore) SavePortfolios(portfolios []domain.Portfolio) error {
	return s.writeJSON(portfoliosFile, portfolios)
}

type sessionData struct {
	UserID uuid.UUID `json:"user_id"`
}

// LoadSession returns the logged-in user ID, if any.
func (s *FileStore) LoadSession() (uuid.UUID, bool, error) {
	var sess sessionData
	ok, err := s.readJSON(sessionFile, &sess)
	if err != nil {
		return uuid.Nil, false, err
	}
	if !ok || sess.UserID == uuid.Nil {
		return uuid.Nil, false, nil
	}
	return sess.UserID, true, nil
}

// SaveSession records the logged-in user ID.
func (s *FileStore) SaveSession(userID uuid.UUID) error {
	return s.writeJSON(sessionFile, sessionData{UserID: userID})
}

// ClearSession removes the session file if present.
func (s *FileStore) ClearSession() error {
	err := os.Remove(s.path(sessionFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
