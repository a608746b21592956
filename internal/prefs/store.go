// Package prefs persists per-profile dashboard preferences as JSON
// files. A profile ID is just a request parameter; there is no identity
// behind it.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/platform/logging"
)

var ErrNotFound = errors.New("profile not found")

// Profile holds one viewer's dashboard setup.
type Profile struct {
	SelectedSports []string  `json:"selected_sports"`
	Favorites      []string  `json:"favorites"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultProfile is what a brand-new viewer sees.
func DefaultProfile() Profile {
	return Profile{
		SelectedSports: []string{"nba", "nfl", "nhl", "mlb"},
		Favorites:      []string{},
	}
}

type Store struct {
	dir    string
	logger *logging.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewStore(dir string, logger *logging.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("prefs dir is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

// Load reads one profile. Callers treat ErrNotFound as "use defaults".
func (s *Store) Load(_ context.Context, profileID string) (Profile, error) {
	path, err := s.path(profileID)
	if err != nil {
		return Profile{}, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Profile{}, fmt.Errorf("%w: profile=%s", ErrNotFound, profileID)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save writes a profile, stamping created/updated times.
func (s *Store) Save(ctx context.Context, profileID string, p Profile) (Profile, error) {
	path, err := s.path(profileID)
	if err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if existing, loadErr := s.Load(ctx, profileID); loadErr == nil && !existing.CreatedAt.IsZero() {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.SelectedSports == nil {
		p.SelectedSports = []string{}
	}
	if p.Favorites == nil {
		p.Favorites = []string{}
	}

	raw, err := sonic.Marshal(p)
	if err != nil {
		return Profile{}, fmt.Errorf("encode profile: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "profile-*.tmp")
	if err != nil {
		return Profile{}, fmt.Errorf("write profile: %w", err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.Write(raw)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpName, path)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return Profile{}, fmt.Errorf("write profile: %w", writeErr)
	}
	return p, nil
}

// Update applies fn to the stored profile, creating it from the default
// when missing.
func (s *Store) Update(ctx context.Context, profileID string, fn func(*Profile)) (Profile, error) {
	p, err := s.Load(ctx, profileID)
	if errors.Is(err, ErrNotFound) {
		p = DefaultProfile()
	} else if err != nil {
		return Profile{}, err
	}
	fn(&p)
	return s.Save(ctx, profileID, p)
}

// Delete removes a profile. Deleting a missing profile is not an error.
func (s *Store) Delete(_ context.Context, profileID string) error {
	path, err := s.path(profileID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (s *Store) path(profileID string) (string, error) {
	id := sanitizeID(profileID)
	if id == "" {
		return "", fmt.Errorf("profile id is required")
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func sanitizeID(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
