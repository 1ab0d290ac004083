// Package store persists the single user settings record: identity
// token, cached session credential, preferences, directory selection and
// profile cache. One active record, get-or-create semantics.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/huihutong/passd/internal/domain/model"
)

// Settings is the persisted record. OpenID is the durable identity
// token; Satoken is the cached session credential and is never treated
// as long-lived truth.
type Settings struct {
	OpenID  string `json:"open_id"`
	Satoken string `json:"satoken"`

	Preferences model.Preferences        `json:"preferences"`
	Selection   model.DirectorySelection `json:"selection"`

	// Last-fetched profile envelopes, kept for offline display before
	// the first successful refresh.
	ProfileJSON   string `json:"profile_json"`
	LoginInfoJSON string `json:"login_info_json"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the record created on first access.
func DefaultSettings() Settings {
	return Settings{
		Preferences: model.DefaultPreferences(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// Store is the durable holder of the settings record.
//
// Load has get-or-create semantics: a missing record yields
// DefaultSettings, already persisted. Update applies fn to the current
// record and persists the result; read-modify-write sequences are
// serialized per store, so concurrent updaters never interleave.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Update(ctx context.Context, fn func(*Settings) error) error
}

// Memory is an in-process Store used by tests and as a fallback when no
// durable backend is configured.
type Memory struct {
	mu       sync.Mutex
	settings Settings
	created  bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		m.settings = DefaultSettings()
		m.created = true
	}
	return m.settings, nil
}

func (m *Memory) Save(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	m.settings = s
	m.created = true
	return nil
}

func (m *Memory) Update(_ context.Context, fn func(*Settings) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		m.settings = DefaultSettings()
		m.created = true
	}
	updated := m.settings
	if err := fn(&updated); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	m.settings = updated
	return nil
}
