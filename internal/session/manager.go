// Package session manages the single-slot session record that lets a
// signed-in user be rehydrated without re-entering the password. Its
// backing store is session-scoped: unlike the credential store, it does not
// survive between OS sessions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lexazver/teamboard/internal/common"
	"github.com/lexazver/teamboard/internal/logging"
	"github.com/lexazver/teamboard/internal/models"
	"github.com/lexazver/teamboard/internal/storage"
)

// sessionKey is the single kv slot: at most one active login per session.
const sessionKey = "session"

type Manager struct {
	store storage.Store
	log   logging.Logger
}

func NewManager(store storage.Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Save overwrites the session slot.
func (m *Manager) Save(ctx context.Context, s *models.Session) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return m.store.Set(ctx, sessionKey, blob)
}

// Load returns the stored session, or (nil, nil) when the slot is empty.
// A malformed record is treated as absent: the slot is cleared and a
// warning logged, so corruption never propagates to callers as an error.
func (m *Manager) Load(ctx context.Context) (*models.Session, error) {
	blob, err := m.store.Get(ctx, sessionKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(blob, &s); err != nil {
		m.log.Warn(ctx, "clearing malformed session record",
			"error", fmt.Errorf("%w: %v", common.ErrCorruptSession, err))
		if cerr := m.store.Delete(ctx, sessionKey); cerr != nil {
			m.log.Warn(ctx, "failed to clear session slot", "error", cerr)
		}
		return nil, nil
	}
	return &s, nil
}

// Clear removes the session slot.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, sessionKey)
}
