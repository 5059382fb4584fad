package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/fault"
)

// StartParams identify the actor and scope a new session covers.
type StartParams struct {
	ProjectID      uint
	JurisdictionID uint
	UserID         uint
	Role           Role
}

// Hub owns every live session. Sessions are in-memory only; nothing here
// touches durable local storage.
type Hub struct {
	backend        Backend
	debounceWindow time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub(backend Backend) *Hub {
	return &Hub{
		backend:        backend,
		debounceWindow: 0, // savequeue default
		sessions:       make(map[string]*Session),
	}
}

// Start creates a session, runs its initial load, and registers it.
func (h *Hub) Start(ctx context.Context, params StartParams) (*Session, error) {
	s := newSession(uuid.NewString(), h.backend, params.ProjectID, params.JurisdictionID, params.UserID, params.Role, h.debounceWindow)
	if err := s.Start(ctx); err != nil {
		return nil, fmt.Errorf("error starting session for project %d: %w", params.ProjectID, err)
	}
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	log.Info().Str("sessionID", s.ID).Uint("projectID", params.ProjectID).
		Uint("jurisdictionID", params.JurisdictionID).Uint("userID", params.UserID).
		Msg("Coding session started")
	return s, nil
}

// Get looks a live session up by id.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, fault.ErrNotFound)
	}
	return s, nil
}

// Close ends a session and drops it from the hub.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if ok {
		s.Close()
	}
}
