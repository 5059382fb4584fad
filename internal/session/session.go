package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/htloc2506/codingdesk/internal/answers"
	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/navigator"
	"github.com/htloc2506/codingdesk/internal/savequeue"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// Role of the session's actor.
type Role int

const (
	RoleCoder Role = iota
	RoleValidator
)

// Notice is a user-visible message produced by a completion event: a save
// error banner, a conflict warning, a degraded-load warning. Notices are
// drained by the next View call.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	NoticeError    = "error"
	NoticeConflict = "conflict"
	NoticePartial  = "partial_data"
)

// Session hosts one actor's answer state engine for one project jurisdiction:
// the scheme tree, the answer store, navigation state and the save queue.
// Every event enters through a method that takes the session mutex, so state
// transitions are serialized; only network calls run outside the lock, and
// their completions re-enter the same way.
type Session struct {
	ID             string
	ProjectID      uint
	JurisdictionID uint
	UserID         uint
	Role           Role

	backend Backend

	mu               sync.Mutex
	tree             *scheme.Tree
	store            *answers.Store
	queue            *savequeue.Queue
	debounce         *savequeue.Debouncer
	current          navigator.Result
	navEpoch         uint64
	merged           *merge.MergedQuestion
	mergedByCategory map[uint]*merge.MergedQuestion
	coders           map[uint]model.User
	editsDisabled    bool
	unsavedChanges   bool
	notices          []Notice
}

func newSession(id string, backend Backend, projectID, jurisdictionID, userID uint, role Role, debounceWindow time.Duration) *Session {
	return &Session{
		ID:             id,
		ProjectID:      projectID,
		JurisdictionID: jurisdictionID,
		UserID:         userID,
		Role:           role,
		backend:        backend,
		store:          answers.NewStore(),
		queue:          savequeue.NewQueue(),
		debounce:       savequeue.NewDebouncer(debounceWindow),
		coders:         make(map[uint]model.User),
	}
}

// editable reports whether answer edits are allowed right now. Must be called
// with the session lock held.
func (s *Session) editable() error {
	if s.current.Question == nil {
		return errors.New("no active question")
	}
	if s.editsDisabled {
		return errors.New("editing is disabled: coded answers failed to load")
	}
	for _, f := range s.current.Question.Flags {
		if f.Type == model.FlagRed {
			return fmt.Errorf("question %d is stopped by a red flag", s.current.Question.ID)
		}
	}
	return nil
}

func (s *Session) notify(kind, message string) {
	s.notices = append(s.notices, Notice{Kind: kind, Message: message})
}

// Close cancels pending debounce windows. In-flight saves are not abandoned;
// their completions apply to whatever state exists when they return.
func (s *Session) Close() {
	s.debounce.Stop()
}
