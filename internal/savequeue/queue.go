package savequeue

import (
	"time"

	"github.com/htloc2506/codingdesk/internal/model"
)

// QueueID is the composite key identifying one logical save stream: one
// question (and category, for category questions) in one jurisdiction of one
// project.
type QueueID struct {
	QuestionID     uint
	CategoryID     uint
	JurisdictionID uint
	ProjectID      uint
}

// QueuedSave is an edit waiting for an earlier save on the same key to
// return. Payload is the full outbound record snapshot taken when the edit
// was queued.
type QueuedSave struct {
	QueueID    QueueID
	TimeQueued time.Time
	Payload    model.CodedQuestion
}

// Decision is the outcome of a save request entering the queue.
type Decision int

const (
	// Send means the request may go to the network now.
	Send Decision = iota
	// Queued means an earlier create for the same key is still in flight;
	// the edit was captured and will be replayed when that request returns.
	Queued
)

// Queue serializes outbound saves per QueueID. Its one hard rule: never two
// concurrent create requests for the same key. A record that already has a
// remote id may be updated concurrently, since updates are idempotent by id.
//
// Queue is not safe for concurrent use; the owning session serializes access.
type Queue struct {
	posting map[QueueID]bool
	pending map[QueueID]*QueuedSave
}

func NewQueue() *Queue {
	return &Queue{
		posting: make(map[QueueID]bool),
		pending: make(map[QueueID]*QueuedSave),
	}
}

// Request admits a save attempt. When a request for the same key is already
// posting and the record has never received a remote id, the edit is diverted
// into the queue instead of the network, superseding any older queued edit
// for that key.
func (q *Queue) Request(save QueuedSave, hasRemoteID bool) Decision {
	if q.posting[save.QueueID] && !hasRemoteID {
		if held, ok := q.pending[save.QueueID]; !ok || !save.TimeQueued.Before(held.TimeQueued) {
			q.pending[save.QueueID] = &save
		}
		return Queued
	}
	q.posting[save.QueueID] = true
	return Send
}

// OnSuccess records a completed save and drains the key: the most recent
// queued edit, if any, is returned for immediate dispatch and the key goes
// back to Posting for it.
func (q *Queue) OnSuccess(id QueueID) *QueuedSave {
	delete(q.posting, id)
	next, ok := q.pending[id]
	if !ok {
		return nil
	}
	delete(q.pending, id)
	q.posting[id] = true
	return next
}

// OnConflict records a save rejected because the object already exists
// server-side. Local state is about to be replaced with the server's version,
// so queued edits for the key are discarded and nothing is retried.
func (q *Queue) OnConflict(id QueueID) {
	delete(q.posting, id)
	delete(q.pending, id)
}

// OnFailure records a transport failure. The key returns to Idle and its
// queued edit is dropped: the record itself holds the latest state, so a
// retry or the next local edit re-snapshots it. Keeping the stale snapshot
// would let a later drain resend it over a newer save.
func (q *Queue) OnFailure(id QueueID) {
	delete(q.posting, id)
	delete(q.pending, id)
}

// InFlight reports whether a request for the key is currently posting.
func (q *Queue) InFlight(id QueueID) bool {
	return q.posting[id]
}

// HasPending reports whether any key still holds queued edits or an in-flight
// request. The session clears its global unsaved marker only when this is
// false.
func (q *Queue) HasPending() bool {
	return len(q.pending) > 0 || len(q.posting) > 0
}
