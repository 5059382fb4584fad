package savequeue

import (
	"testing"
	"time"

	"github.com/htloc2506/codingdesk/internal/model"
)

var key = QueueID{QuestionID: 7, JurisdictionID: 3, ProjectID: 1}

func saveAt(t time.Time, comment string) QueuedSave {
	return QueuedSave{QueueID: key, TimeQueued: t, Payload: model.CodedQuestion{SchemeQuestionID: 7, Comment: comment}}
}

func TestSingleInFlightCreate(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	if got := q.Request(saveAt(now, "first"), false); got != Send {
		t.Fatalf("first create = %v, want Send", got)
	}
	if !q.InFlight(key) {
		t.Fatal("key must be posting after a Send")
	}

	// A second create for the same key goes to the queue, not the network.
	if got := q.Request(saveAt(now.Add(time.Millisecond), "second"), false); got != Queued {
		t.Errorf("second create = %v, want Queued", got)
	}
}

func TestUpdatesBypassTheQueue(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	q.Request(saveAt(now, "create"), false)
	// Once the record has a remote id, updates may post concurrently.
	if got := q.Request(saveAt(now.Add(time.Millisecond), "update"), true); got != Send {
		t.Errorf("update with remote id = %v, want Send", got)
	}
}

func TestSupersessionKeepsLatestOnly(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	q.Request(saveAt(now, "posting"), false)
	q.Request(saveAt(now.Add(1*time.Millisecond), "stale"), false)
	q.Request(saveAt(now.Add(2*time.Millisecond), "latest"), false)

	next := q.OnSuccess(key)
	if next == nil {
		t.Fatal("expected a drained edit")
	}
	if next.Payload.Comment != "latest" {
		t.Errorf("drained payload = %q, want the latest edit", next.Payload.Comment)
	}
	if !q.InFlight(key) {
		t.Error("key must be posting again for the drained edit")
	}

	// Nothing else remains once the drained edit completes.
	if q.OnSuccess(key) != nil {
		t.Error("queue must be empty after the second success")
	}
	if q.HasPending() {
		t.Error("no pending work expected")
	}
}

func TestStaleEditDoesNotSupersede(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	q.Request(saveAt(now, "posting"), false)
	q.Request(saveAt(now.Add(5*time.Millisecond), "newer"), false)
	q.Request(saveAt(now.Add(1*time.Millisecond), "older"), false)

	next := q.OnSuccess(key)
	if next == nil || next.Payload.Comment != "newer" {
		t.Errorf("drained payload = %v, want the newer edit to win", next)
	}
}

func TestOnConflictDiscardsQueued(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	q.Request(saveAt(now, "posting"), false)
	q.Request(saveAt(now.Add(time.Millisecond), "queued"), false)

	q.OnConflict(key)
	if q.InFlight(key) {
		t.Error("key must be idle after a conflict")
	}
	if q.HasPending() {
		t.Error("queued edits must be discarded on conflict")
	}
}

func TestOnFailureDropsQueuedEdit(t *testing.T) {
	q := NewQueue()
	now := time.Now()

	q.Request(saveAt(now, "posting"), false)
	q.Request(saveAt(now.Add(time.Millisecond), "superseded"), false)

	q.OnFailure(key)
	if q.InFlight(key) {
		t.Error("key must be idle after a failure")
	}
	if q.HasPending() {
		t.Error("a stale snapshot must not survive the failure; retries re-snapshot the record")
	}

	// A retry snapshots the record's current state and posts it. Once that
	// succeeds, no older snapshot may drain behind it and overwrite the
	// remote with stale content.
	if got := q.Request(saveAt(now.Add(2*time.Millisecond), "retry"), false); got != Send {
		t.Fatalf("retry after failure = %v, want Send", got)
	}
	if next := q.OnSuccess(key); next != nil {
		t.Errorf("drained %q after the retry succeeded, want nothing left to resend", next.Payload.Comment)
	}
}

func TestIndependentKeys(t *testing.T) {
	q := NewQueue()
	now := time.Now()
	other := QueueID{QuestionID: 8, JurisdictionID: 3, ProjectID: 1}

	q.Request(saveAt(now, "a"), false)
	if got := q.Request(QueuedSave{QueueID: other, TimeQueued: now}, false); got != Send {
		t.Errorf("different key = %v, want Send", got)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	fired := make(chan struct{}, 3)

	for i := 0; i < 3; i++ {
		d.Trigger(key, func() { fired <- struct{}{} })
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("debounce window never fired")
	}
	select {
	case <-fired:
		t.Fatal("rapid triggers must collapse into one fire")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	fired := false
	d.Trigger(key, func() { fired = true })

	if !d.Flush(key) {
		t.Fatal("expected Flush to report a pending window")
	}
	if fired {
		t.Error("Flush cancels the timer; the caller posts explicitly")
	}
	if d.Flush(key) {
		t.Error("second Flush must find nothing")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	fired := make(chan struct{}, 1)
	d.Trigger(key, func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer must not fire")
	case <-time.After(50 * time.Millisecond):
	}
}
