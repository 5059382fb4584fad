package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/savequeue"
)

func (s *Session) queueIDFor(questionID, categoryID uint) savequeue.QueueID {
	return savequeue.QueueID{
		QuestionID:     questionID,
		CategoryID:     categoryID,
		JurisdictionID: s.JurisdictionID,
		ProjectID:      s.ProjectID,
	}
}

// scheduleSave marks the session unsaved and arms the debounce window for the
// current record's save stream. Must be called with the session lock held.
func (s *Session) scheduleSave() {
	s.unsavedChanges = true
	id := s.queueIDFor(s.current.Question.ID, s.current.SelectedCategoryID)
	s.debounce.Trigger(id, func() { s.requestSave(id) })
}

// Save flushes the debounce window for the current record and posts it now.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.current.Question == nil {
		s.mu.Unlock()
		return errors.New("no active question")
	}
	id := s.queueIDFor(s.current.Question.ID, s.current.SelectedCategoryID)
	s.mu.Unlock()
	s.debounce.Flush(id)
	s.requestSaveCtx(ctx, id)
	return nil
}

// Retry re-enters the save path for the current record after a failure.
func (s *Session) Retry(ctx context.Context) error {
	return s.Save(ctx)
}

func (s *Session) requestSave(id savequeue.QueueID) {
	s.requestSaveCtx(context.Background(), id)
}

// requestSaveCtx admits one save attempt for a key. When an earlier create
// for the same key is still posting and the record has no remote id yet, the
// attempt is redirected into the queue; that is a deterministic state
// transition, not an error, so nothing is surfaced to the caller.
func (s *Session) requestSaveCtx(ctx context.Context, id savequeue.QueueID) {
	s.mu.Lock()
	rec, ok := s.store.Record(id.QuestionID, id.CategoryID)
	if !ok {
		s.mu.Unlock()
		return
	}
	payload := rec.ToCodedQuestion(s.ProjectID, s.JurisdictionID, s.UserID, id.CategoryID, s.Role == RoleValidator)
	save := savequeue.QueuedSave{QueueID: id, TimeQueued: time.Now(), Payload: payload}
	if s.queue.Request(save, rec.ID != 0) == savequeue.Queued {
		log.Debug().Uint("questionID", id.QuestionID).Uint("categoryID", id.CategoryID).
			Msg("Save redirected to queue; create already in flight")
		s.mu.Unlock()
		return
	}
	rec.HasMadePost = true
	s.mu.Unlock()

	s.post(ctx, id, payload)
}

func (s *Session) post(ctx context.Context, id savequeue.QueueID, payload model.CodedQuestion) {
	var resp *model.CodedQuestion
	var err error
	if payload.ID == 0 {
		resp, err = s.backend.CreateAnswer(ctx, payload)
	} else {
		resp, err = s.backend.UpdateAnswer(ctx, payload)
	}
	s.completeSave(ctx, id, resp, err)
}

// completeSave applies a save completion. Conflicts replace the local record
// with the server's version and are not retried; transport failures leave the
// record unsaved and retryable; success drains the queue for the key.
func (s *Session) completeSave(ctx context.Context, id savequeue.QueueID, resp *model.CodedQuestion, err error) {
	s.mu.Lock()

	if err != nil && fault.IsConflict(err) {
		s.queue.OnConflict(id)
		if resp != nil {
			replaced := s.store.Replace(id.CategoryID, resp)
			replaced.HasMadePost = false
			replaced.UnsavedChanges = false
		}
		s.notify(NoticeConflict, fmt.Sprintf("Your answer for question %d already existed and was replaced with the saved version.", id.QuestionID))
		s.refreshUnsaved()
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.queue.OnFailure(id)
		if rec, ok := s.store.Record(id.QuestionID, id.CategoryID); ok {
			rec.HasMadePost = false
		}
		log.Error().Err(err).Uint("questionID", id.QuestionID).Msg("Answer save failed")
		s.notify(NoticeError, fmt.Sprintf("Saving your answer for question %d failed. It will be retried on your next change.", id.QuestionID))
		s.mu.Unlock()
		return
	}

	if rec, ok := s.store.Record(id.QuestionID, id.CategoryID); ok {
		rec.ID = resp.ID
		rec.IsNewCodedQuestion = false
		rec.HasMadePost = false
		rec.UnsavedChanges = false
	}
	next := s.queue.OnSuccess(id)
	if next != nil {
		if next.Payload.ID == 0 {
			next.Payload.ID = resp.ID
		}
		if rec, ok := s.store.Record(id.QuestionID, id.CategoryID); ok {
			rec.HasMadePost = true
		}
		payload := next.Payload
		s.mu.Unlock()
		s.post(ctx, id, payload)
		return
	}
	s.refreshUnsaved()
	s.mu.Unlock()
}

// refreshUnsaved clears the global unsaved marker once no key holds pending
// work and no record carries unflushed edits. Lock must be held.
func (s *Session) refreshUnsaved() {
	if !s.queue.HasPending() && !s.store.HasUnsaved() {
		s.unsavedChanges = false
	}
}
