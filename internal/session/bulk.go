package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/htloc2506/codingdesk/internal/navigator"
	"github.com/htloc2506/codingdesk/internal/validation"
)

// BulkValidate applies a validator-scope reconciliation pass. Question scope
// copies the targeted coder's answer for the current question into a
// validated record; jurisdiction and project scope run the bulk service and
// merge its response locally. All scopes leave the rendered tree consistent
// with the updated store before navigation resumes, since the tree is a
// derived projection.
func (s *Session) BulkValidate(ctx context.Context, scope validation.Scope, coderID uint) error {
	if s.Role != RoleValidator {
		return errors.New("bulk validation is a validator operation")
	}
	s.mu.Lock()
	if s.current.Question == nil {
		s.mu.Unlock()
		return errors.New("no active question")
	}
	params := validation.Params{
		ProjectID:      s.ProjectID,
		JurisdictionID: s.JurisdictionID,
		ValidatorID:    s.UserID,
		CoderID:        coderID,
		QuestionID:     s.current.Question.ID,
		CategoryID:     s.current.SelectedCategoryID,
	}
	s.mu.Unlock()

	if scope == validation.ScopeQuestion {
		return s.validateQuestion(ctx, params)
	}
	return s.validateScope(ctx, scope, params)
}

func (s *Session) validateQuestion(ctx context.Context, params validation.Params) error {
	coderAnswer, err := validation.CoderAnswer(ctx, s.backend, params)
	if err != nil {
		s.mu.Lock()
		s.notify(NoticeError, "Could not fetch the coder's answer for validation.")
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if coderAnswer == nil {
		// Coder never answered this question/category; existing validated
		// answers stay untouched. A category child with nothing to validate
		// falls back to the parent question, same rule as navigation.
		if q := s.current.Question; q != nil && q.IsCategoryQuestion && s.current.SelectedCategoryID != 0 {
			s.current = navigator.SelectInNav(s.tree, s.store, s.current.Index, q.ParentID, 0)
			s.navEpoch++
		}
		s.mu.Unlock()
		return nil
	}

	validated := *coderAnswer
	validated.Validated = true
	validated.UserID = s.UserID
	if existing, ok := s.store.Record(params.QuestionID, params.CategoryID); ok && existing.ID != 0 {
		validated.ID = existing.ID
	} else {
		validated.ID = 0
	}
	rec := s.store.Replace(params.CategoryID, &validated)
	rec.UnsavedChanges = true
	s.unsavedChanges = true
	id := s.queueIDFor(params.QuestionID, params.CategoryID)
	s.mu.Unlock()

	s.requestSaveCtx(ctx, id)
	return nil
}

func (s *Session) validateScope(ctx context.Context, scope validation.Scope, params validation.Params) error {
	validated, err := validation.ValidateScope(ctx, s.backend, scope, params)
	if err != nil {
		s.mu.Lock()
		s.notify(NoticeError, fmt.Sprintf("Bulk validation failed for project %d.", params.ProjectID))
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.store.Hydrate(validated)
	// Re-resolve the current position so the category fallback applies when
	// the merged answers changed what is selected.
	s.current = navigator.Jump(s.tree, s.store, s.current.Index, s.current.Index)
	s.navEpoch++
	epoch := s.navEpoch
	question := s.current.Question
	s.mu.Unlock()

	if question != nil {
		s.rebuildMerged(ctx, epoch, question)
	}
	return nil
}
