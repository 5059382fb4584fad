package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/htloc2506/codingdesk/internal/answers"
	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/navigator"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// Next moves one step forward in traversal order.
func (s *Session) Next(ctx context.Context) error {
	return s.navigate(ctx, func(t *scheme.Tree, st *answers.Store, cur int) navigator.Result {
		return navigator.Next(t, st, cur)
	})
}

// Previous moves one step backward.
func (s *Session) Previous(ctx context.Context) error {
	return s.navigate(ctx, func(t *scheme.Tree, st *answers.Store, cur int) navigator.Result {
		return navigator.Previous(t, st, cur)
	})
}

// JumpTo moves directly to a traversal index.
func (s *Session) JumpTo(ctx context.Context, index int) error {
	return s.navigate(ctx, func(t *scheme.Tree, st *answers.Store, cur int) navigator.Result {
		return navigator.Jump(t, st, cur, index)
	})
}

// SelectQuestion moves to a question picked from the rendered tree.
// categoryID pins a synthesized category child, 0 keeps the default.
func (s *Session) SelectQuestion(ctx context.Context, questionID, categoryID uint) error {
	return s.navigate(ctx, func(t *scheme.Tree, st *answers.Store, cur int) navigator.Result {
		return navigator.SelectInNav(t, st, cur, questionID, categoryID)
	})
}

func (s *Session) navigate(ctx context.Context, move func(*scheme.Tree, *answers.Store, int) navigator.Result) error {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return errors.New("session not started")
	}
	res := move(s.tree, s.store, s.current.Index)
	if res.Question != nil {
		s.store.Visit(res.Question.ID, res.SelectedCategoryID)
	}
	s.current = res
	s.navEpoch++
	epoch := s.navEpoch
	question := res.Question
	s.mu.Unlock()

	if s.Role == RoleValidator && question != nil {
		s.rebuildMerged(ctx, epoch, question)
	}
	return nil
}

// SelectCategory switches the active category tab of the current category
// question by its ordinal among the selected categories.
func (s *Session) SelectCategory(ordinal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Categories == nil {
		return errors.New("current question has no category tabs")
	}
	if ordinal < 0 || ordinal >= len(s.current.Categories) {
		return fmt.Errorf("category ordinal %d out of range", ordinal)
	}
	s.current.SelectedCategory = ordinal
	s.current.SelectedCategoryID = s.current.Categories[ordinal].ID
	s.store.Visit(s.current.Question.ID, s.current.SelectedCategoryID)
	return nil
}

// rebuildMerged refetches every coder's submissions for the visible question
// and folds them into a fresh merged aggregate. The aggregate is rebuilt in
// full, never patched, since coder answers may have changed server-side
// between visits. Completions carrying a stale navigation epoch are dropped.
func (s *Session) rebuildMerged(ctx context.Context, epoch uint64, question *model.SchemeQuestion) {
	submissions, err := s.backend.GetAllCodedQuestionsForQuestion(ctx, s.ProjectID, s.JurisdictionID, question.ID)

	s.mu.Lock()
	if s.navEpoch != epoch {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.merged = nil
		s.mergedByCategory = nil
		s.notify(NoticeError, fmt.Sprintf("Could not load coder answers for question %d.", question.ID))
		s.mu.Unlock()
		return
	}
	if question.IsCategoryQuestion {
		s.mergedByCategory = merge.BuildByCategory(submissions)
		s.merged = nil
	} else {
		s.merged = merge.Build(submissions)
		s.mergedByCategory = nil
	}
	var coderIDs []uint
	for _, sub := range submissions {
		coderIDs = append(coderIDs, sub.Coder.ID)
	}
	s.mu.Unlock()

	s.loadCoderAvatars(ctx, coderIDs)
}
