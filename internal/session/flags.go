package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/model"
)

// SaveRedFlag raises a red flag on the current question, stopping further
// coding of it for everyone. The backend returns the refreshed question,
// which replaces the live scheme node in place.
func (s *Session) SaveRedFlag(ctx context.Context, notes string) error {
	s.mu.Lock()
	if s.current.Question == nil {
		s.mu.Unlock()
		return errors.New("no active question")
	}
	questionID := s.current.Question.ID
	s.mu.Unlock()

	flag := model.Flag{
		Type:             model.FlagRed,
		Notes:            notes,
		RaisedByID:       s.UserID,
		SchemeQuestionID: &questionID,
	}
	updated, err := s.backend.SaveRedFlag(ctx, questionID, flag)
	if err != nil {
		s.mu.Lock()
		s.notify(NoticeError, fmt.Sprintf("Raising a red flag on question %d failed.", questionID))
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.RefreshQuestion(*updated)
}

// ClearRedFlag removes a red flag from the current question and refreshes the
// scheme node so both the live question and the rendered tree drop the flag.
func (s *Session) ClearRedFlag(ctx context.Context, flagID uint) error {
	s.mu.Lock()
	if s.current.Question == nil {
		s.mu.Unlock()
		return errors.New("no active question")
	}
	questionID := s.current.Question.ID
	s.mu.Unlock()

	if err := s.backend.ClearFlag(ctx, flagID); err != nil {
		s.mu.Lock()
		s.notify(NoticeError, fmt.Sprintf("Clearing the flag on question %d failed.", questionID))
		s.mu.Unlock()
		return err
	}

	refreshed, err := s.backend.GetSchemeQuestion(ctx, s.ProjectID, questionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// The flag is gone server-side; drop it locally even though the
		// refresh failed.
		log.Warn().Err(err).Uint("questionID", questionID).Msg("Question refresh after flag clear failed; removing flag locally")
		if q, ok := s.tree.Question(questionID); ok {
			kept := q.Flags[:0]
			for _, f := range q.Flags {
				if f.ID != flagID {
					kept = append(kept, f)
				}
			}
			q.Flags = kept
		}
		return nil
	}
	if refreshed.Flags == nil {
		refreshed.Flags = []model.Flag{}
	}
	return s.tree.RefreshQuestion(*refreshed)
}
