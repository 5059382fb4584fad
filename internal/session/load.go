package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/navigator"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// Start performs the initial page load: the scheme fetch and the actor's
// answer fetch run in parallel. A failed scheme fetch is fatal; a failed
// answer fetch degrades the session (edits disabled, partial-data notice)
// rather than failing it.
func (s *Session) Start(ctx context.Context) error {
	type loadResult struct {
		schemePayload *SchemePayload
		coded         []model.CodedQuestion
		isScheme      bool
		err           error
	}

	results := make(chan loadResult, 2)

	go func() {
		payload, err := s.backend.GetScheme(ctx, s.ProjectID)
		results <- loadResult{schemePayload: payload, isScheme: true, err: err}
	}()
	go func() {
		var coded []model.CodedQuestion
		var err error
		if s.Role == RoleValidator {
			coded, err = s.backend.GetValidatedQuestions(ctx, s.ProjectID, s.JurisdictionID)
		} else {
			coded, err = s.backend.GetCodedQuestions(ctx, s.ProjectID, s.JurisdictionID, s.UserID)
		}
		results <- loadResult{coded: coded, err: err}
	}()

	var payload *SchemePayload
	var coded []model.CodedQuestion
	var codedErr error
	for i := 0; i < 2; i++ {
		res := <-results
		if res.isScheme {
			if res.err != nil {
				return fault.NewTransport(fmt.Sprintf("error fetching scheme for project %d", s.ProjectID), res.err)
			}
			payload = res.schemePayload
		} else {
			coded = res.coded
			codedErr = res.err
		}
	}

	tree, err := scheme.NewTree(payload.Questions, payload.Outline)
	if err != nil {
		return fmt.Errorf("error building scheme tree for project %d: %w", s.ProjectID, err)
	}

	s.mu.Lock()
	s.tree = tree
	if codedErr != nil {
		log.Warn().Err(codedErr).Uint("projectID", s.ProjectID).Uint("jurisdictionID", s.JurisdictionID).
			Msg("Coded questions failed to load; session continues degraded")
		s.editsDisabled = true
		s.notify(NoticePartial, "Your answers could not be loaded. Editing is disabled until they are.")
	} else {
		s.store.Hydrate(coded)
	}
	s.current = navigator.Jump(s.tree, s.store, 0, 0)
	if s.current.Question != nil {
		s.store.Visit(s.current.Question.ID, s.current.SelectedCategoryID)
	}
	s.navEpoch++
	epoch := s.navEpoch
	question := s.current.Question
	s.mu.Unlock()

	if s.Role == RoleValidator && question != nil {
		s.rebuildMerged(ctx, epoch, question)
	}
	return nil
}

// loadCoderAvatars fetches avatar data for every coder seen in the current
// merged question, in parallel. Failures degrade only the affected coder's
// display; the session keeps going.
func (s *Session) loadCoderAvatars(ctx context.Context, coderIDs []uint) {
	var wg sync.WaitGroup
	found := make(chan model.User, len(coderIDs))
	for _, id := range coderIDs {
		s.mu.Lock()
		_, known := s.coders[id]
		s.mu.Unlock()
		if known {
			continue
		}
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			user, err := s.backend.GetUser(ctx, userID)
			if err != nil {
				log.Warn().Err(err).Uint("userID", userID).Msg("Coder avatar fetch failed")
				return
			}
			found <- *user
		}(id)
	}
	wg.Wait()
	close(found)

	s.mu.Lock()
	for user := range found {
		s.coders[user.ID] = user
	}
	s.mu.Unlock()
}
