package validation

import (
	"context"
	"fmt"

	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
)

// Scope selects how much of the project a validation pass covers.
type Scope int

const (
	ScopeQuestion Scope = iota
	ScopeJurisdiction
	ScopeProject
)

// AllJurisdictions is the sentinel the bulk service takes for project scope.
const AllJurisdictions int64 = -1

// Backend is the slice of the remote contract bulk validation needs.
type Backend interface {
	GetAllCodedQuestionsForQuestion(ctx context.Context, projectID, jurisdictionID, questionID uint) ([]merge.Submission, error)
	BulkValidate(ctx context.Context, projectID uint, jurisdictionID int64, userID uint) ([]model.CodedQuestion, error)
}

// Params addresses one validation pass. CoderID and QuestionID/CategoryID are
// only read for question scope.
type Params struct {
	ProjectID      uint
	JurisdictionID uint
	ValidatorID    uint
	CoderID        uint
	QuestionID     uint
	CategoryID     uint
}

// CoderAnswer fetches the targeted coder's answer for the exact question (and
// category, if any) of a question-scope pass. A nil result with nil error
// means the coder never answered it; existing validated answers are then left
// untouched.
func CoderAnswer(ctx context.Context, b Backend, p Params) (*model.CodedQuestion, error) {
	submissions, err := b.GetAllCodedQuestionsForQuestion(ctx, p.ProjectID, p.JurisdictionID, p.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching coded answers for question %d: %w", p.QuestionID, err)
	}
	for _, sub := range submissions {
		if sub.Coder.ID != p.CoderID {
			continue
		}
		for i := range sub.CodedQuestions {
			cq := &sub.CodedQuestions[i]
			if cq.SchemeQuestionID != p.QuestionID {
				continue
			}
			if p.CategoryID == 0 {
				if cq.CategoryID == nil || *cq.CategoryID == 0 {
					return cq, nil
				}
				continue
			}
			if cq.CategoryID != nil && *cq.CategoryID == p.CategoryID {
				return cq, nil
			}
		}
	}
	return nil, nil
}

// ValidateScope runs the bulk-reconciliation call for jurisdiction or project
// scope and returns the newly-validated records relevant to the in-context
// jurisdiction. Project scope calls the service with the -1 sentinel and
// filters the response so only the current jurisdiction's answers are merged
// locally.
func ValidateScope(ctx context.Context, b Backend, scope Scope, p Params) ([]model.CodedQuestion, error) {
	jurisdiction := int64(p.JurisdictionID)
	if scope == ScopeProject {
		jurisdiction = AllJurisdictions
	}
	validated, err := b.BulkValidate(ctx, p.ProjectID, jurisdiction, p.ValidatorID)
	if err != nil {
		return nil, fmt.Errorf("bulk validation failed for project %d: %w", p.ProjectID, err)
	}
	if scope != ScopeProject {
		return validated, nil
	}
	// Filter into a fresh slice; the backend may retain the one it returned.
	filtered := make([]model.CodedQuestion, 0, len(validated))
	for _, cq := range validated {
		if cq.ProjectJurisdictionID == p.JurisdictionID {
			filtered = append(filtered, cq)
		}
	}
	return filtered, nil
}
