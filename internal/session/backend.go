package session

import (
	"context"

	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// SchemePayload is what a scheme fetch returns: the flat question list plus
// the outline placing each question in the tree.
type SchemePayload struct {
	Questions []model.SchemeQuestion `json:"scheme_questions"`
	Outline   scheme.Outline         `json:"outline"`
}

// Backend is the remote-service contract the engine consumes. Transport is
// not the engine's concern; implementations translate failures into the
// fault package's typed errors. CreateAnswer reports an already-existing
// record as a conflict fault and returns the server's current object so local
// state can be replaced with it.
type Backend interface {
	GetScheme(ctx context.Context, projectID uint) (*SchemePayload, error)
	GetSchemeQuestion(ctx context.Context, projectID, questionID uint) (*model.SchemeQuestion, error)
	GetCodedQuestions(ctx context.Context, projectID, jurisdictionID, userID uint) ([]model.CodedQuestion, error)
	GetValidatedQuestions(ctx context.Context, projectID, jurisdictionID uint) ([]model.CodedQuestion, error)
	CreateAnswer(ctx context.Context, record model.CodedQuestion) (*model.CodedQuestion, error)
	UpdateAnswer(ctx context.Context, record model.CodedQuestion) (*model.CodedQuestion, error)
	GetAllCodedQuestionsForQuestion(ctx context.Context, projectID, jurisdictionID, questionID uint) ([]merge.Submission, error)
	BulkValidate(ctx context.Context, projectID uint, jurisdictionID int64, userID uint) ([]model.CodedQuestion, error)
	SaveRedFlag(ctx context.Context, questionID uint, flag model.Flag) (*model.SchemeQuestion, error)
	ClearFlag(ctx context.Context, flagID uint) error
	GetUser(ctx context.Context, userID uint) (*model.User, error)
}
