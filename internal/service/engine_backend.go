package service

import (
	"context"
	"fmt"

	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
	"github.com/htloc2506/codingdesk/internal/session"
)

// engineBackend adapts the service layer to the session.Backend contract the
// coding engine consumes.
type engineBackend struct {
	schemes  SchemeService
	answers  AnswerService
	flags    FlagService
	userRepo repository.UserRepository
}

func NewEngineBackend(schemes SchemeService, answers AnswerService, flags FlagService, userRepo repository.UserRepository) session.Backend {
	return &engineBackend{schemes: schemes, answers: answers, flags: flags, userRepo: userRepo}
}

func (b *engineBackend) GetScheme(_ context.Context, projectID uint) (*session.SchemePayload, error) {
	questions, outline, err := b.schemes.GetScheme(projectID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching scheme for project %d", projectID), err)
	}
	return &session.SchemePayload{Questions: questions, Outline: outline}, nil
}

func (b *engineBackend) GetSchemeQuestion(_ context.Context, projectID, questionID uint) (*model.SchemeQuestion, error) {
	question, err := b.schemes.GetSchemeQuestion(projectID, questionID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching scheme question %d", questionID), err)
	}
	return question, nil
}

func (b *engineBackend) GetCodedQuestions(_ context.Context, projectID, jurisdictionID, userID uint) ([]model.CodedQuestion, error) {
	return b.answers.GetCodedQuestions(projectID, jurisdictionID, userID)
}

func (b *engineBackend) GetValidatedQuestions(_ context.Context, projectID, jurisdictionID uint) ([]model.CodedQuestion, error) {
	return b.answers.GetValidatedQuestions(projectID, jurisdictionID)
}

func (b *engineBackend) CreateAnswer(_ context.Context, record model.CodedQuestion) (*model.CodedQuestion, error) {
	record.ID = 0
	return b.answers.SaveAnswer(record)
}

func (b *engineBackend) UpdateAnswer(_ context.Context, record model.CodedQuestion) (*model.CodedQuestion, error) {
	return b.answers.SaveAnswer(record)
}

func (b *engineBackend) GetAllCodedQuestionsForQuestion(_ context.Context, projectID, jurisdictionID, questionID uint) ([]merge.Submission, error) {
	return b.answers.GetAllCodedQuestionsForQuestion(projectID, jurisdictionID, questionID)
}

func (b *engineBackend) BulkValidate(_ context.Context, projectID uint, jurisdictionID int64, userID uint) ([]model.CodedQuestion, error) {
	return b.answers.BulkValidate(projectID, jurisdictionID, userID)
}

func (b *engineBackend) SaveRedFlag(_ context.Context, questionID uint, flag model.Flag) (*model.SchemeQuestion, error) {
	return b.flags.SaveRedFlag(questionID, flag)
}

func (b *engineBackend) ClearFlag(_ context.Context, flagID uint) error {
	return b.flags.ClearFlag(flagID)
}

func (b *engineBackend) GetUser(_ context.Context, userID uint) (*model.User, error) {
	user, err := b.userRepo.FindByID(userID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching user %d", userID), err)
	}
	return user, nil
}
