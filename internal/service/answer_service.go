package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
)

// AnswerService is the authoritative store of coded and validated answers.
type AnswerService interface {
	GetCodedQuestions(projectID, jurisdictionID, userID uint) ([]model.CodedQuestion, error)
	GetValidatedQuestions(projectID, jurisdictionID uint) ([]model.CodedQuestion, error)
	// SaveAnswer creates or updates a record depending on whether it carries
	// an id. A create that collides with an existing record returns the
	// server's current object together with a conflict fault.
	SaveAnswer(cq model.CodedQuestion) (*model.CodedQuestion, error)
	GetAllCodedQuestionsForQuestion(projectID, jurisdictionID, questionID uint) ([]merge.Submission, error)
	BulkValidate(projectID uint, jurisdictionID int64, validatorID uint) ([]model.CodedQuestion, error)
}

type answerService struct {
	codedRepo repository.CodedQuestionRepository
}

func NewAnswerService(codedRepo repository.CodedQuestionRepository) AnswerService {
	return &answerService{codedRepo: codedRepo}
}

func (s *answerService) GetCodedQuestions(projectID, jurisdictionID, userID uint) ([]model.CodedQuestion, error) {
	cqs, err := s.codedRepo.FindAllForUser(projectID, jurisdictionID, userID, false)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching coded questions for user %d", userID), err)
	}
	return cqs, nil
}

func (s *answerService) GetValidatedQuestions(projectID, jurisdictionID uint) ([]model.CodedQuestion, error) {
	cqs, err := s.codedRepo.FindAllForUser(projectID, jurisdictionID, 0, true)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching validated questions for jurisdiction %d", jurisdictionID), err)
	}
	return cqs, nil
}

func (s *answerService) SaveAnswer(cq model.CodedQuestion) (*model.CodedQuestion, error) {
	if cq.ID == 0 {
		existing, err := s.codedRepo.FindExisting(cq.SchemeQuestionID, cq.ProjectJurisdictionID, cq.UserID, cq.CategoryID, cq.Validated)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NewTransport("error checking for an existing answer", err)
		}
		if existing != nil {
			log.Warn().Uint("questionID", cq.SchemeQuestionID).Uint("existingID", existing.ID).
				Msg("SaveAnswer: create collided with an existing record")
			return existing, fault.NewConflict(fmt.Sprintf("an answer for question %d already exists", cq.SchemeQuestionID), nil)
		}
		if err := s.codedRepo.Create(&cq); err != nil {
			return nil, fault.NewTransport(fmt.Sprintf("error creating answer for question %d", cq.SchemeQuestionID), err)
		}
		return &cq, nil
	}
	if err := s.codedRepo.Update(&cq); err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error updating answer %d", cq.ID), err)
	}
	saved, err := s.codedRepo.FindByID(cq.ID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error reloading answer %d", cq.ID), err)
	}
	return saved, nil
}

func (s *answerService) GetAllCodedQuestionsForQuestion(projectID, jurisdictionID, questionID uint) ([]merge.Submission, error) {
	cqs, err := s.codedRepo.FindAllForQuestion(projectID, jurisdictionID, questionID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching all coded answers for question %d", questionID), err)
	}
	// Group per coder, keeping first-seen coder order.
	var submissions []merge.Submission
	index := make(map[uint]int)
	for _, cq := range cqs {
		i, ok := index[cq.UserID]
		if !ok {
			i = len(submissions)
			index[cq.UserID] = i
			submissions = append(submissions, merge.Submission{Coder: cq.User})
		}
		submissions[i].CodedQuestions = append(submissions[i].CodedQuestions, cq)
	}
	return submissions, nil
}

// BulkValidate copies every in-scope coded record into a validated record
// owned by the validator. When several coders answered the same
// question/category, the most recently updated record wins.
func (s *answerService) BulkValidate(projectID uint, jurisdictionID int64, validatorID uint) ([]model.CodedQuestion, error) {
	coded, err := s.codedRepo.FindCodedInScope(projectID, jurisdictionID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error fetching coded answers for project %d", projectID), err)
	}

	type key struct {
		questionID     uint
		jurisdictionID uint
		categoryID     uint
	}
	// Records arrive ordered by updated_at, so the last write per key wins.
	latest := make(map[key]*model.CodedQuestion)
	var order []key
	for i := range coded {
		cq := &coded[i]
		k := key{questionID: cq.SchemeQuestionID, jurisdictionID: cq.ProjectJurisdictionID}
		if cq.CategoryID != nil {
			k.categoryID = *cq.CategoryID
		}
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = cq
	}

	var validated []model.CodedQuestion
	for _, k := range order {
		source := latest[k]
		copy := model.CodedQuestion{
			SchemeQuestionID:      source.SchemeQuestionID,
			ProjectID:             source.ProjectID,
			ProjectJurisdictionID: source.ProjectJurisdictionID,
			UserID:                validatorID,
			CategoryID:            source.CategoryID,
			Validated:             true,
			Comment:               source.Comment,
		}
		for _, ca := range source.CodedAnswers {
			answer := model.CodedAnswer{
				AnswerChoiceID: ca.AnswerChoiceID,
				Pincite:        ca.Pincite,
				TextAnswer:     ca.TextAnswer,
			}
			for _, an := range ca.Annotations {
				answer.Annotations = append(answer.Annotations, model.Annotation{
					DocumentID: an.DocumentID,
					Text:       an.Text,
					StartPage:  an.StartPage,
					EndPage:    an.EndPage,
				})
			}
			copy.CodedAnswers = append(copy.CodedAnswers, answer)
		}

		prior, err := s.codedRepo.FindExisting(source.SchemeQuestionID, source.ProjectJurisdictionID, validatorID, source.CategoryID, true)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NewTransport("error checking for a prior validated answer", err)
		}
		if prior != nil {
			copy.ID = prior.ID
			if err := s.codedRepo.Update(&copy); err != nil {
				return nil, fault.NewTransport(fmt.Sprintf("error updating validated answer for question %d", copy.SchemeQuestionID), err)
			}
		} else {
			if err := s.codedRepo.Create(&copy); err != nil {
				return nil, fault.NewTransport(fmt.Sprintf("error creating validated answer for question %d", copy.SchemeQuestionID), err)
			}
		}
		validated = append(validated, copy)
	}
	log.Info().Uint("projectID", projectID).Int64("jurisdictionID", jurisdictionID).
		Int("validated", len(validated)).Msg("Bulk validation completed")
	return validated, nil
}
