package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/dto"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// SchemeService manages a project's coding scheme.
type SchemeService interface {
	CreateScheme(projectID uint, req dto.SchemeCreateDTO) ([]model.SchemeQuestion, error)
	GetScheme(projectID uint) ([]model.SchemeQuestion, scheme.Outline, error)
	GetSchemeQuestion(projectID, questionID uint) (*model.SchemeQuestion, error)
}

type schemeService struct {
	schemeRepo  repository.SchemeRepository
	projectRepo repository.ProjectRepository
}

func NewSchemeService(schemeRepo repository.SchemeRepository, projectRepo repository.ProjectRepository) SchemeService {
	return &schemeService{schemeRepo: schemeRepo, projectRepo: projectRepo}
}

func (s *schemeService) CreateScheme(projectID uint, req dto.SchemeCreateDTO) ([]model.SchemeQuestion, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		log.Error().Err(err).Uint("projectID", projectID).Msg("CreateScheme: project not found")
		return nil, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}

	questions := make([]model.SchemeQuestion, len(req.Questions))
	for i, qd := range req.Questions {
		if qd.ParentIndex != nil && (*qd.ParentIndex < 0 || *qd.ParentIndex >= i) {
			return nil, fmt.Errorf("question %d: parent_index must reference an earlier question", i)
		}
		if qd.IsCategoryQuestion {
			if qd.ParentIndex == nil {
				return nil, fmt.Errorf("question %d: a category question needs a category-choice parent", i)
			}
			parent := req.Questions[*qd.ParentIndex]
			if parent.QuestionType != model.QuestionTypeCategoryChoice {
				return nil, fmt.Errorf("question %d: parent of a category question must be a category-choice question", i)
			}
		}
		if qd.QuestionType != model.QuestionTypeText && len(qd.PossibleAnswers) == 0 {
			return nil, fmt.Errorf("question %d: non-text questions need answer choices", i)
		}
		q := model.SchemeQuestion{
			ProjectID:          projectID,
			Text:               qd.Text,
			QuestionType:       qd.QuestionType,
			IsCategoryQuestion: qd.IsCategoryQuestion,
			PositionInParent:   qd.PositionInParent,
			Hint:               qd.Hint,
		}
		for _, cd := range qd.PossibleAnswers {
			q.PossibleAnswers = append(q.PossibleAnswers, model.AnswerChoice{Text: cd.Text, Order: cd.Order})
		}
		questions[i] = q
	}

	if err := s.schemeRepo.CreateQuestions(questions); err != nil {
		log.Error().Err(err).Uint("projectID", projectID).Msg("CreateScheme: failed to create questions")
		return nil, fmt.Errorf("error creating scheme for project %d: %w", projectID, err)
	}

	// Parent ids only exist after the insert, so wire them up second.
	for i, qd := range req.Questions {
		if qd.ParentIndex == nil {
			continue
		}
		questions[i].ParentID = questions[*qd.ParentIndex].ID
		if err := s.schemeRepo.UpdateQuestion(&questions[i]); err != nil {
			return nil, fmt.Errorf("error linking question %d to its parent: %w", questions[i].ID, err)
		}
	}
	return questions, nil
}

func (s *schemeService) GetScheme(projectID uint) ([]model.SchemeQuestion, scheme.Outline, error) {
	questions, err := s.schemeRepo.FindByProjectID(projectID)
	if err != nil {
		log.Error().Err(err).Uint("projectID", projectID).Msg("GetScheme: repository error")
		return nil, nil, fmt.Errorf("error fetching scheme for project %d: %w", projectID, err)
	}
	outline := make(scheme.Outline, len(questions))
	for _, q := range questions {
		outline[q.ID] = scheme.Position{ParentID: q.ParentID, PositionInParent: q.PositionInParent}
	}
	return questions, outline, nil
}

func (s *schemeService) GetSchemeQuestion(projectID, questionID uint) (*model.SchemeQuestion, error) {
	question, err := s.schemeRepo.FindQuestionByID(projectID, questionID)
	if err != nil {
		return nil, fmt.Errorf("scheme question not found with ID %d: %w", questionID, err)
	}
	return question, nil
}
