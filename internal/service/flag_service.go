package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
)

// FlagService manages question-level red flags.
type FlagService interface {
	// SaveRedFlag attaches a red flag to a scheme question and returns the
	// refreshed question with its flags preloaded.
	SaveRedFlag(questionID uint, flag model.Flag) (*model.SchemeQuestion, error)
	ClearFlag(flagID uint) error
}

type flagService struct {
	flagRepo   repository.FlagRepository
	schemeRepo repository.SchemeRepository
}

func NewFlagService(flagRepo repository.FlagRepository, schemeRepo repository.SchemeRepository) FlagService {
	return &flagService{flagRepo: flagRepo, schemeRepo: schemeRepo}
}

func (s *flagService) SaveRedFlag(questionID uint, flag model.Flag) (*model.SchemeQuestion, error) {
	if _, err := s.schemeRepo.FindQuestionByID(0, questionID); err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("scheme question not found with ID %d", questionID), err)
	}
	flag.Type = model.FlagRed
	flag.SchemeQuestionID = &questionID
	flag.CodedQuestionID = nil
	if err := s.flagRepo.Create(&flag); err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error saving red flag on question %d", questionID), err)
	}
	question, err := s.schemeRepo.FindQuestionByID(0, questionID)
	if err != nil {
		return nil, fault.NewTransport(fmt.Sprintf("error reloading question %d", questionID), err)
	}
	log.Info().Uint("questionID", questionID).Uint("flagID", flag.ID).Msg("Red flag raised")
	return question, nil
}

func (s *flagService) ClearFlag(flagID uint) error {
	if err := s.flagRepo.Delete(flagID); err != nil {
		return fault.NewTransport(fmt.Sprintf("error clearing flag %d", flagID), err)
	}
	return nil
}
