package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/dto"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
)

type ProjectService interface {
	CreateProject(req dto.ProjectCreateDTO) (*dto.ProjectResponseDTO, error)
	GetProject(id uint) (*dto.ProjectResponseDTO, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) CreateProject(req dto.ProjectCreateDTO) (*dto.ProjectResponseDTO, error) {
	project := model.Project{Name: req.Name}
	for _, jd := range req.Jurisdictions {
		project.Jurisdictions = append(project.Jurisdictions, model.Jurisdiction{
			Name:      jd.Name,
			StartDate: jd.StartDate,
			EndDate:   jd.EndDate,
		})
	}
	if err := s.projectRepo.Create(&project); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateProject: repository error")
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	var resp dto.ProjectResponseDTO
	if err := copier.Copy(&resp, &project); err != nil {
		return nil, fmt.Errorf("error mapping project response: %w", err)
	}
	return &resp, nil
}

func (s *projectService) GetProject(id uint) (*dto.ProjectResponseDTO, error) {
	project, err := s.projectRepo.FindByIDWithJurisdictions(id)
	if err != nil {
		return nil, fmt.Errorf("project not found with ID %d: %w", id, err)
	}
	var resp dto.ProjectResponseDTO
	if err := copier.Copy(&resp, project); err != nil {
		return nil, fmt.Errorf("error mapping project response: %w", err)
	}
	return &resp, nil
}
