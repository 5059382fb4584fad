package repository

import (
	"github.com/htloc2506/codingdesk/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id uint) (*model.Project, error)
	FindByIDWithJurisdictions(id uint) (*model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	// GORM creates the associated jurisdictions along with the project.
	return r.db.Create(project).Error
}

func (r *projectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByIDWithJurisdictions(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.Preload("Jurisdictions").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}
