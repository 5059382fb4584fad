package repository

import (
	"github.com/htloc2506/codingdesk/internal/model"
	"gorm.io/gorm"
)

type SchemeRepository interface {
	CreateQuestions(questions []model.SchemeQuestion) error
	FindByProjectID(projectID uint) ([]model.SchemeQuestion, error)
	FindQuestionByID(projectID, questionID uint) (*model.SchemeQuestion, error)
	UpdateQuestion(question *model.SchemeQuestion) error
}

type schemeRepository struct {
	db *gorm.DB
}

func NewSchemeRepository(db *gorm.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) CreateQuestions(questions []model.SchemeQuestion) error {
	// GORM creates the associated answer choices along with each question.
	return r.db.Create(&questions).Error
}

func (r *schemeRepository) FindByProjectID(projectID uint) ([]model.SchemeQuestion, error) {
	var questions []model.SchemeQuestion
	err := r.db.
		Preload("PossibleAnswers", func(db *gorm.DB) *gorm.DB {
			return db.Order(`answer_choices."order" ASC`)
		}).
		Preload("Flags.RaisedBy").
		Where("project_id = ?", projectID).
		Order("parent_id ASC, position_in_parent ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// FindQuestionByID loads one question with its choices and flags. A zero
// projectID skips the project filter.
func (r *schemeRepository) FindQuestionByID(projectID, questionID uint) (*model.SchemeQuestion, error) {
	var question model.SchemeQuestion
	query := r.db.
		Preload("PossibleAnswers", func(db *gorm.DB) *gorm.DB {
			return db.Order(`answer_choices."order" ASC`)
		}).
		Preload("Flags.RaisedBy")
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}
	err := query.First(&question, questionID).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *schemeRepository) UpdateQuestion(question *model.SchemeQuestion) error {
	return r.db.Save(question).Error
}
