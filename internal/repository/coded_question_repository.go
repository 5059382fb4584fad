package repository

import (
	"github.com/htloc2506/codingdesk/internal/model"
	"gorm.io/gorm"
)

type CodedQuestionRepository interface {
	Create(cq *model.CodedQuestion) error
	Update(cq *model.CodedQuestion) error
	FindByID(id uint) (*model.CodedQuestion, error)
	// FindExisting locates the record for one question/category/user in one
	// jurisdiction; used for duplicate-create detection.
	FindExisting(questionID, jurisdictionID, userID uint, categoryID *uint, validated bool) (*model.CodedQuestion, error)
	FindAllForUser(projectID, jurisdictionID, userID uint, validated bool) ([]model.CodedQuestion, error)
	// FindAllForQuestion returns every coder's non-validated records for one
	// question, with the coder preloaded.
	FindAllForQuestion(projectID, jurisdictionID, questionID uint) ([]model.CodedQuestion, error)
	// FindCodedInScope returns all non-validated records of a project, or of
	// one jurisdiction when jurisdictionID >= 0.
	FindCodedInScope(projectID uint, jurisdictionID int64) ([]model.CodedQuestion, error)
}

type codedQuestionRepository struct {
	db *gorm.DB
}

func NewCodedQuestionRepository(db *gorm.DB) CodedQuestionRepository {
	return &codedQuestionRepository{db: db}
}

func (r *codedQuestionRepository) Create(cq *model.CodedQuestion) error {
	// GORM creates the associated coded answers and their annotations too.
	return r.db.Create(cq).Error
}

func (r *codedQuestionRepository) Update(cq *model.CodedQuestion) error {
	// Selections may have been removed locally, so replace the answer rows
	// rather than upserting over them.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("coded_question_id = ?", cq.ID).Delete(&model.CodedAnswer{}).Error; err != nil {
			return err
		}
		for i := range cq.CodedAnswers {
			cq.CodedAnswers[i].ID = 0
			cq.CodedAnswers[i].CodedQuestionID = cq.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(cq).Error
	})
}

func (r *codedQuestionRepository) FindByID(id uint) (*model.CodedQuestion, error) {
	var cq model.CodedQuestion
	err := r.db.
		Preload("CodedAnswers.Annotations").
		Preload("Flag").
		First(&cq, id).Error
	if err != nil {
		return nil, err
	}
	return &cq, nil
}

func (r *codedQuestionRepository) FindExisting(questionID, jurisdictionID, userID uint, categoryID *uint, validated bool) (*model.CodedQuestion, error) {
	query := r.db.
		Preload("CodedAnswers.Annotations").
		Preload("Flag").
		Where("scheme_question_id = ? AND project_jurisdiction_id = ? AND validated = ?", questionID, jurisdictionID, validated)
	if !validated {
		query = query.Where("user_id = ?", userID)
	}
	if categoryID != nil && *categoryID != 0 {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}
	var cq model.CodedQuestion
	if err := query.First(&cq).Error; err != nil {
		return nil, err
	}
	return &cq, nil
}

func (r *codedQuestionRepository) FindAllForUser(projectID, jurisdictionID, userID uint, validated bool) ([]model.CodedQuestion, error) {
	var cqs []model.CodedQuestion
	query := r.db.
		Preload("CodedAnswers.Annotations").
		Preload("Flag").
		Where("project_id = ? AND project_jurisdiction_id = ? AND validated = ?", projectID, jurisdictionID, validated)
	if !validated {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Order("scheme_question_id ASC").Find(&cqs).Error
	return cqs, err
}

func (r *codedQuestionRepository) FindAllForQuestion(projectID, jurisdictionID, questionID uint) ([]model.CodedQuestion, error) {
	var cqs []model.CodedQuestion
	err := r.db.
		Preload("CodedAnswers.Annotations").
		Preload("Flag").
		Preload("User").
		Where("project_id = ? AND project_jurisdiction_id = ? AND scheme_question_id = ? AND validated = ?",
			projectID, jurisdictionID, questionID, false).
		Order("user_id ASC, category_id ASC").
		Find(&cqs).Error
	return cqs, err
}

func (r *codedQuestionRepository) FindCodedInScope(projectID uint, jurisdictionID int64) ([]model.CodedQuestion, error) {
	var cqs []model.CodedQuestion
	query := r.db.
		Preload("CodedAnswers.Annotations").
		Preload("Flag").
		Where("project_id = ? AND validated = ?", projectID, false)
	if jurisdictionID >= 0 {
		query = query.Where("project_jurisdiction_id = ?", jurisdictionID)
	}
	err := query.Order("scheme_question_id ASC, updated_at ASC").Find(&cqs).Error
	return cqs, err
}
