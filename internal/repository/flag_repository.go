package repository

import (
	"github.com/htloc2506/codingdesk/internal/model"
	"gorm.io/gorm"
)

type FlagRepository interface {
	Create(flag *model.Flag) error
	FindByID(id uint) (*model.Flag, error)
	Delete(id uint) error
}

type flagRepository struct {
	db *gorm.DB
}

func NewFlagRepository(db *gorm.DB) FlagRepository {
	return &flagRepository{db: db}
}

func (r *flagRepository) Create(flag *model.Flag) error {
	return r.db.Create(flag).Error
}

func (r *flagRepository) FindByID(id uint) (*model.Flag, error) {
	var flag model.Flag
	if err := r.db.First(&flag, id).Error; err != nil {
		return nil, err
	}
	return &flag, nil
}

func (r *flagRepository) Delete(id uint) error {
	return r.db.Delete(&model.Flag{}, id).Error
}
