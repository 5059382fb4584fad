package model

import (
	"time"

	"gorm.io/gorm"
)

// Project groups a coding scheme with the jurisdictions its document set spans.
type Project struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `json:"name" gorm:"not null;uniqueIndex"`
	Jurisdictions []Jurisdiction `json:"jurisdictions,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Jurisdiction is one segment of a project's document set, coded independently.
type Jurisdiction struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProjectID uint           `json:"project_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
