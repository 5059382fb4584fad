package model

import (
	"time"

	"gorm.io/gorm"
)

// Flag severities. A red flag is raised on a scheme question itself and stops
// coding of that question; green and yellow flags travel with an individual
// answer record.
const (
	FlagRed    = 1
	FlagYellow = 2
	FlagGreen  = 3
)

// Flag is raised either on a scheme question (SchemeQuestionID set, red flags)
// or on a coded question (CodedQuestionID set). Exactly one of the two owners
// is non-nil.
type Flag struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Type             int            `json:"type" gorm:"not null"`
	Notes            string         `json:"notes" gorm:"type:text"`
	RaisedByID       uint           `json:"raised_by_id" gorm:"not null"`
	RaisedBy         User           `json:"raised_by,omitempty" gorm:"foreignKey:RaisedByID"`
	SchemeQuestionID *uint          `json:"scheme_question_id,omitempty" gorm:"index"`
	CodedQuestionID  *uint          `json:"coded_question_id,omitempty" gorm:"index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
