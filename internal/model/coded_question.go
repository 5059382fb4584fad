package model

import (
	"time"

	"gorm.io/gorm"
)

// CodedQuestion is one actor's answer record for one scheme question, in one
// jurisdiction of one project. Validated records use the same shape with
// Validated=true; there is at most one validated record per question/category
// per jurisdiction. CategoryID is nil for non-category questions.
type CodedQuestion struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	SchemeQuestionID      uint           `json:"scheme_question_id" gorm:"not null;index"`
	ProjectID             uint           `json:"project_id" gorm:"not null;index"`
	ProjectJurisdictionID uint           `json:"project_jurisdiction_id" gorm:"not null;index"`
	UserID                uint           `json:"user_id" gorm:"not null;index"`
	User                  User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID            *uint          `json:"category_id,omitempty" gorm:"index"`
	Validated             bool           `json:"validated" gorm:"not null;default:false;index"`
	Comment               string         `json:"comment" gorm:"type:text"`
	Flag                  *Flag          `json:"flag,omitempty" gorm:"foreignKey:CodedQuestionID"`
	CodedAnswers          []CodedAnswer  `json:"coded_answers" gorm:"foreignKey:CodedQuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// CodedAnswer is one selected answer choice within a coded question, together
// with its supporting pincite, free-text answer and document annotations.
type CodedAnswer struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CodedQuestionID uint           `json:"coded_question_id" gorm:"not null;index"`
	AnswerChoiceID  uint           `json:"answer_choice_id" gorm:"not null"`
	Pincite         string         `json:"pincite" gorm:"type:text"`
	TextAnswer      string         `json:"text_answer" gorm:"type:text"`
	Annotations     []Annotation   `json:"annotations" gorm:"foreignKey:CodedAnswerID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Annotation is a highlighted excerpt of a document supporting an answer.
type Annotation struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CodedAnswerID uint           `json:"coded_answer_id" gorm:"index"`
	DocumentID    string         `json:"doc_id"`
	Text          string         `json:"text" gorm:"type:text"`
	StartPage     int            `json:"start_page"`
	EndPage       int            `json:"end_page"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
