package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types supported by a coding scheme.
const (
	QuestionTypeBinary         = 1
	QuestionTypeCategoryChoice = 2
	QuestionTypeCheckbox       = 3
	QuestionTypeMultipleChoice = 4
	QuestionTypeText           = 5
)

// SchemeQuestion is one node of a project's coding scheme. The scheme is a tree:
// ParentID 0 means the question hangs off the root, PositionInParent orders
// siblings. Questions marked IsCategoryQuestion are answered once per category
// selected on their category-choice parent.
type SchemeQuestion struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	ProjectID          uint           `json:"project_id" gorm:"not null;index"`
	Text               string         `json:"text" gorm:"type:text;not null"`
	QuestionType       int            `json:"question_type" gorm:"not null"` // binary, category-choice, checkbox, multiple-choice, text
	ParentID           uint           `json:"parent_id" gorm:"not null;default:0"`
	PositionInParent   int            `json:"position_in_parent" gorm:"not null"`
	IsCategoryQuestion bool           `json:"is_category_question" gorm:"not null;default:false"`
	Hint               string         `json:"hint,omitempty"`
	PossibleAnswers    []AnswerChoice `json:"possible_answers,omitempty" gorm:"foreignKey:SchemeQuestionID;constraint:OnDelete:CASCADE"`
	Flags              []Flag         `json:"flags" gorm:"foreignKey:SchemeQuestionID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerChoice is one selectable answer of a scheme question. For
// category-choice questions each choice is a category value.
type AnswerChoice struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	SchemeQuestionID uint           `json:"scheme_question_id" gorm:"not null;index"`
	Text             string         `json:"text" gorm:"not null"`
	Order            int            `json:"order" gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
