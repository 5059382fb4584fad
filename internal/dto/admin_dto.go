package dto

import "time"

// JurisdictionCreateDTO is one jurisdiction of a new project.
type JurisdictionCreateDTO struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ProjectCreateDTO is for admin to create a project with its jurisdictions.
type ProjectCreateDTO struct {
	Name          string                  `json:"name" binding:"required"`
	Jurisdictions []JurisdictionCreateDTO `json:"jurisdictions" binding:"omitempty,dive"`
}

// AnswerChoiceCreateDTO is one selectable answer of a new scheme question.
type AnswerChoiceCreateDTO struct {
	Text  string `json:"text" binding:"required"`
	Order int    `json:"order" binding:"min=0"`
}

// SchemeQuestionCreateDTO is one question of a scheme upload. ParentIndex
// refers to an earlier question in the same upload; nil hangs the question
// off the root.
type SchemeQuestionCreateDTO struct {
	Text               string                  `json:"text" binding:"required"`
	QuestionType       int                     `json:"question_type" binding:"required,oneof=1 2 3 4 5"`
	IsCategoryQuestion bool                    `json:"is_category_question"`
	ParentIndex        *int                    `json:"parent_index"`
	PositionInParent   int                     `json:"position_in_parent" binding:"min=0"`
	Hint               string                  `json:"hint"`
	PossibleAnswers    []AnswerChoiceCreateDTO `json:"possible_answers" binding:"omitempty,dive"`
}

// SchemeCreateDTO is the full scheme upload for a project.
type SchemeCreateDTO struct {
	Questions []SchemeQuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// JurisdictionResponseDTO is used for displaying a project's jurisdictions.
type JurisdictionResponseDTO struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// ProjectResponseDTO is used for displaying project details.
type ProjectResponseDTO struct {
	ID            uint                      `json:"id"`
	Name          string                    `json:"name"`
	Jurisdictions []JurisdictionResponseDTO `json:"jurisdictions,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}
