package dto

// StartSessionDTO opens a coding or validation session.
type StartSessionDTO struct {
	ProjectID      uint   `json:"project_id" binding:"required"`
	JurisdictionID uint   `json:"jurisdiction_id" binding:"required"`
	UserID         uint   `json:"user_id" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=coder validator"`
}

// NavigateDTO is a navigation command. Index is read for direction "jump",
// QuestionID/CategoryID for "select".
type NavigateDTO struct {
	Direction  string `json:"direction" binding:"required,oneof=next previous jump select"`
	Index      *int   `json:"index"`
	QuestionID uint   `json:"question_id"`
	CategoryID uint   `json:"category_id"`
}

// SelectCategoryDTO switches the active category tab by ordinal.
type SelectCategoryDTO struct {
	Ordinal *int `json:"ordinal" binding:"required"`
}

// ToggleChoiceDTO toggles an answer choice on the current question.
type ToggleChoiceDTO struct {
	AnswerChoiceID uint `json:"answer_choice_id" binding:"required"`
}

// CommentDTO overwrites the current record's comment.
type CommentDTO struct {
	Comment string `json:"comment"`
}

// PinciteDTO overwrites the pincite of a selected choice.
type PinciteDTO struct {
	AnswerChoiceID uint   `json:"answer_choice_id" binding:"required"`
	Pincite        string `json:"pincite"`
}

// TextAnswerDTO overwrites the free-text answer of a selected choice.
type TextAnswerDTO struct {
	AnswerChoiceID uint   `json:"answer_choice_id" binding:"required"`
	TextAnswer     string `json:"text_answer"`
}

// AnnotationCreateDTO appends a document annotation to a selected choice.
type AnnotationCreateDTO struct {
	AnswerChoiceID uint   `json:"answer_choice_id" binding:"required"`
	DocumentID     string `json:"doc_id" binding:"required"`
	Text           string `json:"text"`
	StartPage      int    `json:"start_page" binding:"min=0"`
	EndPage        int    `json:"end_page" binding:"min=0"`
}

// AnnotationRemoveDTO removes an annotation by position.
type AnnotationRemoveDTO struct {
	AnswerChoiceID uint `json:"answer_choice_id" binding:"required"`
	Index          *int `json:"index" binding:"required"`
}

// RecordFlagDTO sets a green or yellow flag on the current record.
type RecordFlagDTO struct {
	Type  int    `json:"type" binding:"required,oneof=2 3"`
	Notes string `json:"notes"`
}

// RedFlagDTO raises a red flag on the current question.
type RedFlagDTO struct {
	Notes string `json:"notes" binding:"required"`
}

// BulkValidateDTO requests a validation pass. CoderID is required for
// question scope.
type BulkValidateDTO struct {
	Scope   string `json:"scope" binding:"required,oneof=question jurisdiction project"`
	CoderID uint   `json:"coder_id"`
}

// ErrorResponse is the error body every endpoint returns.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
