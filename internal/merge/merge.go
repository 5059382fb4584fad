package merge

import "github.com/htloc2506/codingdesk/internal/model"

// Submission is one coder's answer set for a single scheme question, as
// returned by the backend. Category questions carry one coded question per
// category the coder answered.
type Submission struct {
	Coder          model.User
	CodedQuestions []model.CodedQuestion
}

// CoderAnswer is one answer entry contributed to a merged question, tagged
// with the coder who made it.
type CoderAnswer struct {
	AnswerChoiceID uint         `json:"answer_choice_id"`
	Pincite        string       `json:"pincite"`
	TextAnswer     string       `json:"text_answer"`
	Annotations    []model.Annotation `json:"annotations"`
	UserID         uint         `json:"user_id"`
}

// FlagComment is one coder's flag and/or comment on the question. When a
// submission carries both, they are combined into a single entry.
type FlagComment struct {
	Type     int        `json:"type,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	Comment  string     `json:"comment,omitempty"`
	RaisedBy model.User `json:"raised_by"`
}

// MergedQuestion aggregates every coder's contribution for one scheme
// question, for display to a validator. It is ephemeral: rebuilt in full on
// every question change, never persisted or incrementally updated, since
// coder answers may change server-side between visits.
type MergedQuestion struct {
	Answers       []CoderAnswer `json:"answers"`
	FlagsComments []FlagComment `json:"flags_comments"`
}

func newMerged() *MergedQuestion {
	return &MergedQuestion{Answers: []CoderAnswer{}, FlagsComments: []FlagComment{}}
}

// Build folds coder submissions for a non-category question into one merged
// aggregate. Entry order follows submission arrival order; no de-duplication
// is performed across coders.
func Build(submissions []Submission) *MergedQuestion {
	merged := newMerged()
	for _, sub := range submissions {
		for i := range sub.CodedQuestions {
			fold(merged, sub.Coder, &sub.CodedQuestions[i])
		}
	}
	return merged
}

// BuildByCategory folds coder submissions for a category question into one
// merged aggregate per category id.
func BuildByCategory(submissions []Submission) map[uint]*MergedQuestion {
	byCategory := make(map[uint]*MergedQuestion)
	for _, sub := range submissions {
		for i := range sub.CodedQuestions {
			cq := &sub.CodedQuestions[i]
			if cq.CategoryID == nil || *cq.CategoryID == 0 {
				continue
			}
			merged, ok := byCategory[*cq.CategoryID]
			if !ok {
				merged = newMerged()
				byCategory[*cq.CategoryID] = merged
			}
			fold(merged, sub.Coder, cq)
		}
	}
	return byCategory
}

func fold(merged *MergedQuestion, coder model.User, cq *model.CodedQuestion) {
	for _, ca := range cq.CodedAnswers {
		merged.Answers = append(merged.Answers, CoderAnswer{
			AnswerChoiceID: ca.AnswerChoiceID,
			Pincite:        ca.Pincite,
			TextAnswer:     ca.TextAnswer,
			Annotations:    ca.Annotations,
			UserID:         coder.ID,
		})
	}
	if cq.Flag == nil && cq.Comment == "" {
		return
	}
	fc := FlagComment{Comment: cq.Comment, RaisedBy: coder}
	if cq.Flag != nil {
		fc.Type = cq.Flag.Type
		fc.Notes = cq.Flag.Notes
	}
	merged.FlagsComments = append(merged.FlagsComments, fc)
}
