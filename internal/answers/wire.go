package answers

import "github.com/htloc2506/codingdesk/internal/model"

// FromCodedQuestion converts a backend answer record into a store record.
func FromCodedQuestion(cq *model.CodedQuestion) *Record {
	rec := &Record{
		ID:                 cq.ID,
		SchemeQuestionID:   cq.SchemeQuestionID,
		Answers:            make(map[uint]*ChoiceAnswer, len(cq.CodedAnswers)),
		Comment:            cq.Comment,
		Flag:               cq.Flag,
		IsNewCodedQuestion: cq.ID == 0,
	}
	for _, ca := range cq.CodedAnswers {
		rec.Answers[ca.AnswerChoiceID] = &ChoiceAnswer{
			AnswerChoiceID: ca.AnswerChoiceID,
			Pincite:        ca.Pincite,
			TextAnswer:     ca.TextAnswer,
			Annotations:    ca.Annotations,
		}
	}
	return rec
}

// Hydrate folds backend records into the store, replacing any local record at
// the same question/category key.
func (s *Store) Hydrate(records []model.CodedQuestion) {
	for i := range records {
		cq := &records[i]
		rec := FromCodedQuestion(cq)
		if cq.CategoryID != nil && *cq.CategoryID != 0 {
			if s.categorized[cq.SchemeQuestionID] == nil {
				s.categorized[cq.SchemeQuestionID] = make(map[uint]*Record)
			}
			s.categorized[cq.SchemeQuestionID][*cq.CategoryID] = rec
		} else {
			s.simple[cq.SchemeQuestionID] = rec
		}
	}
}

// Replace overwrites the record at a question/category key with the backend's
// version, used when the server reports a conflicting object.
func (s *Store) Replace(categoryID uint, cq *model.CodedQuestion) *Record {
	rec := FromCodedQuestion(cq)
	if categoryID != 0 {
		if s.categorized[cq.SchemeQuestionID] == nil {
			s.categorized[cq.SchemeQuestionID] = make(map[uint]*Record)
		}
		s.categorized[cq.SchemeQuestionID][categoryID] = rec
	} else {
		s.simple[cq.SchemeQuestionID] = rec
	}
	return rec
}

// ToCodedQuestion builds the outbound persistence shape of a record.
func (r *Record) ToCodedQuestion(projectID, jurisdictionID, userID, categoryID uint, validated bool) model.CodedQuestion {
	cq := model.CodedQuestion{
		ID:                    r.ID,
		SchemeQuestionID:      r.SchemeQuestionID,
		ProjectID:             projectID,
		ProjectJurisdictionID: jurisdictionID,
		UserID:                userID,
		Validated:             validated,
		Comment:               r.Comment,
		Flag:                  r.Flag,
	}
	if categoryID != 0 {
		cat := categoryID
		cq.CategoryID = &cat
	}
	for _, ans := range r.Answers {
		// Annotation rows hydrated from the backend still carry their row ids.
		// The outbound payload must detach them, or persisting it as another
		// record re-parents the rows away from the record they belong to.
		var annotations []model.Annotation
		if len(ans.Annotations) > 0 {
			annotations = make([]model.Annotation, len(ans.Annotations))
			for i, an := range ans.Annotations {
				an.ID = 0
				an.CodedAnswerID = 0
				annotations[i] = an
			}
		}
		cq.CodedAnswers = append(cq.CodedAnswers, model.CodedAnswer{
			CodedQuestionID: r.ID,
			AnswerChoiceID:  ans.AnswerChoiceID,
			Pincite:         ans.Pincite,
			TextAnswer:      ans.TextAnswer,
			Annotations:     annotations,
		})
	}
	return cq
}
