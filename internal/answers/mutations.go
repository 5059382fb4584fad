package answers

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htloc2506/codingdesk/internal/model"
)

// ToggleChoice applies an answer-choice selection to the record addressed by
// question/category. Binary, multiple-choice and text questions carry a single
// selection which is replaced; checkbox and category-choice questions toggle
// membership of the choice in the answer map.
func (s *Store) ToggleChoice(question *model.SchemeQuestion, categoryID uint, choice model.AnswerChoice) *Record {
	rec := s.Visit(question.ID, categoryID)
	switch question.QuestionType {
	case model.QuestionTypeCheckbox, model.QuestionTypeCategoryChoice:
		if _, ok := rec.Answers[choice.ID]; ok {
			delete(rec.Answers, choice.ID)
		} else {
			rec.Answers[choice.ID] = &ChoiceAnswer{AnswerChoiceID: choice.ID}
		}
	default:
		for id := range rec.Answers {
			delete(rec.Answers, id)
		}
		rec.Answers[choice.ID] = &ChoiceAnswer{AnswerChoiceID: choice.ID}
	}
	rec.UnsavedChanges = true
	return rec
}

// PruneCategories drops every categorized record of a category question whose
// category is no longer selected on the parent. Deselected categories lose
// their pincites and annotations; reselecting starts from an empty skeleton.
func (s *Store) PruneCategories(questionID uint, selected []model.AnswerChoice) {
	byCat := s.categorized[questionID]
	if byCat == nil {
		return
	}
	keep := make(map[uint]bool, len(selected))
	for _, cat := range selected {
		keep[cat.ID] = true
	}
	for catID := range byCat {
		if !keep[catID] {
			delete(byCat, catID)
		}
	}
}

// SetComment overwrites the record's comment.
func (s *Store) SetComment(questionID, categoryID uint, comment string) *Record {
	rec := s.Visit(questionID, categoryID)
	rec.Comment = comment
	rec.UnsavedChanges = true
	return rec
}

// SetTextAnswer overwrites the free-text answer of a selected choice.
func (s *Store) SetTextAnswer(questionID, categoryID, answerChoiceID uint, text string) (*Record, error) {
	rec := s.Visit(questionID, categoryID)
	ans, ok := rec.Answers[answerChoiceID]
	if !ok {
		return nil, fmt.Errorf("answer choice %d is not selected on question %d", answerChoiceID, questionID)
	}
	ans.TextAnswer = text
	rec.UnsavedChanges = true
	return rec, nil
}

// SetPincite overwrites the pincite of a selected choice.
func (s *Store) SetPincite(questionID, categoryID, answerChoiceID uint, pincite string) (*Record, error) {
	rec := s.Visit(questionID, categoryID)
	ans, ok := rec.Answers[answerChoiceID]
	if !ok {
		return nil, fmt.Errorf("answer choice %d is not selected on question %d", answerChoiceID, questionID)
	}
	ans.Pincite = pincite
	rec.UnsavedChanges = true
	return rec, nil
}

// AddAnnotation appends a document annotation to a selected choice and folds
// its citation into the choice's pincite, joined with "; " when a pincite
// already exists.
func (s *Store) AddAnnotation(questionID, categoryID, answerChoiceID uint, annotation model.Annotation) (*Record, error) {
	rec := s.Visit(questionID, categoryID)
	ans, ok := rec.Answers[answerChoiceID]
	if !ok {
		return nil, fmt.Errorf("answer choice %d is not selected on question %d", answerChoiceID, questionID)
	}
	ans.Annotations = append(ans.Annotations, annotation)
	citation := Citation(annotation)
	if citation != "" {
		if ans.Pincite != "" {
			ans.Pincite = ans.Pincite + "; " + citation
		} else {
			ans.Pincite = citation
		}
	}
	rec.UnsavedChanges = true
	return rec, nil
}

// RemoveAnnotation removes the annotation at index from a selected choice.
func (s *Store) RemoveAnnotation(questionID, categoryID, answerChoiceID uint, index int) (*Record, error) {
	rec := s.Visit(questionID, categoryID)
	ans, ok := rec.Answers[answerChoiceID]
	if !ok {
		return nil, fmt.Errorf("answer choice %d is not selected on question %d", answerChoiceID, questionID)
	}
	if index < 0 || index >= len(ans.Annotations) {
		return nil, fmt.Errorf("annotation index %d out of range on answer choice %d", index, answerChoiceID)
	}
	ans.Annotations = append(ans.Annotations[:index], ans.Annotations[index+1:]...)
	rec.UnsavedChanges = true
	return rec, nil
}

// ClearAnswer resets the record's selections while keeping comment and flag.
func (s *Store) ClearAnswer(questionID, categoryID uint) *Record {
	rec := s.Visit(questionID, categoryID)
	rec.Answers = make(map[uint]*ChoiceAnswer)
	rec.UnsavedChanges = true
	return rec
}

// SetFlag overwrites the flag on the addressed record.
func (s *Store) SetFlag(questionID, categoryID uint, flag *model.Flag) *Record {
	rec := s.Visit(questionID, categoryID)
	rec.Flag = flag
	rec.UnsavedChanges = true
	return rec
}

// ApplyToAllCategories copies the source category's selections into every
// other existing category record of the same question. Each target keeps its
// own remote id, comment and flag; only the answer map is replaced, with a
// deep copy so later edits to one category do not leak into another.
func (s *Store) ApplyToAllCategories(questionID, fromCategoryID uint) error {
	byCat := s.categorized[questionID]
	source, ok := byCat[fromCategoryID]
	if !ok {
		return fmt.Errorf("no record for category %d on question %d", fromCategoryID, questionID)
	}
	for catID, target := range byCat {
		if catID == fromCategoryID {
			continue
		}
		copied := make(map[uint]*ChoiceAnswer, len(source.Answers))
		if err := copier.CopyWithOption(&copied, &source.Answers, copier.Option{DeepCopy: true}); err != nil {
			return fmt.Errorf("error copying answers to category %d: %w", catID, err)
		}
		target.Answers = copied
		target.UnsavedChanges = true
	}
	return nil
}

// Citation derives the pincite fragment for an annotation.
func Citation(a model.Annotation) string {
	if a.DocumentID == "" {
		return ""
	}
	if a.StartPage == 0 {
		return a.DocumentID
	}
	if a.EndPage != 0 && a.EndPage != a.StartPage {
		return fmt.Sprintf("%s, pp. %d-%d", a.DocumentID, a.StartPage, a.EndPage)
	}
	return fmt.Sprintf("%s, p. %d", a.DocumentID, a.StartPage)
}
