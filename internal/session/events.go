package session

import (
	"fmt"

	"github.com/htloc2506/codingdesk/internal/model"
)

// ToggleChoice applies an answer-choice selection on the current question.
// Toggling a category-choice question also prunes the categorized records of
// its category children, so deselected categories lose their sub-answers.
func (s *Session) ToggleChoice(answerChoiceID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	question := s.current.Question
	var choice *model.AnswerChoice
	for i := range question.PossibleAnswers {
		if question.PossibleAnswers[i].ID == answerChoiceID {
			choice = &question.PossibleAnswers[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("answer choice %d does not belong to question %d", answerChoiceID, question.ID)
	}
	s.store.ToggleChoice(question, s.current.SelectedCategoryID, *choice)
	if question.QuestionType == model.QuestionTypeCategoryChoice {
		selected := s.store.SelectedCategories(question)
		for _, childID := range s.tree.ChildIDs(question.ID) {
			if child, ok := s.tree.Question(childID); ok && child.IsCategoryQuestion {
				s.store.PruneCategories(childID, selected)
			}
		}
	}
	s.scheduleSave()
	return nil
}

// SetComment overwrites the comment of the current record.
func (s *Session) SetComment(comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	s.store.SetComment(s.current.Question.ID, s.current.SelectedCategoryID, comment)
	s.scheduleSave()
	return nil
}

// SetPincite overwrites the pincite of a selected answer choice.
func (s *Session) SetPincite(answerChoiceID uint, pincite string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.store.SetPincite(s.current.Question.ID, s.current.SelectedCategoryID, answerChoiceID, pincite); err != nil {
		return err
	}
	s.scheduleSave()
	return nil
}

// SetTextAnswer overwrites the free-text answer of a selected choice.
func (s *Session) SetTextAnswer(answerChoiceID uint, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.store.SetTextAnswer(s.current.Question.ID, s.current.SelectedCategoryID, answerChoiceID, text); err != nil {
		return err
	}
	s.scheduleSave()
	return nil
}

// AddAnnotation appends a document annotation to a selected choice.
func (s *Session) AddAnnotation(answerChoiceID uint, annotation model.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.store.AddAnnotation(s.current.Question.ID, s.current.SelectedCategoryID, answerChoiceID, annotation); err != nil {
		return err
	}
	s.scheduleSave()
	return nil
}

// RemoveAnnotation removes the annotation at index from a selected choice.
func (s *Session) RemoveAnnotation(answerChoiceID uint, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	if _, err := s.store.RemoveAnnotation(s.current.Question.ID, s.current.SelectedCategoryID, answerChoiceID, index); err != nil {
		return err
	}
	s.scheduleSave()
	return nil
}

// ClearAnswer resets the current record's selections, keeping comment and
// flag.
func (s *Session) ClearAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	question := s.current.Question
	s.store.ClearAnswer(question.ID, s.current.SelectedCategoryID)
	if question.QuestionType == model.QuestionTypeCategoryChoice {
		for _, childID := range s.tree.ChildIDs(question.ID) {
			if child, ok := s.tree.Question(childID); ok && child.IsCategoryQuestion {
				s.store.PruneCategories(childID, nil)
			}
		}
	}
	s.scheduleSave()
	return nil
}

// ApplyToAllCategories copies the active category's selections into every
// other category of the current question, then saves each touched category.
func (s *Session) ApplyToAllCategories() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	question := s.current.Question
	if !question.IsCategoryQuestion || s.current.SelectedCategoryID == 0 {
		return fmt.Errorf("question %d has no active category to copy from", question.ID)
	}
	if err := s.store.ApplyToAllCategories(question.ID, s.current.SelectedCategoryID); err != nil {
		return err
	}
	s.unsavedChanges = true
	for categoryID := range s.store.CategoryRecords(question.ID) {
		id := s.queueIDFor(question.ID, categoryID)
		s.debounce.Trigger(id, func() { s.requestSave(id) })
	}
	return nil
}

// SetRecordFlag overwrites the flag on the current record.
func (s *Session) SetRecordFlag(flagType int, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	flag := &model.Flag{Type: flagType, Notes: notes, RaisedByID: s.UserID}
	s.store.SetFlag(s.current.Question.ID, s.current.SelectedCategoryID, flag)
	s.scheduleSave()
	return nil
}
