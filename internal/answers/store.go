package answers

import (
	"sort"

	"github.com/htloc2506/codingdesk/internal/model"
)

// ChoiceAnswer is the selection state for one answer choice inside a record:
// the pincite supporting it, any document annotations, and the free-text
// answer for text questions.
type ChoiceAnswer struct {
	AnswerChoiceID uint
	Pincite        string
	TextAnswer     string
	Annotations    []model.Annotation
}

// Record is the current actor's answer for one scheme question, or for one
// category of a category question. ID stays 0 until the backend assigns one on
// the first successful save; IsNewCodedQuestion is true exactly until then.
// HasMadePost is true while a create/update request for this record is in
// flight.
type Record struct {
	ID                 uint
	SchemeQuestionID   uint
	Answers            map[uint]*ChoiceAnswer
	Comment            string
	Flag               *model.Flag
	HasMadePost        bool
	IsNewCodedQuestion bool
	UnsavedChanges     bool
}

// NewRecord returns an empty skeleton for a question never answered before.
func NewRecord(schemeQuestionID uint) *Record {
	return &Record{
		SchemeQuestionID:   schemeQuestionID,
		Answers:            make(map[uint]*ChoiceAnswer),
		IsNewCodedQuestion: true,
	}
}

// Store holds every answer record of the current actor for one coding session.
// Category questions branch into one record per selected category value, so
// they live in a second map keyed by question id then category id.
type Store struct {
	simple      map[uint]*Record
	categorized map[uint]map[uint]*Record
}

func NewStore() *Store {
	return &Store{
		simple:      make(map[uint]*Record),
		categorized: make(map[uint]map[uint]*Record),
	}
}

// Record returns the record addressed by question and category. A category id
// of 0 addresses the simple record of a non-category question.
func (s *Store) Record(questionID, categoryID uint) (*Record, bool) {
	if categoryID == 0 {
		r, ok := s.simple[questionID]
		return r, ok
	}
	byCat, ok := s.categorized[questionID]
	if !ok {
		return nil, false
	}
	r, ok := byCat[categoryID]
	return r, ok
}

// Visit returns the record for the addressed question/category, creating an
// empty skeleton on first navigation to it.
func (s *Store) Visit(questionID, categoryID uint) *Record {
	if r, ok := s.Record(questionID, categoryID); ok {
		return r
	}
	r := NewRecord(questionID)
	if categoryID == 0 {
		s.simple[questionID] = r
		return r
	}
	if s.categorized[questionID] == nil {
		s.categorized[questionID] = make(map[uint]*Record)
	}
	s.categorized[questionID][categoryID] = r
	return r
}

// CategoryRecords returns the categorized records of a category question,
// keyed by category id. The map is the store's own; callers must not mutate.
func (s *Store) CategoryRecords(questionID uint) map[uint]*Record {
	return s.categorized[questionID]
}

// SelectedCategories returns the category values currently selected on a
// category-choice question, in choice order. Empty when the question has not
// been answered.
func (s *Store) SelectedCategories(parent *model.SchemeQuestion) []model.AnswerChoice {
	rec, ok := s.Record(parent.ID, 0)
	if !ok || len(rec.Answers) == 0 {
		return nil
	}
	var selected []model.AnswerChoice
	for _, choice := range parent.PossibleAnswers {
		if _, picked := rec.Answers[choice.ID]; picked {
			selected = append(selected, choice)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Order < selected[j].Order })
	return selected
}

// IsAnswered reports whether a non-category question has a non-empty answer.
// Category questions are answered only when every currently-selected category
// has one; see IsCategoryAnswered.
func (s *Store) IsAnswered(questionID uint) bool {
	rec, ok := s.Record(questionID, 0)
	return ok && len(rec.Answers) > 0
}

// IsCategoryAnswered reports whether every selected category of a category
// question carries a non-empty answer. False when nothing is selected.
func (s *Store) IsCategoryAnswered(questionID uint, selected []model.AnswerChoice) bool {
	if len(selected) == 0 {
		return false
	}
	for _, cat := range selected {
		rec, ok := s.Record(questionID, cat.ID)
		if !ok || len(rec.Answers) == 0 {
			return false
		}
	}
	return true
}

// CategoryProgress is the fraction of selected categories answered so far.
func (s *Store) CategoryProgress(questionID uint, selected []model.AnswerChoice) float64 {
	if len(selected) == 0 {
		return 0
	}
	answered := 0
	for _, cat := range selected {
		if rec, ok := s.Record(questionID, cat.ID); ok && len(rec.Answers) > 0 {
			answered++
		}
	}
	return float64(answered) / float64(len(selected))
}

// HasUnsaved reports whether any record in the store carries unsaved edits.
func (s *Store) HasUnsaved() bool {
	for _, r := range s.simple {
		if r.UnsavedChanges {
			return true
		}
	}
	for _, byCat := range s.categorized {
		for _, r := range byCat {
			if r.UnsavedChanges {
				return true
			}
		}
	}
	return false
}
