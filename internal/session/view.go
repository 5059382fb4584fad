package session

import (
	"sort"

	"github.com/htloc2506/codingdesk/internal/merge"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// RecordView is the current record's answer state as shown to the actor.
type RecordView struct {
	ID                 uint                 `json:"id,omitempty"`
	Answers            []model.CodedAnswer  `json:"answers"`
	Comment            string               `json:"comment"`
	Flag               *model.Flag          `json:"flag,omitempty"`
	IsNewCodedQuestion bool                 `json:"is_new_coded_question"`
	HasMadePost        bool                 `json:"has_made_post"`
}

// View is a consistent snapshot of the session for one render: the resolved
// question, its record, the annotated tree, and (for validators) the merged
// coder answers. Notices are drained by the call that takes the snapshot.
type View struct {
	SessionID          string                         `json:"session_id"`
	Question           *model.SchemeQuestion          `json:"question,omitempty"`
	Index              int                            `json:"index"`
	TotalQuestions     int                            `json:"total_questions"`
	Categories         []model.AnswerChoice           `json:"categories,omitempty"`
	SelectedCategory   int                            `json:"selected_category"`
	SelectedCategoryID uint                           `json:"selected_category_id,omitempty"`
	Record             *RecordView                    `json:"record,omitempty"`
	Tree               []*scheme.Node                 `json:"tree"`
	Merged             *merge.MergedQuestion          `json:"merged,omitempty"`
	MergedByCategory   map[uint]*merge.MergedQuestion `json:"merged_by_category,omitempty"`
	Coders             map[uint]model.User            `json:"coders,omitempty"`
	EditsDisabled      bool                           `json:"edits_disabled"`
	UnsavedChanges     bool                           `json:"unsaved_changes"`
	Notices            []Notice                       `json:"notices"`
}

// View takes a snapshot of the session state under the lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:          s.ID,
		Index:              s.current.Index,
		SelectedCategory:   s.current.SelectedCategory,
		SelectedCategoryID: s.current.SelectedCategoryID,
		EditsDisabled:      s.editsDisabled,
		UnsavedChanges:     s.unsavedChanges,
		Notices:            s.notices,
	}
	// The snapshot must not alias session state once the lock is released.
	if len(s.current.Categories) > 0 {
		v.Categories = append([]model.AnswerChoice(nil), s.current.Categories...)
	}
	if s.merged != nil {
		merged := *s.merged
		v.Merged = &merged
	}
	if len(s.mergedByCategory) > 0 {
		v.MergedByCategory = make(map[uint]*merge.MergedQuestion, len(s.mergedByCategory))
		for id, m := range s.mergedByCategory {
			merged := *m
			v.MergedByCategory[id] = &merged
		}
	}
	if v.Notices == nil {
		v.Notices = []Notice{}
	}
	s.notices = nil

	if s.tree != nil {
		v.Tree = scheme.Render(s.tree, s.store)
		v.TotalQuestions = s.tree.Len()
	}
	if q := s.current.Question; q != nil {
		qCopy := *q
		v.Question = &qCopy
		if rec, ok := s.store.Record(q.ID, s.current.SelectedCategoryID); ok {
			view := &RecordView{
				ID:                 rec.ID,
				Answers:            []model.CodedAnswer{},
				Comment:            rec.Comment,
				Flag:               rec.Flag,
				IsNewCodedQuestion: rec.IsNewCodedQuestion,
				HasMadePost:        rec.HasMadePost,
			}
			for _, ans := range rec.Answers {
				view.Answers = append(view.Answers, model.CodedAnswer{
					CodedQuestionID: rec.ID,
					AnswerChoiceID:  ans.AnswerChoiceID,
					Pincite:         ans.Pincite,
					TextAnswer:      ans.TextAnswer,
					Annotations:     ans.Annotations,
				})
			}
			sort.Slice(view.Answers, func(i, j int) bool {
				return view.Answers[i].AnswerChoiceID < view.Answers[j].AnswerChoiceID
			})
			v.Record = view
		}
	}
	if len(s.coders) > 0 {
		v.Coders = make(map[uint]model.User, len(s.coders))
		for id, u := range s.coders {
			v.Coders[id] = u
		}
	}
	return v
}
