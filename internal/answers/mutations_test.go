package answers

import (
	"testing"

	"github.com/htloc2506/codingdesk/internal/model"
)

func TestToggleChoiceSingleSelection(t *testing.T) {
	for _, qType := range []int{model.QuestionTypeBinary, model.QuestionTypeMultipleChoice, model.QuestionTypeText} {
		s := NewStore()
		q := &model.SchemeQuestion{ID: 1, QuestionType: qType}

		s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
		rec := s.ToggleChoice(q, 0, model.AnswerChoice{ID: 202})

		if len(rec.Answers) != 1 {
			t.Fatalf("type %d: %d selections, want 1", qType, len(rec.Answers))
		}
		if _, ok := rec.Answers[202]; !ok {
			t.Errorf("type %d: expected the later choice to replace the earlier one", qType)
		}
	}
}

func TestToggleChoiceMembership(t *testing.T) {
	for _, qType := range []int{model.QuestionTypeCheckbox, model.QuestionTypeCategoryChoice} {
		s := NewStore()
		q := &model.SchemeQuestion{ID: 1, QuestionType: qType}

		s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
		rec := s.ToggleChoice(q, 0, model.AnswerChoice{ID: 202})
		if len(rec.Answers) != 2 {
			t.Fatalf("type %d: %d selections, want 2", qType, len(rec.Answers))
		}

		// Toggling an already-picked choice removes it.
		rec = s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
		if len(rec.Answers) != 1 {
			t.Errorf("type %d: %d selections after re-toggle, want 1", qType, len(rec.Answers))
		}
		if _, ok := rec.Answers[201]; ok {
			t.Errorf("type %d: re-toggled choice still selected", qType)
		}
	}
}

func TestDoubleToggleLeavesUnanswered(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeCheckbox}

	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})

	if s.IsAnswered(q.ID) {
		t.Error("toggling the same choice twice must leave the question unanswered")
	}
}

func TestSetPinciteRequiresSelection(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeBinary}

	if _, err := s.SetPincite(q.ID, 0, 201, "p. 4"); err == nil {
		t.Fatal("expected an error for an unselected choice")
	}

	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
	rec, err := s.SetPincite(q.ID, 0, 201, "p. 4")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Answers[201].Pincite != "p. 4" {
		t.Errorf("pincite = %q, want %q", rec.Answers[201].Pincite, "p. 4")
	}
}

func TestSetTextAnswer(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeText}
	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 501})

	rec, err := s.SetTextAnswer(q.ID, 0, 501, "because the statute says so")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Answers[501].TextAnswer != "because the statute says so" {
		t.Error("text answer was not stored")
	}
	if _, err := s.SetTextAnswer(q.ID, 0, 999, "x"); err == nil {
		t.Error("expected an error for an unselected choice")
	}
}

func TestAddAnnotationFoldsCitationIntoPincite(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeBinary}
	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})

	rec, err := s.AddAnnotation(q.ID, 0, 201, model.Annotation{DocumentID: "doc-a", StartPage: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Answers[201].Pincite; got != "doc-a, p. 3" {
		t.Errorf("pincite = %q, want %q", got, "doc-a, p. 3")
	}

	rec, err = s.AddAnnotation(q.ID, 0, 201, model.Annotation{DocumentID: "doc-b", StartPage: 7, EndPage: 9})
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Answers[201].Pincite; got != "doc-a, p. 3; doc-b, pp. 7-9" {
		t.Errorf("pincite = %q, want joined citations", got)
	}
	if len(rec.Answers[201].Annotations) != 2 {
		t.Errorf("%d annotations, want 2", len(rec.Answers[201].Annotations))
	}
}

func TestRemoveAnnotation(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeBinary}
	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
	s.AddAnnotation(q.ID, 0, 201, model.Annotation{DocumentID: "doc-a", StartPage: 1})
	s.AddAnnotation(q.ID, 0, 201, model.Annotation{DocumentID: "doc-b", StartPage: 2})

	rec, err := s.RemoveAnnotation(q.ID, 0, 201, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Answers[201].Annotations) != 1 || rec.Answers[201].Annotations[0].DocumentID != "doc-b" {
		t.Errorf("annotations after remove = %+v", rec.Answers[201].Annotations)
	}

	if _, err := s.RemoveAnnotation(q.ID, 0, 201, 5); err == nil {
		t.Error("expected an out-of-range error")
	}
}

func TestClearAnswerKeepsCommentAndFlag(t *testing.T) {
	s := NewStore()
	q := &model.SchemeQuestion{ID: 1, QuestionType: model.QuestionTypeCheckbox}
	s.ToggleChoice(q, 0, model.AnswerChoice{ID: 201})
	s.SetComment(q.ID, 0, "keep me")
	s.SetFlag(q.ID, 0, &model.Flag{Type: model.FlagYellow})

	rec := s.ClearAnswer(q.ID, 0)
	if len(rec.Answers) != 0 {
		t.Error("selections must be gone after clear")
	}
	if rec.Comment != "keep me" {
		t.Error("comment must survive a clear")
	}
	if rec.Flag == nil || rec.Flag.Type != model.FlagYellow {
		t.Error("flag must survive a clear")
	}
}

func TestPruneCategories(t *testing.T) {
	s := NewStore()
	child := &model.SchemeQuestion{ID: 11, QuestionType: model.QuestionTypeBinary, IsCategoryQuestion: true}
	s.ToggleChoice(child, 101, model.AnswerChoice{ID: 201})
	s.ToggleChoice(child, 102, model.AnswerChoice{ID: 201})
	s.ToggleChoice(child, 103, model.AnswerChoice{ID: 201})

	s.PruneCategories(child.ID, []model.AnswerChoice{{ID: 101}, {ID: 103}})

	if _, ok := s.Record(child.ID, 102); ok {
		t.Error("deselected category's record must be dropped")
	}
	if _, ok := s.Record(child.ID, 101); !ok {
		t.Error("still-selected category's record must survive")
	}

	// Reselecting starts over from a skeleton.
	fresh := s.Visit(child.ID, 102)
	if len(fresh.Answers) != 0 || !fresh.IsNewCodedQuestion {
		t.Error("revisited pruned category must start from an empty skeleton")
	}
}

func TestApplyToAllCategories(t *testing.T) {
	s := NewStore()
	child := &model.SchemeQuestion{ID: 11, QuestionType: model.QuestionTypeBinary, IsCategoryQuestion: true}

	source := s.ToggleChoice(child, 101, model.AnswerChoice{ID: 201})
	s.SetPincite(child.ID, 101, 201, "p. 12")
	source.Comment = "source comment"

	target := s.Visit(child.ID, 102)
	target.ID = 88
	target.Comment = "target comment"

	if err := s.ApplyToAllCategories(child.ID, 101); err != nil {
		t.Fatal(err)
	}

	if target.ID != 88 || target.Comment != "target comment" {
		t.Error("targets must keep their own id and comment")
	}
	if target.Answers[201] == nil || target.Answers[201].Pincite != "p. 12" {
		t.Fatal("selections were not copied to the target")
	}

	// Deep copy: editing the target must not leak back to the source.
	target.Answers[201].Pincite = "changed"
	if source.Answers[201].Pincite != "p. 12" {
		t.Error("copied answers must not share memory with the source")
	}

	if err := s.ApplyToAllCategories(child.ID, 999); err == nil {
		t.Error("expected an error for a missing source category")
	}
}

func TestCitation(t *testing.T) {
	tests := []struct {
		name string
		in   model.Annotation
		want string
	}{
		{"no document", model.Annotation{}, ""},
		{"document only", model.Annotation{DocumentID: "doc-a"}, "doc-a"},
		{"single page", model.Annotation{DocumentID: "doc-a", StartPage: 4}, "doc-a, p. 4"},
		{"same start and end", model.Annotation{DocumentID: "doc-a", StartPage: 4, EndPage: 4}, "doc-a, p. 4"},
		{"page range", model.Annotation{DocumentID: "doc-a", StartPage: 4, EndPage: 6}, "doc-a, pp. 4-6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Citation(tt.in); got != tt.want {
				t.Errorf("Citation(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
