package merge

import (
	"testing"

	"github.com/htloc2506/codingdesk/internal/model"
)

func TestBuildAggregatesAllCoders(t *testing.T) {
	alice := model.User{ID: 1, FirstName: "Alice"}
	bob := model.User{ID: 2, FirstName: "Bob"}

	merged := Build([]Submission{
		{Coder: alice, CodedQuestions: []model.CodedQuestion{{
			SchemeQuestionID: 7,
			CodedAnswers: []model.CodedAnswer{
				{AnswerChoiceID: 201, Pincite: "p. 3"},
				{AnswerChoiceID: 202},
			},
		}}},
		{Coder: bob, CodedQuestions: []model.CodedQuestion{{
			SchemeQuestionID: 7,
			CodedAnswers:     []model.CodedAnswer{{AnswerChoiceID: 201, Pincite: "p. 9"}},
		}}},
	})

	if len(merged.Answers) != 3 {
		t.Fatalf("%d merged answers, want 3", len(merged.Answers))
	}
	// No de-duplication: both coders' picks of choice 201 survive, tagged.
	if merged.Answers[0].UserID != 1 || merged.Answers[2].UserID != 2 {
		t.Errorf("answer attribution wrong: %+v", merged.Answers)
	}
	if merged.Answers[2].Pincite != "p. 9" {
		t.Errorf("pincite = %q, want %q", merged.Answers[2].Pincite, "p. 9")
	}
	if len(merged.FlagsComments) != 0 {
		t.Errorf("%d flag/comment entries, want 0", len(merged.FlagsComments))
	}
}

func TestBuildCombinesFlagAndComment(t *testing.T) {
	carol := model.User{ID: 3, FirstName: "Carol"}

	merged := Build([]Submission{
		{Coder: carol, CodedQuestions: []model.CodedQuestion{{
			SchemeQuestionID: 7,
			Comment:          "needs review",
			Flag:             &model.Flag{Type: model.FlagYellow, Notes: "unsure"},
		}}},
	})

	if len(merged.FlagsComments) != 1 {
		t.Fatalf("%d entries, want 1 combined flag+comment", len(merged.FlagsComments))
	}
	fc := merged.FlagsComments[0]
	if fc.Type != model.FlagYellow || fc.Notes != "unsure" || fc.Comment != "needs review" {
		t.Errorf("combined entry = %+v", fc)
	}
	if fc.RaisedBy.ID != 3 {
		t.Errorf("RaisedBy = %+v, want Carol", fc.RaisedBy)
	}
}

func TestBuildCommentOnly(t *testing.T) {
	merged := Build([]Submission{
		{Coder: model.User{ID: 4}, CodedQuestions: []model.CodedQuestion{{Comment: "just a note"}}},
	})
	if len(merged.FlagsComments) != 1 || merged.FlagsComments[0].Type != 0 {
		t.Errorf("comment-only entry = %+v", merged.FlagsComments)
	}
}

func TestBuildEmptyIsNonNil(t *testing.T) {
	merged := Build(nil)
	if merged.Answers == nil || merged.FlagsComments == nil {
		t.Error("empty merged question must carry empty slices, not nil")
	}
}

func TestBuildByCategory(t *testing.T) {
	north, south := uint(101), uint(102)
	alice := model.User{ID: 1}
	bob := model.User{ID: 2}

	byCat := BuildByCategory([]Submission{
		{Coder: alice, CodedQuestions: []model.CodedQuestion{
			{CategoryID: &north, CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}}},
			{CategoryID: &south, CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 202}}},
		}},
		{Coder: bob, CodedQuestions: []model.CodedQuestion{
			{CategoryID: &north, CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}}},
			// Uncategorized rows are skipped in the by-category build.
			{CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 203}}},
		}},
	})

	if len(byCat) != 2 {
		t.Fatalf("%d categories, want 2", len(byCat))
	}
	if len(byCat[north].Answers) != 2 {
		t.Errorf("%d answers for north, want 2", len(byCat[north].Answers))
	}
	if len(byCat[south].Answers) != 1 || byCat[south].Answers[0].UserID != 1 {
		t.Errorf("south answers = %+v", byCat[south].Answers)
	}
}

func TestBuildOrderIndependentContent(t *testing.T) {
	alice := model.User{ID: 1}
	bob := model.User{ID: 2}
	subA := Submission{Coder: alice, CodedQuestions: []model.CodedQuestion{{CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}}}}}
	subB := Submission{Coder: bob, CodedQuestions: []model.CodedQuestion{{CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 202}}}}}

	forward := Build([]Submission{subA, subB})
	backward := Build([]Submission{subB, subA})

	count := func(m *MergedQuestion) map[uint]uint {
		got := make(map[uint]uint)
		for _, a := range m.Answers {
			got[a.AnswerChoiceID] = a.UserID
		}
		return got
	}
	f, b := count(forward), count(backward)
	if len(f) != len(b) {
		t.Fatal("merged content differs with submission order")
	}
	for k, v := range f {
		if b[k] != v {
			t.Errorf("choice %d attributed to %d vs %d depending on order", k, v, b[k])
		}
	}
}
