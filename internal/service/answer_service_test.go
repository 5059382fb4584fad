package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/htloc2506/codingdesk/internal/answers"
	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Jurisdiction{},
		&model.SchemeQuestion{},
		&model.AnswerChoice{},
		&model.Flag{},
		&model.CodedQuestion{},
		&model.CodedAnswer{},
		&model.Annotation{},
	); err != nil {
		t.Fatal(err)
	}
	return db
}

func newAnswerService(t *testing.T) (AnswerService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	return NewAnswerService(repository.NewCodedQuestionRepository(db)), db
}

func TestSaveAnswerCreate(t *testing.T) {
	svc, _ := newAnswerService(t)

	saved, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5,
		CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == 0 {
		t.Error("expected an assigned id")
	}
}

func TestSaveAnswerDuplicateCreateConflicts(t *testing.T) {
	svc, _ := newAnswerService(t)

	first, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, Comment: "original",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Same key, no id: the duplicate create is rejected and the existing
	// record returned so the caller can adopt it.
	existing, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, Comment: "duplicate",
	})
	if !fault.IsConflict(err) {
		t.Fatalf("err = %v, want a conflict fault", err)
	}
	if existing == nil || existing.ID != first.ID || existing.Comment != "original" {
		t.Errorf("conflict response = %+v, want the original record", existing)
	}
}

func TestSaveAnswerCategoryKeysAreDistinct(t *testing.T) {
	svc, _ := newAnswerService(t)
	north, south := uint(101), uint(102)

	if _, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, CategoryID: &north,
	}); err != nil {
		t.Fatal(err)
	}
	// A different category of the same question is a separate record.
	if _, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, CategoryID: &south,
	}); err != nil {
		t.Errorf("distinct category create failed: %v", err)
	}
}

func TestSaveAnswerUpdate(t *testing.T) {
	svc, _ := newAnswerService(t)

	created, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5,
		CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}, {AnswerChoiceID: 202}},
	})
	if err != nil {
		t.Fatal(err)
	}

	created.Comment = "revised"
	created.CodedAnswers = []model.CodedAnswer{{AnswerChoiceID: 201}}
	updated, err := svc.SaveAnswer(*created)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Comment != "revised" || len(updated.CodedAnswers) != 1 {
		t.Errorf("updated record = %+v", updated)
	}
}

func TestGetAllCodedQuestionsGroupsPerCoder(t *testing.T) {
	svc, db := newAnswerService(t)
	north, south := uint(101), uint(102)

	db.Create(&model.User{ID: 5, FirstName: "Alice"})
	db.Create(&model.User{ID: 6, FirstName: "Bob"})
	for _, cq := range []model.CodedQuestion{
		{SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, CategoryID: &north},
		{SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, CategoryID: &south},
		{SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 6},
	} {
		if _, err := svc.SaveAnswer(cq); err != nil {
			t.Fatal(err)
		}
	}

	submissions, err := svc.GetAllCodedQuestionsForQuestion(1, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(submissions) != 2 {
		t.Fatalf("%d submissions, want one per coder", len(submissions))
	}
	byCoder := make(map[uint]int)
	for _, sub := range submissions {
		byCoder[sub.Coder.ID] = len(sub.CodedQuestions)
	}
	if byCoder[5] != 2 || byCoder[6] != 1 {
		t.Errorf("records per coder = %v, want 5:2 6:1", byCoder)
	}
}

func TestBulkValidateLatestCoderWins(t *testing.T) {
	svc, db := newAnswerService(t)

	stale, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, Comment: "stale",
		CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 201}},
	})
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 6, Comment: "fresh",
		CodedAnswers: []model.CodedAnswer{{AnswerChoiceID: 202, Pincite: "p. 4"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	db.Model(&model.CodedQuestion{}).Where("id = ?", stale.ID).Update("updated_at", time.Now().Add(-time.Hour))
	db.Model(&model.CodedQuestion{}).Where("id = ?", fresh.ID).Update("updated_at", time.Now())

	validated, err := svc.BulkValidate(1, 3, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(validated) != 1 {
		t.Fatalf("%d validated records, want 1", len(validated))
	}
	v := validated[0]
	if !v.Validated || v.UserID != 9 {
		t.Errorf("validated record = %+v, want owned by the validator", v)
	}
	if v.Comment != "fresh" || len(v.CodedAnswers) != 1 || v.CodedAnswers[0].AnswerChoiceID != 202 {
		t.Errorf("validated content = %+v, want the most recent coder's answer", v)
	}
}

func TestBulkValidateUpdatesPriorValidation(t *testing.T) {
	svc, _ := newAnswerService(t)

	if _, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5, Comment: "round one",
	}); err != nil {
		t.Fatal(err)
	}

	first, err := svc.BulkValidate(1, 3, 9)
	if err != nil {
		t.Fatal(err)
	}

	// A second pass must update the prior validated record, not add another.
	second, err := svc.BulkValidate(1, 3, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Errorf("revalidation produced %+v, want the same record id %d", second, first[0].ID)
	}

	remaining, err := svc.GetValidatedQuestions(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 {
		t.Errorf("%d validated rows stored, want exactly 1", len(remaining))
	}
}

func TestBulkValidateProjectWide(t *testing.T) {
	svc, _ := newAnswerService(t)

	for _, cq := range []model.CodedQuestion{
		{SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5},
		{SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 4, UserID: 5},
	} {
		if _, err := svc.SaveAnswer(cq); err != nil {
			t.Fatal(err)
		}
	}

	validated, err := svc.BulkValidate(1, -1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(validated) != 2 {
		t.Fatalf("%d validated records, want one per jurisdiction", len(validated))
	}
	jurisdictions := map[uint]bool{}
	for _, v := range validated {
		jurisdictions[v.ProjectJurisdictionID] = true
	}
	if !jurisdictions[3] || !jurisdictions[4] {
		t.Errorf("validated jurisdictions = %v", jurisdictions)
	}
}

func TestValidatedCopyLeavesCoderAnnotations(t *testing.T) {
	svc, _ := newAnswerService(t)

	coder, err := svc.SaveAnswer(model.CodedQuestion{
		SchemeQuestionID: 7, ProjectID: 1, ProjectJurisdictionID: 3, UserID: 5,
		CodedAnswers: []model.CodedAnswer{{
			AnswerChoiceID: 201,
			Annotations:    []model.Annotation{{DocumentID: "doc-a", Text: "excerpt", StartPage: 3, EndPage: 3}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Build the validated copy the way a validator session does: the preloaded
	// record goes through the store and back out as a new outbound record.
	rec := answers.FromCodedQuestion(coder)
	validated := rec.ToCodedQuestion(1, 3, 9, 0, true)
	validated.ID = 0
	if _, err := svc.SaveAnswer(validated); err != nil {
		t.Fatal(err)
	}

	after, err := svc.GetCodedQuestions(1, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || len(after[0].CodedAnswers) != 1 {
		t.Fatalf("coder records = %+v", after)
	}
	if got := after[0].CodedAnswers[0].Annotations; len(got) != 1 {
		t.Fatalf("coder's annotations after validation = %+v, want the original row untouched", got)
	}

	validatedRows, err := svc.GetValidatedQuestions(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(validatedRows) != 1 || len(validatedRows[0].CodedAnswers) != 1 ||
		len(validatedRows[0].CodedAnswers[0].Annotations) != 1 {
		t.Fatalf("validated records = %+v, want an annotation copy of their own", validatedRows)
	}
}

func TestGetCodedQuestionsWrapsErrors(t *testing.T) {
	db := setupDB(t)
	// Break the schema so the query fails.
	db.Migrator().DropTable(&model.CodedQuestion{})
	svc := NewAnswerService(repository.NewCodedQuestionRepository(db))

	_, err := svc.GetCodedQuestions(1, 3, 5)
	if err == nil {
		t.Fatal("expected an error")
	}
	var f *fault.Fault
	if !errors.As(err, &f) || f.Kind != fault.Transport {
		t.Errorf("err = %v, want a transport fault", err)
	}
}
