package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"
)

func bankItems(materialID string, n int) []model.QuestionBankItem {
	labels := []string{"A", "B", "C", "D"}
	items := make([]model.QuestionBankItem, 0, n)
	for i := 0; i < n; i++ {
		item := model.QuestionBankItem{
			MaterialID: materialID,
			Question:   fmt.Sprintf("Pregunta %d", i+1),
			OptionA:    fmt.Sprintf("q%d opción A", i+1),
			OptionB:    fmt.Sprintf("q%d opción B", i+1),
			OptionC:    fmt.Sprintf("q%d opción C", i+1),
			OptionD:    fmt.Sprintf("q%d opción D", i+1),
			Correct:    labels[i%len(labels)],
		}
		item.ID = model.GenerateUUID()
		items = append(items, item)
	}
	return items
}

func optionText(q model.ExamInstanceQuestion, label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

func TestAssembleQuestionsDeterministic(t *testing.T) {
	items := bankItems("m1", 5)
	first := assembleQuestions(items, 12345)
	second := assembleQuestions(items, 12345)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same items and seed produced different assemblies")
	}

	other := assembleQuestions(items, 54321)
	if reflect.DeepEqual(first, other) {
		t.Fatal("different seeds produced identical assemblies")
	}
}

func TestAssembleQuestionsRemapsCorrectLabel(t *testing.T) {
	items := bankItems("m1", 5)
	correctText := make(map[string]string, len(items))
	for _, item := range items {
		correctText[item.Question] = item.Option(item.Correct)
	}

	for seed := int64(0); seed < 20; seed++ {
		for _, q := range assembleQuestions(items, seed) {
			want := correctText[q.Question]
			if got := optionText(q, q.Correct); got != want {
				t.Fatalf("seed %d question %q: correct label %s holds %q, want %q",
					seed, q.Question, q.Correct, got, want)
			}
		}
	}
}

func TestAssembleQuestionsCoversAllItems(t *testing.T) {
	items := bankItems("m1", 5)
	out := assembleQuestions(items, 99)
	if len(out) != len(items) {
		t.Fatalf("got %d questions, want %d", len(out), len(items))
	}
	seenOrder := map[int]bool{}
	seenQuestion := map[string]bool{}
	for _, q := range out {
		if q.OrderIndex < 1 || q.OrderIndex > len(items) {
			t.Fatalf("order index %d outside 1..%d", q.OrderIndex, len(items))
		}
		if seenOrder[q.OrderIndex] {
			t.Fatalf("duplicate order index %d", q.OrderIndex)
		}
		seenOrder[q.OrderIndex] = true
		seenQuestion[q.Question] = true
	}
	for _, item := range items {
		if !seenQuestion[item.Question] {
			t.Fatalf("item %q missing from assembly", item.Question)
		}
	}
}

func newExamService(t *testing.T) (*ExamService, *repository.ExamRepository, *repository.QuestionBankRepository) {
	t.Helper()
	db := newTestDB(t)
	bankRepo := repository.NewQuestionBankRepository(db)
	examRepo := repository.NewExamRepository(db)
	return NewExamService(bankRepo, examRepo, 0.60), examRepo, bankRepo
}

func TestGenerateExamInsufficientBank(t *testing.T) {
	svc, _, bankRepo := newExamService(t)
	for _, item := range bankItems("m1", 3) {
		item := item
		if err := bankRepo.CreateItem(&item); err != nil {
			t.Fatalf("seed bank: %v", err)
		}
	}

	_, err := svc.GenerateExam("user-1", "m1")
	if !errors.Is(err, util.ErrInsufficientBank) {
		t.Fatalf("got %v, want ErrInsufficientBank", err)
	}
}

func TestGenerateExamPersistsFrozenSnapshot(t *testing.T) {
	svc, examRepo, bankRepo := newExamService(t)
	for _, item := range bankItems("m1", 6) {
		item := item
		if err := bankRepo.CreateItem(&item); err != nil {
			t.Fatalf("seed bank: %v", err)
		}
	}

	view, err := svc.GenerateExam("user-1", "m1")
	if err != nil {
		t.Fatalf("GenerateExam: %v", err)
	}
	if len(view.Questions) != ExamQuestionCount {
		t.Fatalf("got %d questions, want %d", len(view.Questions), ExamQuestionCount)
	}

	instance, err := examRepo.FindInstanceByID(view.ExamID)
	if err != nil {
		t.Fatalf("FindInstanceByID: %v", err)
	}
	if instance.Status != model.ExamStatusGenerated {
		t.Errorf("status = %q, want generated", instance.Status)
	}
	if instance.RngSeed <= 0 {
		t.Errorf("seed = %d, want positive", instance.RngSeed)
	}

	stored, err := examRepo.ListQuestions(view.ExamID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(stored) != ExamQuestionCount {
		t.Fatalf("stored %d questions, want %d", len(stored), ExamQuestionCount)
	}
	for i, q := range stored {
		if q.OrderIndex != i+1 {
			t.Errorf("question %d has order index %d, want %d", i, q.OrderIndex, i+1)
		}
		if q.Correct == "" {
			t.Errorf("question %d has no correct label", i)
		}
	}
}

func seedExamInstance(t *testing.T, examRepo *repository.ExamRepository, userID string, labels []string) string {
	t.Helper()
	instance := &model.ExamInstance{
		MaterialID: "m1",
		UserID:     userID,
		RngSeed:    1,
		Status:     model.ExamStatusGenerated,
	}
	questions := make([]model.ExamInstanceQuestion, 0, len(labels))
	for i, label := range labels {
		questions = append(questions, model.ExamInstanceQuestion{
			Question:   fmt.Sprintf("Pregunta %d", i+1),
			OptionA:    "a", OptionB: "b", OptionC: "c", OptionD: "d",
			Correct:    label,
			OrderIndex: i + 1,
		})
	}
	if err := examRepo.CreateInstanceWithQuestions(instance, questions); err != nil {
		t.Fatalf("seed instance: %v", err)
	}
	return instance.ID
}

func TestSubmitExamGrading(t *testing.T) {
	svc, examRepo, _ := newExamService(t)

	cases := []struct {
		name    string
		answers map[string]string
		score   float64
		passed  bool
	}{
		{"one correct", map[string]string{"1": "A"}, 20.0, false},
		{"case insensitive", map[string]string{"1": "a", "2": "b", "3": "c"}, 60.0, true},
		{"all correct", map[string]string{"1": "A", "2": "B", "3": "C", "4": "D", "5": "A"}, 100.0, true},
		{"unanswered count wrong", map[string]string{}, 0.0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			examID := seedExamInstance(t, examRepo, "user-1", []string{"A", "B", "C", "D", "A"})

			result, err := svc.SubmitExam("user-1", examID, tc.answers)
			if err != nil {
				t.Fatalf("SubmitExam: %v", err)
			}
			if result.Score != tc.score {
				t.Errorf("score = %v, want %v", result.Score, tc.score)
			}
			if result.Passed != tc.passed {
				t.Errorf("passed = %v, want %v", result.Passed, tc.passed)
			}

			instance, err := examRepo.FindInstanceByID(examID)
			if err != nil {
				t.Fatalf("FindInstanceByID: %v", err)
			}
			if instance.Status != model.ExamStatusSubmitted {
				t.Errorf("status = %q, want submitted", instance.Status)
			}
		})
	}
}

func TestSubmitExamKeyedByDisplayedOrderIndex(t *testing.T) {
	svc, _, bankRepo := newExamService(t)
	for _, item := range bankItems("m1", 5) {
		item := item
		if err := bankRepo.CreateItem(&item); err != nil {
			t.Fatalf("seed bank: %v", err)
		}
	}

	view, err := svc.GenerateExam("user-1", "m1")
	if err != nil {
		t.Fatalf("GenerateExam: %v", err)
	}

	answers := make(map[string]string, len(view.Questions))
	for _, q := range view.Questions {
		answers[strconv.Itoa(q.OrderIndex)] = q.Correct
	}

	result, err := svc.SubmitExam("user-1", view.ExamID, answers)
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Score != 100.0 || !result.Passed {
		t.Fatalf("score = %v passed = %v, want 100 and passed", result.Score, result.Passed)
	}
}

func TestSubmitExamUnknownOrForeign(t *testing.T) {
	svc, examRepo, _ := newExamService(t)
	examID := seedExamInstance(t, examRepo, "owner", []string{"A"})

	if _, err := svc.SubmitExam("user-1", "missing", nil); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("unknown exam: got %v, want ErrAttemptNotFound", err)
	}
	if _, err := svc.SubmitExam("intruder", examID, nil); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Errorf("foreign exam: got %v, want ErrAttemptNotFound", err)
	}
}

func TestSubmitExamEmpty(t *testing.T) {
	db := newTestDB(t)
	bankRepo := repository.NewQuestionBankRepository(db)
	examRepo := repository.NewExamRepository(db)
	svc := NewExamService(bankRepo, examRepo, 0.60)

	instance := &model.ExamInstance{MaterialID: "m1", UserID: "user-1", RngSeed: 1, Status: model.ExamStatusGenerated}
	if err := db.Create(instance).Error; err != nil {
		t.Fatalf("seed instance: %v", err)
	}

	if _, err := svc.SubmitExam("user-1", instance.ID, map[string]string{}); !errors.Is(err, util.ErrEmptyExam) {
		t.Fatalf("got %v, want ErrEmptyExam", err)
	}
}
