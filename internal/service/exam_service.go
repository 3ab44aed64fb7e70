package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"

	"gorm.io/gorm"
)

// ExamQuestionCount is how many bank items a generated exam carries.
const ExamQuestionCount = 5

type ExamService struct {
	BankRepo      *repository.QuestionBankRepository
	ExamRepo      *repository.ExamRepository
	PassThreshold float64
}

func NewExamService(bankRepo *repository.QuestionBankRepository, examRepo *repository.ExamRepository, passThreshold float64) *ExamService {
	return &ExamService{
		BankRepo:      bankRepo,
		ExamRepo:      examRepo,
		PassThreshold: passThreshold,
	}
}

type ExamView struct {
	ExamID     string                       `json:"examId"`
	MaterialID string                       `json:"materialId"`
	Questions  []model.ExamInstanceQuestion `json:"questions"`
}

type ExamResultView struct {
	ExamID  string  `json:"examId"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

type BankItemRequest struct {
	Question string `json:"question" binding:"required"`
	OptionA  string `json:"optionA" binding:"required"`
	OptionB  string `json:"optionB" binding:"required"`
	OptionC  string `json:"optionC" binding:"required"`
	OptionD  string `json:"optionD" binding:"required"`
	Correct  string `json:"correct" binding:"required,oneof=A B C D"`
}

// GenerateExam samples five bank items for the material, freezes a shuffled
// snapshot of them under a fresh seed and returns the exam with correct
// labels withheld.
func (s *ExamService) GenerateExam(userID, materialID string) (*ExamView, error) {
	available, err := s.BankRepo.CountByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	if available < ExamQuestionCount {
		return nil, fmt.Errorf("%w: material %s has %d of %d required questions",
			util.ErrInsufficientBank, materialID, available, ExamQuestionCount)
	}

	items, err := s.BankRepo.SampleByMaterial(materialID, ExamQuestionCount)
	if err != nil {
		return nil, err
	}

	seed, err := util.NewExamSeed()
	if err != nil {
		return nil, err
	}

	instance := &model.ExamInstance{
		MaterialID: materialID,
		UserID:     userID,
		RngSeed:    seed,
		Status:     model.ExamStatusGenerated,
	}
	questions := assembleQuestions(items, seed)
	if err := s.ExamRepo.CreateInstanceWithQuestions(instance, questions); err != nil {
		return nil, err
	}

	return &ExamView{ExamID: instance.ID, MaterialID: materialID, Questions: questions}, nil
}

// assembleQuestions is the deterministic core of exam generation. Item order
// is shuffled with the parent seed; questions are numbered 1..N and each
// question's four options are shuffled with seed+number, with the correct
// label recomputed to follow its text. Re-running it with the stored seed
// reproduces the exam exactly.
func assembleQuestions(items []model.QuestionBankItem, seed int64) []model.ExamInstanceQuestion {
	labels := []string{"A", "B", "C", "D"}
	order := util.SeededRand(seed).Perm(len(items))

	out := make([]model.ExamInstanceQuestion, 0, len(items))
	for idx, pick := range order {
		item := items[pick]
		num := idx + 1
		perm := util.SeededRand(seed + int64(num)).Perm(len(labels))

		var texts [4]string
		correct := ""
		for slot, src := range perm {
			texts[slot] = item.Option(labels[src])
			if labels[src] == item.Correct {
				correct = labels[slot]
			}
		}
		out = append(out, model.ExamInstanceQuestion{
			Question:   item.Question,
			OptionA:    texts[0],
			OptionB:    texts[1],
			OptionC:    texts[2],
			OptionD:    texts[3],
			Correct:    correct,
			OrderIndex: num,
		})
	}
	return out
}

// SubmitExam grades answers keyed by 1-based question number against the
// frozen snapshot. Labels compare case-insensitively; missing keys count as
// wrong. The attempt and the status flip persist atomically.
func (s *ExamService) SubmitExam(userID, examID string, answers map[string]string) (*ExamResultView, error) {
	instance, err := s.ExamRepo.FindInstanceByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: exam %s", util.ErrAttemptNotFound, examID)
		}
		return nil, err
	}
	if instance.UserID != userID {
		return nil, fmt.Errorf("%w: exam %s", util.ErrAttemptNotFound, examID)
	}

	questions, err := s.ExamRepo.ListQuestions(examID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: exam %s", util.ErrEmptyExam, examID)
	}

	correct := 0
	for _, q := range questions {
		given := answers[strconv.Itoa(q.OrderIndex)]
		if strings.EqualFold(strings.TrimSpace(given), q.Correct) {
			correct++
		}
	}
	total := len(questions)
	score := roundScore(100 * float64(correct) / float64(total))
	passed := float64(correct)/float64(total) >= s.PassThreshold

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	attempt := &model.ExamAttempt{
		ExamID:  examID,
		UserID:  userID,
		Answers: rawAnswers,
		Score:   score,
		Passed:  passed,
	}
	if err := s.ExamRepo.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	return &ExamResultView{
		ExamID:  examID,
		Correct: correct,
		Total:   total,
		Score:   score,
		Passed:  passed,
	}, nil
}

// AddBankItem authors a new question into the material's bank.
func (s *ExamService) AddBankItem(materialID string, req BankItemRequest) (*model.QuestionBankItem, error) {
	item := &model.QuestionBankItem{
		MaterialID: materialID,
		Question:   req.Question,
		OptionA:    req.OptionA,
		OptionB:    req.OptionB,
		OptionC:    req.OptionC,
		OptionD:    req.OptionD,
		Correct:    strings.ToUpper(req.Correct),
	}
	if err := s.BankRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
