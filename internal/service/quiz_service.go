package service

import (
	"errors"
	"fmt"

	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/internal/util"

	"gorm.io/gorm"
)

const defaultQuizAttempts = 3

type QuizService struct {
	DB            *gorm.DB
	QuizRepo      *repository.QuizRepository
	ContentRepo   *repository.ContentRepository
	CertSvc       *CertificateService
	Caps          Capabilities
	PassThreshold float64
}

func NewQuizService(db *gorm.DB, quizRepo *repository.QuizRepository, contentRepo *repository.ContentRepository, certSvc *CertificateService, caps Capabilities, passThreshold float64) *QuizService {
	return &QuizService{
		DB:            db,
		QuizRepo:      quizRepo,
		ContentRepo:   contentRepo,
		CertSvc:       certSvc,
		Caps:          caps,
		PassThreshold: passThreshold,
	}
}

type QuizOptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type QuizQuestionView struct {
	ID      string           `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []QuizOptionView `json:"options"`
}

type QuizView struct {
	QuizID          string             `json:"quizId"`
	ContentID       string             `json:"contentId"`
	TimeLimitSec    *int               `json:"timeLimitSec,omitempty"`
	AttemptsAllowed int                `json:"attemptsAllowed"`
	Questions       []QuizQuestionView `json:"questions"`
}

type QuizAnswerDetail struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId,omitempty"`
	Correct    bool   `json:"correct"`
}

type QuizResultView struct {
	AttemptID         string             `json:"attemptId,omitempty"`
	QuizID            string             `json:"quizId"`
	ContentID         string             `json:"contentId"`
	Correct           int                `json:"correct"`
	Total             int                `json:"total"`
	ScorePercent      float64            `json:"scorePercent"`
	Passed            bool               `json:"passed"`
	CertificateIssued bool               `json:"certificateIssued"`
	Details           []QuizAnswerDetail `json:"details"`
}

// SaveGeneratedQuiz persists a generated exam as the quiz for a content
// item, replacing whatever quiz the content had before. Row ids are
// assigned up front so the option rows can reference their questions inside
// the single insert transaction.
func (s *QuizService) SaveGeneratedQuiz(contentID string, exam *GeneratedExam) (*model.Quiz, error) {
	exists, err := s.ContentRepo.ContentExists(contentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: content %s", util.ErrContentNotFound, contentID)
	}

	quiz := &model.Quiz{
		ContentID:       contentID,
		AttemptsAllowed: defaultQuizAttempts,
		RandomizeOrder:  false,
		Fingerprint:     exam.Fingerprint,
	}
	quiz.ID = model.GenerateUUID()

	var questions []model.QuizQuestion
	var options []model.QuizOption
	for i, gq := range exam.Questions {
		q := model.QuizQuestion{QuizID: quiz.ID, Prompt: gq.Prompt, Position: i}
		q.ID = model.GenerateUUID()
		questions = append(questions, q)
		for j, opt := range gq.Options {
			o := model.QuizOption{QuestionID: q.ID, Label: opt.Text, IsCorrect: opt.IsCorrect, Position: j}
			o.ID = model.GenerateUUID()
			options = append(options, o)
		}
	}

	if err := s.QuizRepo.Replace(quiz, questions, options); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuizByContent returns the learner view of a quiz. Correctness flags
// stay server side.
func (s *QuizService) GetQuizByContent(contentID string) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByContentID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no quiz for content %s", util.ErrNotFound, contentID)
		}
		return nil, err
	}
	questions, err := s.QuizRepo.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	options, err := s.QuizRepo.ListOptionsByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]QuizOptionView)
	for _, o := range options {
		byQuestion[o.QuestionID] = append(byQuestion[o.QuestionID], QuizOptionView{ID: o.ID, Label: o.Label})
	}

	view := &QuizView{
		QuizID:          quiz.ID,
		ContentID:       quiz.ContentID,
		TimeLimitSec:    quiz.TimeLimitSec,
		AttemptsAllowed: quiz.AttemptsAllowed,
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, QuizQuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: byQuestion[q.ID],
		})
	}
	return view, nil
}

// SubmitQuiz grades answers keyed by question id against the stored key.
// Unanswered questions count as incorrect; an answer naming a question
// outside the quiz is rejected outright. When the attempt tables exist the
// attempt and its answers persist in one transaction, and a passing score
// triggers best-effort certification afterwards.
func (s *QuizService) SubmitQuiz(userID, contentID string, answers map[string]string) (*QuizResultView, error) {
	quiz, err := s.QuizRepo.FindByContentID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no quiz for content %s", util.ErrNotFound, contentID)
		}
		return nil, err
	}
	questions, err := s.QuizRepo.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz %s", util.ErrEmptyExam, quiz.ID)
	}
	options, err := s.QuizRepo.ListOptionsByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	inQuiz := make(map[string]bool, len(questions))
	for _, q := range questions {
		inQuiz[q.ID] = true
	}
	for questionID := range answers {
		if !inQuiz[questionID] {
			return nil, fmt.Errorf("%w: question %s does not belong to quiz %s", util.ErrQuizMismatch, questionID, quiz.ID)
		}
	}

	correctOption := make(map[string]string, len(questions))
	optionOwner := make(map[string]string, len(options))
	for _, o := range options {
		optionOwner[o.ID] = o.QuestionID
		if o.IsCorrect {
			correctOption[o.QuestionID] = o.ID
		}
	}

	correct := 0
	details := make([]QuizAnswerDetail, 0, len(questions))
	for _, q := range questions {
		optionID, answered := answers[q.ID]
		hit := answered && optionOwner[optionID] == q.ID && correctOption[q.ID] == optionID
		if hit {
			correct++
		}
		detail := QuizAnswerDetail{QuestionID: q.ID, Correct: hit}
		if answered {
			detail.OptionID = optionID
		}
		details = append(details, detail)
	}

	total := len(questions)
	score := roundScore(100 * float64(correct) / float64(total))
	passed := float64(correct)/float64(total) >= s.PassThreshold

	result := &QuizResultView{
		QuizID:       quiz.ID,
		ContentID:    contentID,
		Correct:      correct,
		Total:        total,
		ScorePercent: score,
		Passed:       passed,
		Details:      details,
	}

	if s.Caps.QuizAttempts {
		attempt := &model.QuizAttempt{
			UserID:       userID,
			QuizID:       quiz.ID,
			ContentID:    contentID,
			ScorePercent: score,
			Passed:       passed,
		}
		attempt.ID = model.GenerateUUID()
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(attempt).Error; err != nil {
				return err
			}
			for _, d := range details {
				row := model.QuizAnswer{
					AttemptID:  attempt.ID,
					QuestionID: d.QuestionID,
					OptionID:   d.OptionID,
					IsCorrect:  d.Correct,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		result.AttemptID = attempt.ID
	}

	if passed && s.Caps.Certificates {
		result.CertificateIssued = s.CertSvc.MaybeIssue(s.DB, userID, contentID, result.AttemptID, score)
	}
	return result, nil
}
