package service

import (
	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
)

const (
	AttemptStatusApproved   = "approved"
	AttemptStatusFailed     = "failed"
	AttemptStatusInProgress = "in_progress"
)

// ClientItemProgress is the per-content progress the client reports when it
// asks which evaluations the learner can take.
type ClientItemProgress struct {
	ItemID          string  `json:"item_id" binding:"required"`
	ItemType        string  `json:"item_type" binding:"required,oneof=video document"`
	Title           string  `json:"title"`
	ProgressPercent float64 `json:"progress_percent"`
}

type LastAttempt struct {
	Status       string   `json:"status,omitempty"`
	ScorePercent *float64 `json:"score_percent,omitempty"`
}

type EvalOption struct {
	ItemID          string      `json:"item_id"`
	ItemType        string      `json:"item_type"`
	Title           string      `json:"title"`
	ProgressPercent float64     `json:"progress_percent"`
	Eligible        bool        `json:"eligible"`
	LastAttempt     LastAttempt `json:"last_attempt"`
}

type EvalAggregate struct {
	TotalItemsCompleted int      `json:"total_items_completed"`
	TotalItemsEligible  int      `json:"total_items_eligible"`
	ItemsApproved       int      `json:"items_approved"`
	ItemsFailed         int      `json:"items_failed"`
	ItemsInProgress     int      `json:"items_in_progress"`
	OverallStatus       string   `json:"overall_status"`
	OverallScorePercent *float64 `json:"overall_score_percent,omitempty"`
}

type EvalOptionsResponse struct {
	CourseID  string        `json:"course_id"`
	Options   []EvalOption  `json:"options"`
	Aggregate EvalAggregate `json:"aggregate"`
}

// EvaluationService answers "which evaluations can this learner take now".
// Progress comes from the client; attempt history, when the attempt tables
// exist, comes from storage.
type EvaluationService struct {
	QuizRepo *repository.QuizRepository
	Caps     Capabilities
}

func NewEvaluationService(quizRepo *repository.QuizRepository, caps Capabilities) *EvaluationService {
	return &EvaluationService{QuizRepo: quizRepo, Caps: caps}
}

func (s *EvaluationService) BuildOptions(userID, courseID string, items []ClientItemProgress) (*EvalOptionsResponse, error) {
	lastAttempts := map[string]*model.QuizAttempt{}
	if s.Caps.QuizAttempts && len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ItemID)
		}
		attempts, err := s.QuizRepo.ListUserAttempts(userID, ids)
		if err != nil {
			return nil, err
		}
		for i := range attempts {
			a := attempts[i]
			if _, seen := lastAttempts[a.ContentID]; !seen {
				lastAttempts[a.ContentID] = &a
			}
		}
	}
	return buildEvaluationOptions(courseID, items, lastAttempts), nil
}

// buildEvaluationOptions is the pure aggregation core. An item is eligible
// once its reported progress reaches 100 percent.
func buildEvaluationOptions(courseID string, items []ClientItemProgress, lastAttempts map[string]*model.QuizAttempt) *EvalOptionsResponse {
	options := make([]EvalOption, 0, len(items))
	completed := 0
	approved := 0
	failed := 0
	var scoreSum float64
	var scoreCount int

	for _, it := range items {
		eligible := it.ProgressPercent >= 100.0
		if eligible {
			completed++
		}
		opt := EvalOption{
			ItemID:          it.ItemID,
			ItemType:        it.ItemType,
			Title:           it.Title,
			ProgressPercent: it.ProgressPercent,
			Eligible:        eligible,
		}
		if a := lastAttempts[it.ItemID]; a != nil {
			score := a.ScorePercent
			opt.LastAttempt = LastAttempt{ScorePercent: &score}
			if a.Passed {
				opt.LastAttempt.Status = AttemptStatusApproved
				approved++
			} else {
				opt.LastAttempt.Status = AttemptStatusFailed
				failed++
			}
			scoreSum += score
			scoreCount++
		}
		options = append(options, opt)
	}

	aggregate := EvalAggregate{
		TotalItemsCompleted: completed,
		TotalItemsEligible:  completed,
		ItemsApproved:       approved,
		ItemsFailed:         failed,
		ItemsInProgress:     len(items) - completed,
		OverallStatus:       AttemptStatusInProgress,
	}
	if len(items) > 0 && completed == len(items) {
		aggregate.OverallStatus = AttemptStatusApproved
	}
	if scoreCount > 0 {
		avg := roundScore(scoreSum / float64(scoreCount))
		aggregate.OverallScorePercent = &avg
	}
	return &EvalOptionsResponse{CourseID: courseID, Options: options, Aggregate: aggregate}
}
