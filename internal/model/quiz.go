package model

// Quiz is a generated quiz tied to a content unit. At most one quiz exists per
// content item; regeneration replaces the owned question/option subtree.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	ContentID       string `gorm:"type:varchar(36);uniqueIndex;not null" json:"contentId"`
	TimeLimitSec    *int   `json:"timeLimitSec,omitempty"`
	AttemptsAllowed int    `gorm:"default:3" json:"attemptsAllowed"`
	RandomizeOrder  bool   `gorm:"default:false" json:"randomizeOrder"`
	Fingerprint     string `gorm:"size:64" json:"fingerprint,omitempty"`
}

func (Quiz) TableName() string {
	return "quiz"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID   string `gorm:"type:varchar(36);index;not null" json:"quizId"`
	Prompt   string `gorm:"type:text;not null" json:"prompt"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_question"
}

// swagger:model QuizOption
type QuizOption struct {
	UUIDBase
	QuestionID string `gorm:"type:varchar(36);index;not null" json:"questionId"`
	Label      string `gorm:"type:text;not null" json:"label"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Position   int    `gorm:"not null;default:0" json:"position"`
}

func (QuizOption) TableName() string {
	return "quiz_option"
}
