package model

// QuizAttempt is a graded submission against a generated quiz (quiz path).
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	UserID       string  `gorm:"type:varchar(36);index" json:"userId"`
	QuizID       string  `gorm:"type:varchar(36);index;not null" json:"quizId"`
	ContentID    string  `gorm:"type:varchar(36);index;not null" json:"contentId"`
	ScorePercent float64 `gorm:"not null" json:"scorePercent"`
	Passed       bool    `gorm:"default:false" json:"passed"`
}

func (QuizAttempt) TableName() string {
	return "exam_attempt"
}

// QuizAnswer records one answered question inside an attempt.
// swagger:model QuizAnswer
type QuizAnswer struct {
	UUIDBase
	AttemptID  string `gorm:"type:varchar(36);index;not null" json:"attemptId"`
	QuestionID string `gorm:"type:varchar(36);not null" json:"questionId"`
	OptionID   string `gorm:"type:varchar(36);not null" json:"optionId"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "exam_answer"
}
