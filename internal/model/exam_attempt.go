package model

import "encoding/json"

// ExamAttempt is a graded submission against an ExamInstance (bank path).
// One row per submission call; raw answers are kept for audit.
// swagger:model ExamAttempt
type ExamAttempt struct {
	UUIDBase
	ExamID  string          `gorm:"type:varchar(36);index;not null" json:"examId"`
	UserID  string          `gorm:"type:varchar(36);index;not null" json:"userId"`
	Answers json.RawMessage `gorm:"type:json" json:"answers"`
	Score   float64         `gorm:"not null" json:"score"`
	Passed  bool            `gorm:"default:false" json:"passed"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}
