package model

import "time"

// CourseCertificate proves course completion. The (user, course) pair is
// unique; repeated passing attempts never create a second row.
// swagger:model CourseCertificate
type CourseCertificate struct {
	UUIDBase
	UserID       string    `gorm:"type:varchar(36);uniqueIndex:idx_cert_user_course;not null" json:"userId"`
	CourseID     string    `gorm:"type:varchar(36);uniqueIndex:idx_cert_user_course;not null" json:"courseId"`
	AttemptID    string    `gorm:"type:varchar(36)" json:"attemptId"`
	ScorePercent float64   `json:"scorePercent"`
	IssuedAt     time.Time `gorm:"autoCreateTime" json:"issuedAt"`
}

func (CourseCertificate) TableName() string {
	return "course_certificate"
}
