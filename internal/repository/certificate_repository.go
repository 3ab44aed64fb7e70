package repository

import (
	"time"

	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) ExistsForUserCourse(db *gorm.DB, userID, courseID string) (bool, error) {
	var total int64
	err := db.Model(&model.CourseCertificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&total).Error
	return total > 0, err
}

func (r *CertificateRepository) Create(db *gorm.DB, cert *model.CourseCertificate) error {
	return db.Create(cert).Error
}

// CertificateWithCourse is the learner-facing view of one certificate.
type CertificateWithCourse struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`
	CourseTitle  string    `json:"courseTitle"`
	ScorePercent float64   `json:"scorePercent"`
	IssuedAt     time.Time `json:"issuedAt"`
}

func (r *CertificateRepository) ListByUser(userID string) ([]CertificateWithCourse, error) {
	var rows []CertificateWithCourse
	err := r.DB.Model(&model.CourseCertificate{}).
		Select("course_certificate.id, course_certificate.course_id, course.title AS course_title, course_certificate.score_percent, course_certificate.issued_at").
		Joins("JOIN course ON course.id = course_certificate.course_id").
		Where("course_certificate.user_id = ?", userID).
		Order("course_certificate.issued_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *CertificateRepository) CountAll() (int64, error) {
	var total int64
	err := r.DB.Model(&model.CourseCertificate{}).Count(&total).Error
	return total, err
}
