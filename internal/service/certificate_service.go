package service

import (
	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"
	"guidesphere_backend/pkg/logger"
	"guidesphere_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo    *repository.CertificateRepository
	ContentRepo *repository.ContentRepository
}

func NewCertificateService(certRepo *repository.CertificateRepository, contentRepo *repository.ContentRepository) *CertificateService {
	return &CertificateService{CertRepo: certRepo, ContentRepo: contentRepo}
}

// MaybeIssue awards the course certificate for a passing attempt. It is
// idempotent per (user, course) and strictly best effort: certification must
// never fail the grading that triggered it, so every error is logged and
// swallowed. Returns whether a new certificate was written.
func (s *CertificateService) MaybeIssue(tx *gorm.DB, userID, contentID, attemptID string, scorePercent float64) bool {
	courseID, err := s.ContentRepo.CourseIDForContent(tx, contentID)
	if err != nil {
		logger.Log.Warn("certificate skipped: course lookup failed",
			zap.String("contentId", contentID), zap.Error(err))
		return false
	}
	exists, err := s.CertRepo.ExistsForUserCourse(tx, userID, courseID)
	if err != nil {
		logger.Log.Warn("certificate skipped: existence check failed",
			zap.String("courseId", courseID), zap.Error(err))
		return false
	}
	if exists {
		return false
	}
	cert := &model.CourseCertificate{
		UserID:       userID,
		CourseID:     courseID,
		AttemptID:    attemptID,
		ScorePercent: scorePercent,
	}
	if err := s.CertRepo.Create(tx, cert); err != nil {
		logger.Log.Warn("certificate skipped: insert failed",
			zap.String("courseId", courseID), zap.Error(err))
		return false
	}
	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.String("userId", userID), zap.String("courseId", courseID))
	return true
}

// ListForUser returns the learner's certificates, newest first.
func (s *CertificateService) ListForUser(userID string) ([]repository.CertificateWithCourse, error) {
	return s.CertRepo.ListByUser(userID)
}
