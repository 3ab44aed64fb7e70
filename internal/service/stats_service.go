package service

import (
	"guidesphere_backend/internal/model"
	"guidesphere_backend/internal/repository"

	"gorm.io/gorm"
)

// StatsService builds the admin overview. Counters backed by optional
// tables report zero when the table group is absent.
type StatsService struct {
	DB          *gorm.DB
	UserRepo    *repository.UserRepository
	ContentRepo *repository.ContentRepository
	ExamRepo    *repository.ExamRepository
	CertRepo    *repository.CertificateRepository
	RatingRepo  *repository.RatingRepository
	Caps        Capabilities
}

func NewStatsService(db *gorm.DB, userRepo *repository.UserRepository, contentRepo *repository.ContentRepository, examRepo *repository.ExamRepository, certRepo *repository.CertificateRepository, ratingRepo *repository.RatingRepository, caps Capabilities) *StatsService {
	return &StatsService{
		DB:          db,
		UserRepo:    userRepo,
		ContentRepo: contentRepo,
		ExamRepo:    examRepo,
		CertRepo:    certRepo,
		RatingRepo:  ratingRepo,
		Caps:        caps,
	}
}

type AdminStats struct {
	Courses      int64                       `json:"courses"`
	Users        int64                       `json:"users"`
	Students     int64                       `json:"students"`
	Professors   int64                       `json:"professors"`
	ExamAttempts int64                       `json:"examAttempts"`
	QuizAttempts int64                       `json:"quizAttempts"`
	Certificates int64                       `json:"certificates"`
	Enrollments  int64                       `json:"enrollments"`
	TopRated     []repository.TopRatedCourse `json:"topRated"`
}

func (s *StatsService) Overview() (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.Courses, err = s.ContentRepo.CountCourses(); err != nil {
		return nil, err
	}
	if stats.Users, err = s.UserRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.Students, err = s.UserRepo.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if stats.Professors, err = s.UserRepo.CountByRole(model.Professor); err != nil {
		return nil, err
	}
	if stats.ExamAttempts, err = s.ExamRepo.CountAttempts(); err != nil {
		return nil, err
	}
	if s.Caps.QuizAttempts {
		if err = s.DB.Model(&model.QuizAttempt{}).Count(&stats.QuizAttempts).Error; err != nil {
			return nil, err
		}
	}
	if s.Caps.Certificates {
		if stats.Certificates, err = s.CertRepo.CountAll(); err != nil {
			return nil, err
		}
	}
	if s.Caps.Enrollments {
		if err = s.DB.Table("enrollment").Count(&stats.Enrollments).Error; err != nil {
			return nil, err
		}
	}
	if stats.TopRated, err = s.RatingRepo.TopRated(5); err != nil {
		return nil, err
	}
	return stats, nil
}
