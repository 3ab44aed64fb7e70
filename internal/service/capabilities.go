package service

import (
	"guidesphere_backend/internal/model"
	"guidesphere_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Capabilities records which optional table groups exist in the connected
// database. Probed once at startup; request handlers branch on the flags and
// never touch database metadata again.
type Capabilities struct {
	QuizAttempts bool
	Certificates bool
	Enrollments  bool
}

// DetectCapabilities probes the schema. Attempt persistence needs both the
// attempt and answer tables; a half-present pair is treated as absent.
func DetectCapabilities(db *gorm.DB) Capabilities {
	m := db.Migrator()
	caps := Capabilities{
		QuizAttempts: m.HasTable(&model.QuizAttempt{}) && m.HasTable(&model.QuizAnswer{}),
		Certificates: m.HasTable(&model.CourseCertificate{}),
		Enrollments:  m.HasTable("enrollment"),
	}
	logger.Log.Info("database capabilities detected",
		zap.Bool("quizAttempts", caps.QuizAttempts),
		zap.Bool("certificates", caps.Certificates),
		zap.Bool("enrollments", caps.Enrollments))
	return caps
}
