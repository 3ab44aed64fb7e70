package database

import (
	"fmt"
	"log"

	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates or updates the full schema, optional tables included.
// Deployments that want to run without attempt history or certificates
// manage their schema by hand and skip this.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.UserAccount{},
		&model.Course{},
		&model.ContentItem{},
		&model.DocumentAsset{},
		&model.MediaAsset{},
		&model.QuestionBankItem{},
		&model.ExamInstance{},
		&model.ExamInstanceQuestion{},
		&model.ExamAttempt{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.CourseCertificate{},
		&model.CourseRating{},
	)
	if err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}
