package repository

import (
	"errors"

	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByContentID(contentID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "content_id = ?", contentID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Replace swaps the quiz owned subtree for a content item: the previous
// options, questions and quiz row (if any) are deleted before the new ones
// are inserted. Runs in one transaction so two racing generators resolve to
// whichever commits last, never to a mixed subtree.
func (r *QuizRepository) Replace(quiz *model.Quiz, questions []model.QuizQuestion, options []model.QuizOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var prev model.Quiz
		err := tx.First(&prev, "content_id = ?", quiz.ContentID).Error
		if err == nil {
			if err := tx.Where(
				"question_id IN (?)",
				tx.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id = ?", prev.ID),
			).Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", prev.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&prev).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		if len(options) > 0 {
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("position asc").
		Find(&qs).Error
	return qs, err
}

// ListUserAttempts returns a user's attempts across the given content
// items, newest first.
func (r *QuizRepository) ListUserAttempts(userID string, contentIDs []string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) ListOptionsByQuiz(quizID string) ([]model.QuizOption, error) {
	var opts []model.QuizOption
	err := r.DB.Where(
		"question_id IN (?)",
		r.DB.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id = ?", quizID),
	).Order("position asc").Find(&opts).Error
	return opts, err
}
