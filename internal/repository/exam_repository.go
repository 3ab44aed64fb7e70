package repository

import (
	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// CreateInstanceWithQuestions persists the instance and its frozen snapshot
// atomically so a half-written exam is never visible.
func (r *ExamRepository) CreateInstanceWithQuestions(instance *model.ExamInstance, questions []model.ExamInstanceQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(instance).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = instance.ID
		}
		return tx.Create(&questions).Error
	})
}

func (r *ExamRepository) FindInstanceByID(id string) (*model.ExamInstance, error) {
	var instance model.ExamInstance
	err := r.DB.First(&instance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func (r *ExamRepository) ListQuestions(examID string) ([]model.ExamInstanceQuestion, error) {
	var qs []model.ExamInstanceQuestion
	err := r.DB.Where("exam_id = ?", examID).
		Order("order_index asc").
		Find(&qs).Error
	return qs, err
}

// SaveAttempt stores the graded attempt and flips the instance to submitted
// in one transaction.
func (r *ExamRepository) SaveAttempt(attempt *model.ExamAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		return tx.Model(&model.ExamInstance{}).
			Where("id = ?", attempt.ExamID).
			Update("status", model.ExamStatusSubmitted).Error
	})
}

func (r *ExamRepository) CountAttempts() (int64, error) {
	var total int64
	err := r.DB.Model(&model.ExamAttempt{}).Count(&total).Error
	return total, err
}
