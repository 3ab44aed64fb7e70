package repository

import (
	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) CreateItem(item *model.QuestionBankItem) error {
	return r.DB.Create(item).Error
}

func (r *QuestionBankRepository) CountByMaterial(materialID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.QuestionBankItem{}).
		Where("material_id = ?", materialID).
		Count(&total).Error
	return total, err
}

// SampleByMaterial draws up to count distinct items in random database order.
// RANDOM() is understood by both postgres and the sqlite used in tests.
func (r *QuestionBankRepository) SampleByMaterial(materialID string, count int) ([]model.QuestionBankItem, error) {
	var items []model.QuestionBankItem
	err := r.DB.Where("material_id = ?", materialID).
		Order("RANDOM()").
		Limit(count).
		Find(&items).Error
	return items, err
}

func (r *QuestionBankRepository) ListByMaterial(materialID string) ([]model.QuestionBankItem, error) {
	var items []model.QuestionBankItem
	err := r.DB.Where("material_id = ?", materialID).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}
