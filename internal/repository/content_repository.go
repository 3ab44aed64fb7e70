package repository

import (
	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) FindContentByID(id string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository) FindDocumentAsset(contentID string) (*model.DocumentAsset, error) {
	var asset model.DocumentAsset
	err := r.DB.First(&asset, "content_id = ?", contentID).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *ContentRepository) FindDocumentAssetByID(id string) (*model.DocumentAsset, error) {
	var asset model.DocumentAsset
	err := r.DB.First(&asset, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *ContentRepository) FindMediaAsset(contentID string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	err := r.DB.First(&asset, "content_id = ?", contentID).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *ContentRepository) CourseIDForContent(db *gorm.DB, contentID string) (string, error) {
	var item model.ContentItem
	err := db.Select("course_id").First(&item, "id = ?", contentID).Error
	if err != nil {
		return "", err
	}
	return item.CourseID, nil
}

func (r *ContentRepository) ContentExists(contentID string) (bool, error) {
	var total int64
	err := r.DB.Model(&model.ContentItem{}).Where("id = ?", contentID).Count(&total).Error
	return total > 0, err
}

func (r *ContentRepository) FindCourseByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *ContentRepository) CourseExists(courseID string) (bool, error) {
	var total int64
	err := r.DB.Model(&model.Course{}).Where("id = ?", courseID).Count(&total).Error
	return total > 0, err
}

func (r *ContentRepository) CountCourses() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Course{}).Count(&total).Error
	return total, err
}
