package repository

import (
	"guidesphere_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id string) (*model.UserAccount, error) {
	var user model.UserAccount
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.UserAccount, error) {
	var user model.UserAccount
	err := r.DB.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountAll() (int64, error) {
	var total int64
	err := r.DB.Model(&model.UserAccount{}).Count(&total).Error
	return total, err
}

func (r *UserRepository) CountByRole(role model.UserRole) (int64, error) {
	var total int64
	err := r.DB.Model(&model.UserAccount{}).Where("role = ?", role).Count(&total).Error
	return total, err
}
