package repository

import (
	"edugame_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListActive() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("is_active = ?", true).
		Order("category, level").
		Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindByName(name string) (*model.Badge, error) {
	var badge model.Badge
	err := r.DB.Where("name = ?", name).First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindUserBadge(userID, badgeID uint) (*model.UserBadge, error) {
	var ub model.UserBadge
	err := r.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&ub).Error
	if err != nil {
		return nil, err
	}
	return &ub, nil
}

func (r *BadgeRepository) CreateUserBadge(ub *model.UserBadge) error {
	return r.DB.Create(ub).Error
}

func (r *BadgeRepository) SaveUserBadge(ub *model.UserBadge) error {
	return r.DB.Save(ub).Error
}

func (r *BadgeRepository) ListUserBadges(userID uint) ([]model.UserBadge, error) {
	var badges []model.UserBadge
	err := r.DB.Preload("Badge").Where("user_id = ?", userID).Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) CountEarned(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND earned_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}
