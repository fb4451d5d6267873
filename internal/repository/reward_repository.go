package repository

import (
	"edugame_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type RewardRepository struct {
	DB *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{DB: db}
}

func (r *RewardRepository) Create(reward *model.Reward) error {
	return r.DB.Create(reward).Error
}

func (r *RewardRepository) FindByID(id uint) (*model.Reward, error) {
	var reward model.Reward
	err := r.DB.First(&reward, id).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

// ListAvailable returns active in-stock rewards sorted by XP cost, cheapest
// first. Category is optional.
func (r *RewardRepository) ListAvailable(category string) ([]model.Reward, error) {
	query := r.DB.Where("is_active = ? AND available_quantity > 0", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var rewards []model.Reward
	err := query.Order("xp_cost ASC").Find(&rewards).Error
	return rewards, err
}

func (r *RewardRepository) ListAll() ([]model.Reward, error) {
	var rewards []model.Reward
	err := r.DB.Order("created_at DESC").Find(&rewards).Error
	return rewards, err
}

func (r *RewardRepository) Update(reward *model.Reward) error {
	return r.DB.Save(reward).Error
}

func (r *RewardRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Reward{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// DecrementQuantity takes one unit of stock inside tx. The guard keeps two
// concurrent redemptions of the last unit from both succeeding: the second
// one matches zero rows.
func (r *RewardRepository) DecrementQuantity(tx *gorm.DB, rewardID uint) (bool, error) {
	result := tx.Model(&model.Reward{}).
		Where("id = ? AND available_quantity > 0", rewardID).
		Update("available_quantity", gorm.Expr("available_quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RewardRepository) CreateUserReward(tx *gorm.DB, ur *model.UserReward) error {
	return tx.Create(ur).Error
}

func (r *RewardRepository) FindUserRewardByID(id uint) (*model.UserReward, error) {
	var ur model.UserReward
	err := r.DB.Preload("Reward").First(&ur, id).Error
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

func (r *RewardRepository) ListUserRewards(userID uint, status model.UserRewardStatus) ([]model.UserReward, error) {
	query := r.DB.Preload("Reward").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var urs []model.UserReward
	err := query.Order("redeemed_at DESC").Find(&urs).Error
	return urs, err
}

func (r *RewardRepository) SaveUserReward(ur *model.UserReward) error {
	return r.DB.Save(ur).Error
}

// ExpireOld marks active redemptions past their expiry as expired.
func (r *RewardRepository) ExpireOld(now time.Time) (int64, error) {
	result := r.DB.Model(&model.UserReward{}).
		Where("status = ? AND expires_at < ?", model.UserRewardActive, now).
		Update("status", model.UserRewardExpired)
	return result.RowsAffected, result.Error
}
