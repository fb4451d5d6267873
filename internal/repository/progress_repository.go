package repository

import (
	"edugame_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByUser(userID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindOrCreate returns the user's progress row, creating a fresh one when it
// does not exist yet.
func (r *ProgressRepository) FindOrCreate(userID uint) (*model.UserProgress, error) {
	progress, err := r.FindByUser(userID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.UserProgress{
			UserID:     userID,
			Level:      1,
			Language:   model.SkillProgress{Level: 1},
			Culture:    model.SkillProgress{Level: 1},
			SoftSkills: model.SkillProgress{Level: 1},
		}
		if err := r.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *ProgressRepository) Save(progress *model.UserProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) ListAll() ([]model.UserProgress, error) {
	var all []model.UserProgress
	err := r.DB.Find(&all).Error
	return all, err
}

// ListWithStreak returns rows with a live streak, for the expiry sweep.
func (r *ProgressRepository) ListWithStreak() ([]model.UserProgress, error) {
	var all []model.UserProgress
	err := r.DB.Where("streak > 0").Find(&all).Error
	return all, err
}

// TopByTotalXP returns the leaderboard rows ordered by total XP.
func (r *ProgressRepository) TopByTotalXP(limit int) ([]model.UserProgress, error) {
	var top []model.UserProgress
	err := r.DB.Order("total_xp DESC").Limit(limit).Find(&top).Error
	return top, err
}

// TopByCategoryXP orders by one skill bucket. The column is derived from a
// fixed category switch, never from request input.
func (r *ProgressRepository) TopByCategoryXP(category model.SkillCategory, limit int) ([]model.UserProgress, error) {
	var column string
	switch category {
	case model.SkillLanguage:
		column = "language_xp"
	case model.SkillCulture:
		column = "culture_xp"
	case model.SkillSoftSkills:
		column = "soft_skills_xp"
	default:
		column = "total_xp"
	}

	var top []model.UserProgress
	err := r.DB.Order(column + " DESC").Limit(limit).Find(&top).Error
	return top, err
}

// ResetWeeklyProgress zeroes every weekly counter. Runs Monday at midnight.
func (r *ProgressRepository) ResetWeeklyProgress() error {
	return r.DB.Model(&model.UserProgress{}).
		Where("weekly_progress > 0").
		Update("weekly_progress", 0).Error
}
