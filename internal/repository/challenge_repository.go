package repository

import (
	"edugame_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.First(&challenge, id).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// FindByDate looks up the challenge for a calendar date (local midnight).
func (r *ChallengeRepository) FindByDate(date time.Time) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.Where("date = ?", date).First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) FindUserChallenge(userID, challengeID uint) (*model.UserChallenge, error) {
	var uc model.UserChallenge
	err := r.DB.Preload("Challenge").
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *ChallengeRepository) CreateUserChallenge(uc *model.UserChallenge) error {
	return r.DB.Create(uc).Error
}

func (r *ChallengeRepository) SaveUserChallenge(uc *model.UserChallenge) error {
	return r.DB.Save(uc).Error
}

// FindActiveForUser returns the user's in-progress take on today's challenge,
// if both exist.
func (r *ChallengeRepository) FindActiveForUser(userID uint, date time.Time) (*model.UserChallenge, error) {
	var uc model.UserChallenge
	err := r.DB.Preload("Challenge").
		Joins("JOIN challenges ON challenges.id = user_challenges.challenge_id").
		Where("user_challenges.user_id = ? AND user_challenges.status = ? AND challenges.date = ?",
			userID, model.ChallengeInProgress, date).
		First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *ChallengeRepository) ListUserChallenges(userID uint, limit int) ([]model.UserChallenge, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var ucs []model.UserChallenge
	err := r.DB.Preload("Challenge").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ucs).Error
	return ucs, err
}

func (r *ChallengeRepository) ListCompleted(userID uint) ([]model.UserChallenge, error) {
	var ucs []model.UserChallenge
	err := r.DB.Preload("Challenge").
		Where("user_id = ? AND status = ?", userID, model.ChallengeCompleted).
		Order("completed_at DESC").
		Find(&ucs).Error
	return ucs, err
}

// ExpireStale marks in-progress takes on past challenges as expired and
// returns how many rows were touched.
func (r *ChallengeRepository) ExpireStale(before time.Time) (int64, error) {
	result := r.DB.Model(&model.UserChallenge{}).
		Where("status = ? AND challenge_id IN (?)",
			model.ChallengeInProgress,
			r.DB.Model(&model.Challenge{}).Select("id").Where("date < ?", before)).
		Update("status", model.ChallengeExpired)
	return result.RowsAffected, result.Error
}
