package repository

import (
	"edugame_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.GameSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByIDAndUser(id, userID uint) (*model.GameSession, error) {
	var session model.GameSession
	err := r.DB.Preload("Game").
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SessionFilter narrows ListByUser. Zero values mean no filter.
type SessionFilter struct {
	GameID uint
	From   time.Time
	To     time.Time
	Limit  int
}

func (r *SessionRepository) ListByUser(userID uint, filter SessionFilter) ([]model.GameSession, error) {
	query := r.DB.Preload("Game").Where("user_id = ?", userID)
	if filter.GameID > 0 {
		query = query.Where("game_id = ?", filter.GameID)
	}
	if !filter.From.IsZero() {
		query = query.Where("completed_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("completed_at <= ?", filter.To)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var sessions []model.GameSession
	err := query.Order("completed_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

// ListSince returns all sessions for a user completed at or after a point in
// time, oldest first. Used by weekly reports.
func (r *SessionRepository) ListSince(userID uint, since time.Time) ([]model.GameSession, error) {
	var sessions []model.GameSession
	err := r.DB.Preload("Game").
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Order("completed_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.GameSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
