package repository

import (
	"edugame_backend/internal/model"

	"gorm.io/gorm"
)

type GameRepository struct {
	DB *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{DB: db}
}

func (r *GameRepository) Create(game *model.Game) error {
	return r.DB.Create(game).Error
}

func (r *GameRepository) FindByID(id uint) (*model.Game, error) {
	var game model.Game
	err := r.DB.First(&game, id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) FindActiveByID(id uint) (*model.Game, error) {
	var game model.Game
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListActive returns active games, optionally filtered by category and
// difficulty (0 means no filter).
func (r *GameRepository) ListActive(category model.GameCategory, difficulty int) ([]model.Game, error) {
	query := r.DB.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty > 0 {
		query = query.Where("difficulty = ?", difficulty)
	}

	var games []model.Game
	err := query.Order("created_at DESC").Find(&games).Error
	return games, err
}

// ListAll includes inactive games, for the admin catalog view.
func (r *GameRepository) ListAll() ([]model.Game, error) {
	var games []model.Game
	err := r.DB.Order("created_at DESC").Find(&games).Error
	return games, err
}

func (r *GameRepository) Update(game *model.Game) error {
	return r.DB.Save(game).Error
}

// Deactivate soft-deletes a game by flipping is_active; sessions referencing
// it stay intact.
func (r *GameRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Game{}).Where("id = ?", id).
		Update("is_active", false).Error
}
