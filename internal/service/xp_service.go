package service

import (
	"context"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"edugame_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// XPPerLevel is the flat level curve step: level N covers
// [(N-1)*100, N*100) total XP.
const XPPerLevel = 100

// LevelInfo describes where an XP total sits on the level curve.
type LevelInfo struct {
	Level              int `json:"level"`
	XPForCurrentLevel  int `json:"xpForCurrentLevel"`
	XPForNextLevel     int `json:"xpForNextLevel"`
	XPIntoLevel        int `json:"xpIntoLevel"`
	ProgressPercentage int `json:"progressPercentage"`
}

// CalculateLevelInfo is the single point of truth for the level curve.
// Levels are always recomputed from an XP total, never incremented.
func CalculateLevelInfo(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}
	level := xp/XPPerLevel + 1
	start := (level - 1) * XPPerLevel
	into := xp - start
	return LevelInfo{
		Level:              level,
		XPForCurrentLevel:  start,
		XPForNextLevel:     level * XPPerLevel,
		XPIntoLevel:        into,
		ProgressPercentage: into * 100 / XPPerLevel,
	}
}

type XPService struct {
	ProgressRepo *repository.ProgressRepository
	BadgeRepo    *repository.BadgeRepository
	UserRepo     *repository.UserRepository
	Redis        *redis.Client
	DB           *gorm.DB
}

func NewXPService(progressRepo *repository.ProgressRepository, badgeRepo *repository.BadgeRepository, userRepo *repository.UserRepository, rdb *redis.Client, db *gorm.DB) *XPService {
	return &XPService{
		ProgressRepo: progressRepo,
		BadgeRepo:    badgeRepo,
		UserRepo:     userRepo,
		Redis:        rdb,
		DB:           db,
	}
}

// XPAwardResult reports one award: new totals and whether a level boundary
// was crossed.
type XPAwardResult struct {
	TotalXP   int       `json:"totalXP"`
	Level     int       `json:"level"`
	LeveledUp bool      `json:"leveledUp"`
	Progress  LevelInfo `json:"progress"`
}

// AwardXP adds XP to the user's total and, when the source category is
// known, to the matching skill bucket. Negative amounts are rejected.
// The game category spelling ("soft-skills") is normalized to the bucket
// key here and nowhere else.
func (s *XPService) AwardXP(userID uint, amount int, category model.GameCategory) (*XPAwardResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("xp amount must not be negative: %d", amount)
	}

	var result XPAwardResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := repository.NewProgressRepository(tx).FindOrCreate(userID)
		if err != nil {
			return err
		}

		oldLevel := progress.Level
		progress.TotalXP += amount
		progress.Level = CalculateLevelInfo(progress.TotalXP).Level

		if skill, ok := model.NormalizeCategory(category); ok {
			bucket := progress.Skill(skill)
			bucket.XP += amount
			bucket.Level = CalculateLevelInfo(bucket.XP).Level
		}

		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		result = XPAwardResult{
			TotalXP:   progress.TotalXP,
			Level:     progress.Level,
			LeveledUp: progress.Level > oldLevel,
			Progress:  CalculateLevelInfo(progress.TotalXP),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Badge progress follows total XP; a failure here never fails the award.
	if err := s.EvaluateBadges(userID, result.TotalXP); err != nil {
		logger.Log.Warn("badge evaluation failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	s.invalidateLeaderboard()
	return &result, nil
}

// SpendXP deducts from the total only; skill buckets record lifetime
// earnings and are never reduced. Fails without clamping when the balance
// is short. Pass the enclosing transaction via tx, or nil to run alone.
func (s *XPService) SpendXP(tx *gorm.DB, userID uint, amount int) (*model.UserProgress, error) {
	if tx == nil {
		tx = s.DB
	}
	if amount <= 0 {
		return nil, fmt.Errorf("xp amount must be positive: %d", amount)
	}

	progress, err := repository.NewProgressRepository(tx).FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if progress.TotalXP < amount {
		return nil, util.ErrInsufficientXP
	}

	progress.TotalXP -= amount
	progress.Level = CalculateLevelInfo(progress.TotalXP).Level
	if err := tx.Save(progress).Error; err != nil {
		return nil, err
	}

	s.invalidateLeaderboard()
	return progress, nil
}

// SkillView is one skill bucket with its level curve position.
type SkillView struct {
	Category model.SkillCategory `json:"category"`
	XP       int                 `json:"xp"`
	Level    int                 `json:"level"`
	Progress LevelInfo           `json:"progress"`
}

// XPProfile is the full progression snapshot returned by GET /api/xp/profile.
type XPProfile struct {
	TotalXP       int         `json:"totalXP"`
	Level         int         `json:"level"`
	Progress      LevelInfo   `json:"progress"`
	Skills        []SkillView `json:"skills"`
	Streak        int         `json:"streak"`
	LongestStreak int         `json:"longestStreak"`
}

func (s *XPService) Profile(userID uint) (*XPProfile, error) {
	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	profile := &XPProfile{
		TotalXP:       progress.TotalXP,
		Level:         progress.Level,
		Progress:      CalculateLevelInfo(progress.TotalXP),
		Streak:        progress.Streak,
		LongestStreak: progress.LongestStreak,
	}
	for _, category := range model.SkillCategories() {
		bucket := progress.Skill(category)
		profile.Skills = append(profile.Skills, SkillView{
			Category: category,
			XP:       bucket.XP,
			Level:    bucket.Level,
			Progress: CalculateLevelInfo(bucket.XP),
		})
	}
	return profile, nil
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  uint   `json:"userId"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar,omitempty"`
	XP      int    `json:"xp"`
	Level   int    `json:"level"`
	TotalXP int    `json:"totalXP"`
}

const leaderboardTTL = time.Minute

// Leaderboard ranks users by total XP, or by one skill bucket when category
// names a valid bucket. Results are cached in redis for a minute.
func (s *XPService) Leaderboard(category model.SkillCategory, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("leaderboard:%s:%d", category, limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	var rows []model.UserProgress
	var err error
	if category == "" {
		rows, err = s.ProgressRepo.TopByTotalXP(limit)
	} else {
		rows, err = s.ProgressRepo.TopByCategoryXP(category, limit)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entry := LeaderboardEntry{
			Rank:    i + 1,
			UserID:  row.UserID,
			XP:      row.TotalXP,
			Level:   row.Level,
			TotalXP: row.TotalXP,
		}
		if category != "" {
			if bucket := row.Skill(category); bucket != nil {
				entry.XP = bucket.XP
				entry.Level = bucket.Level
			}
		}
		if u, ok := byID[row.UserID]; ok {
			entry.Name = u.Name
			entry.Avatar = u.Avatar
		}
		entries = append(entries, entry)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, leaderboardTTL)
		}
	}
	return entries, nil
}

func (s *XPService) invalidateLeaderboard() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, "leaderboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Redis.Del(ctx, keys...)
}

// EvaluateBadges recomputes progress for every active badge from the XP
// total: progress = min(100, round(totalXP/xpRequired*100)). EarnedAt is set
// once when progress first reaches 100 and survives later XP spends.
func (s *XPService) EvaluateBadges(userID uint, totalXP int) error {
	badges, err := s.BadgeRepo.ListActive()
	if err != nil {
		return err
	}

	for _, badge := range badges {
		if badge.XPRequired <= 0 {
			continue
		}
		progress := int(math.Round(float64(totalXP) / float64(badge.XPRequired) * 100))
		if progress > 100 {
			progress = 100
		}

		ub, err := s.BadgeRepo.FindUserBadge(userID, badge.ID)
		if err == gorm.ErrRecordNotFound {
			ub = &model.UserBadge{UserID: userID, BadgeID: badge.ID, Progress: progress}
			if progress >= 100 {
				now := time.Now()
				ub.EarnedAt = &now
			}
			if err := s.BadgeRepo.CreateUserBadge(ub); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		// Earned badges stay earned; only progress below 100 moves.
		if ub.Earned() {
			continue
		}
		ub.Progress = progress
		if progress >= 100 {
			now := time.Now()
			ub.EarnedAt = &now
		}
		if err := s.BadgeRepo.SaveUserBadge(ub); err != nil {
			return err
		}
	}
	return nil
}
