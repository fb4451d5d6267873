package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"edugame_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// challengeTemplate seeds one daily challenge. The template for a date is
// picked by day-of-year so every caller generates the same challenge.
type challengeTemplate struct {
	Title       string
	Description string
	Type        model.ChallengeType
	TargetCount int
	TargetXP    int
	Category    model.GameCategory
	MinScore    int
	RewardXP    int
	BonusBadge  string
}

var challengeTemplates = []challengeTemplate{
	{
		Title:       "Game Marathon",
		Description: "Complete 3 games today",
		Type:        model.ChallengePlayGames,
		TargetCount: 3,
		RewardXP:    50,
	},
	{
		Title:       "XP Hunter",
		Description: "Earn 100 XP today",
		Type:        model.ChallengeEarnXP,
		TargetXP:    100,
		RewardXP:    40,
	},
	{
		Title:       "Language Explorer",
		Description: "Complete 2 language games today",
		Type:        model.ChallengeCompleteCategory,
		TargetCount: 2,
		Category:    model.CategoryLanguage,
		RewardXP:    45,
	},
	{
		Title:       "Perfectionist",
		Description: "Get a perfect score in any game",
		Type:        model.ChallengePerfectScore,
		TargetCount: 1,
		MinScore:    100,
		RewardXP:    60,
		BonusBadge:  "Perfect Day",
	},
	{
		Title:       "Culture Quest",
		Description: "Complete 2 culture games today",
		Type:        model.ChallengeSkillFocus,
		TargetCount: 2,
		Category:    model.CategoryCulture,
		RewardXP:    45,
	},
}

type ChallengeService struct {
	ChallengeRepo *repository.ChallengeRepository
	XPService     *XPService
}

func NewChallengeService(challengeRepo *repository.ChallengeRepository, xpService *XPService) *ChallengeService {
	return &ChallengeService{ChallengeRepo: challengeRepo, XPService: xpService}
}

// EnsureDailyChallenge returns today's challenge, creating it from the
// date-keyed template when it does not exist yet. Safe to race: the unique
// index on date makes the loser re-read the winner's row.
func (s *ChallengeService) EnsureDailyChallenge(date time.Time) (*model.Challenge, error) {
	day := startOfDay(date)
	challenge, err := s.ChallengeRepo.FindByDate(day)
	if err == nil {
		return challenge, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tpl := challengeTemplates[day.YearDay()%len(challengeTemplates)]
	challenge = &model.Challenge{
		Date:        day,
		Title:       tpl.Title,
		Description: tpl.Description,
		Type:        tpl.Type,
		TargetCount: tpl.TargetCount,
		TargetXP:    tpl.TargetXP,
		Category:    tpl.Category,
		MinScore:    tpl.MinScore,
		RewardXP:    tpl.RewardXP,
		BonusBadge:  tpl.BonusBadge,
	}
	if err := s.ChallengeRepo.Create(challenge); err != nil {
		return s.ChallengeRepo.FindByDate(day)
	}
	return challenge, nil
}

// DailyChallenge returns today's challenge with the user's take on it,
// creating both lazily.
func (s *ChallengeService) DailyChallenge(userID uint) (*model.UserChallenge, error) {
	challenge, err := s.EnsureDailyChallenge(time.Now())
	if err != nil {
		return nil, err
	}

	uc, err := s.ChallengeRepo.FindUserChallenge(userID, challenge.ID)
	if err == gorm.ErrRecordNotFound {
		uc = &model.UserChallenge{
			UserID:      userID,
			ChallengeID: challenge.ID,
			Status:      model.ChallengeInProgress,
			Target:      challenge.Target(),
		}
		if err := s.ChallengeRepo.CreateUserChallenge(uc); err != nil {
			return nil, err
		}
		uc.Challenge = challenge
		return uc, nil
	}
	if err != nil {
		return nil, err
	}
	return uc, nil
}

// SessionUpdate is what a finished game session contributes to challenge
// progress.
type SessionUpdate struct {
	Category model.GameCategory
	XPEarned int
	Score    int
	MaxScore int
}

// UpdateProgress applies one session to the user's active daily challenge.
// Increments are keyed on the challenge type; the percentage caps at 100 and
// hitting the target completes the challenge immediately.
func (s *ChallengeService) UpdateProgress(userID uint, update SessionUpdate) (*model.UserChallenge, error) {
	uc, err := s.DailyChallenge(userID)
	if err != nil {
		return nil, err
	}
	if uc.Status != model.ChallengeInProgress {
		return uc, nil
	}

	challenge := uc.Challenge
	increment := 0
	switch challenge.Type {
	case model.ChallengePlayGames:
		increment = 1
	case model.ChallengeEarnXP:
		increment = update.XPEarned
	case model.ChallengeCompleteCategory, model.ChallengeSkillFocus:
		if update.Category == challenge.Category {
			increment = 1
		}
	case model.ChallengePerfectScore:
		if update.MaxScore > 0 && update.Score >= update.MaxScore {
			increment = 1
		}
	}
	if increment == 0 {
		return uc, nil
	}

	uc.Current += increment
	if uc.Target > 0 {
		uc.Percentage = uc.Current * 100 / uc.Target
		if uc.Percentage > 100 {
			uc.Percentage = 100
		}
	}

	if uc.Current >= uc.Target {
		return s.complete(uc)
	}
	if err := s.ChallengeRepo.SaveUserChallenge(uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// Complete finishes a challenge by ID. Re-invoking on an already completed
// challenge returns the record unchanged; an expired one cannot be completed.
func (s *ChallengeService) Complete(userID, challengeID uint) (*model.UserChallenge, error) {
	uc, err := s.ChallengeRepo.FindUserChallenge(userID, challengeID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}

	switch uc.Status {
	case model.ChallengeCompleted:
		return uc, nil
	case model.ChallengeExpired:
		return nil, util.ErrChallengeNotActive
	}
	if uc.Current < uc.Target {
		return nil, util.ErrChallengeNotFulfilled
	}
	return s.complete(uc)
}

func (s *ChallengeService) complete(uc *model.UserChallenge) (*model.UserChallenge, error) {
	now := time.Now()
	uc.Status = model.ChallengeCompleted
	uc.CompletedAt = &now
	uc.Percentage = 100
	if uc.Challenge != nil {
		uc.BonusBadge = uc.Challenge.BonusBadge
	}
	if err := s.ChallengeRepo.SaveUserChallenge(uc); err != nil {
		return nil, err
	}

	// Challenge rewards land on the total only; they have no game category.
	if uc.Challenge != nil && uc.Challenge.RewardXP > 0 {
		if _, err := s.XPService.AwardXP(uc.UserID, uc.Challenge.RewardXP, ""); err != nil {
			logger.Log.Error("challenge reward award failed",
				zap.Uint("user_id", uc.UserID), zap.Uint("challenge_id", uc.ChallengeID), zap.Error(err))
		}
	}
	return uc, nil
}

func (s *ChallengeService) History(userID uint, limit int) ([]model.UserChallenge, error) {
	return s.ChallengeRepo.ListUserChallenges(userID, limit)
}

// ChallengeStats summarizes a user's challenge record.
type ChallengeStats struct {
	Completed        int `json:"completed"`
	TotalXPEarned    int `json:"totalXPEarned"`
	BonusBadges      int `json:"bonusBadges"`
	CompletionStreak int `json:"completionStreak"`
}

// Stats counts completions, XP from challenge rewards, bonus badges and the
// streak of consecutive days ending today (or yesterday) with a completed
// challenge.
func (s *ChallengeService) Stats(userID uint) (*ChallengeStats, error) {
	completed, err := s.ChallengeRepo.ListCompleted(userID)
	if err != nil {
		return nil, err
	}

	stats := &ChallengeStats{Completed: len(completed)}
	days := make(map[string]bool, len(completed))
	for _, uc := range completed {
		if uc.Challenge != nil {
			stats.TotalXPEarned += uc.Challenge.RewardXP
			days[uc.Challenge.Date.Format(util.DateFormat)] = true
		}
		if uc.BonusBadge != "" {
			stats.BonusBadges++
		}
	}

	day := startOfDay(time.Now())
	if !days[day.Format(util.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format(util.DateFormat)] {
		stats.CompletionStreak++
		day = day.AddDate(0, 0, -1)
	}
	return stats, nil
}

// ExpireStale marks in-progress takes on past challenges expired. Runs from
// the maintenance schedule.
func (s *ChallengeService) ExpireStale() (int64, error) {
	return s.ChallengeRepo.ExpireStale(startOfDay(time.Now()))
}
