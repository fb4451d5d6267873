package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"time"
)

type StreakService struct {
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
}

func NewStreakService(progressRepo *repository.ProgressRepository, userRepo *repository.UserRepository) *StreakService {
	return &StreakService{ProgressRepo: progressRepo, UserRepo: userRepo}
}

// startOfDay truncates to local midnight; streaks count calendar days, not
// 24-hour windows.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayDiff(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}

// StreakResult reports one streak update.
type StreakResult struct {
	Streak        int        `json:"streak"`
	LongestStreak int        `json:"longestStreak"`
	Extended      bool       `json:"extended"`
	Reset         bool       `json:"reset"`
	LastActivity  *time.Time `json:"lastActivityDate"`
}

// UpdateStreak records activity for today. Same calendar day leaves the
// streak unchanged, the day after the last activity extends it by one, any
// longer gap starts over at one. lastActivityDate is refreshed in every
// branch.
func (s *StreakService) UpdateStreak(userID uint) (*StreakResult, error) {
	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &StreakResult{}

	if progress.LastActivityDate == nil {
		progress.Streak = 1
		result.Extended = true
	} else {
		switch diff := dayDiff(*progress.LastActivityDate, now); {
		case diff == 0:
			// Already counted today.
		case diff == 1:
			progress.Streak++
			result.Extended = true
		default:
			progress.Streak = 1
			result.Reset = true
		}
	}

	if progress.Streak > progress.LongestStreak {
		progress.LongestStreak = progress.Streak
	}
	progress.LastActivityDate = &now

	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	result.Streak = progress.Streak
	result.LongestStreak = progress.LongestStreak
	result.LastActivity = progress.LastActivityDate
	return result, nil
}

// StreakInfo is the read-only streak view. IsActiveToday tells whether the
// user already has activity today; DaysUntilReset is 1 while the streak can
// still be saved by playing today or tomorrow, 0 once it is gone.
type StreakInfo struct {
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	LastActivity   *time.Time `json:"lastActivityDate"`
	IsActiveToday  bool       `json:"isActiveToday"`
	DaysUntilReset int        `json:"daysUntilReset"`
}

// GetStreakInfo reads the streak without mutating anything; a stale streak
// is reported as-is until the user acts or the sweep runs.
func (s *StreakService) GetStreakInfo(userID uint) (*StreakInfo, error) {
	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	info := &StreakInfo{
		CurrentStreak: progress.Streak,
		LongestStreak: progress.LongestStreak,
		LastActivity:  progress.LastActivityDate,
	}
	if progress.LastActivityDate != nil {
		diff := dayDiff(*progress.LastActivityDate, time.Now())
		info.IsActiveToday = diff == 0
		if diff <= 1 && progress.Streak > 0 {
			info.DaysUntilReset = 1
		}
	}
	return info, nil
}

// ResetStreak zeroes the user's streak unconditionally. The date logic is
// deliberately bypassed; longestStreak keeps its history.
func (s *StreakService) ResetStreak(userID uint) error {
	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return err
	}
	progress.Streak = 0
	return s.ProgressRepo.Save(progress)
}

// ResetExpiredStreaks zeroes every live streak whose last activity is more
// than one calendar day old. Runs from the maintenance schedule and the
// admin endpoint; returns how many streaks were cut.
func (s *StreakService) ResetExpiredStreaks() (int, error) {
	rows, err := s.ProgressRepo.ListWithStreak()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	reset := 0
	for i := range rows {
		progress := &rows[i]
		if progress.LastActivityDate != nil && dayDiff(*progress.LastActivityDate, now) <= 1 {
			continue
		}
		// Legacy rows may predate longest-streak tracking; fold the dying
		// streak into the record before cutting it.
		if progress.Streak > progress.LongestStreak {
			progress.LongestStreak = progress.Streak
		}
		progress.Streak = 0
		if err := s.ProgressRepo.Save(progress); err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}

// StreakStatistics is the admin overview.
type StreakStatistics struct {
	TotalUsers      int               `json:"totalUsers"`
	ActiveStreaks   int               `json:"activeStreaks"`
	AverageStreak   float64           `json:"averageStreak"`
	LongestStreak   int               `json:"longestStreak"`
	TopStreaks      []StreakTopEntry  `json:"topStreaks"`
}

type StreakTopEntry struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

func (s *StreakService) Statistics() (*StreakStatistics, error) {
	rows, err := s.ProgressRepo.ListAll()
	if err != nil {
		return nil, err
	}

	stats := &StreakStatistics{TotalUsers: len(rows)}
	sum := 0
	var top []model.UserProgress
	for _, row := range rows {
		sum += row.Streak
		if row.Streak > 0 {
			stats.ActiveStreaks++
		}
		if row.Streak > stats.LongestStreak {
			stats.LongestStreak = row.Streak
		}
		top = append(top, row)
	}
	if len(rows) > 0 {
		stats.AverageStreak = float64(sum) / float64(len(rows))
	}

	// Top 10 by current streak.
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			if top[j].Streak > top[i].Streak {
				top[i], top[j] = top[j], top[i]
			}
		}
	}
	if len(top) > 10 {
		top = top[:10]
	}

	ids := make([]uint, 0, len(top))
	for _, row := range top {
		ids = append(ids, row.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for _, row := range top {
		stats.TopStreaks = append(stats.TopStreaks, StreakTopEntry{
			UserID: row.UserID,
			Name:   names[row.UserID],
			Streak: row.Streak,
		})
	}
	return stats, nil
}
