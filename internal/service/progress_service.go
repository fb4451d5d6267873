package service

import (
	"context"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	BadgeRepo    *repository.BadgeRepository
	SessionRepo  *repository.SessionRepository
	Feedback     *FeedbackService
}

func NewProgressService(progressRepo *repository.ProgressRepository, badgeRepo *repository.BadgeRepository, sessionRepo *repository.SessionRepository, feedback *FeedbackService) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		BadgeRepo:    badgeRepo,
		SessionRepo:  sessionRepo,
		Feedback:     feedback,
	}
}

// BadgeView pairs a catalog badge with the user's progress towards it.
type BadgeView struct {
	Badge    model.Badge `json:"badge"`
	Progress int         `json:"progress"`
	Earned   bool        `json:"earned"`
	EarnedAt *time.Time  `json:"earnedAt,omitempty"`
}

// BadgesWithProgress lists every active badge with per-user progress. Badges
// the user has never touched report zero.
func (s *ProgressService) BadgesWithProgress(userID uint) ([]BadgeView, error) {
	badges, err := s.BadgeRepo.ListActive()
	if err != nil {
		return nil, err
	}
	userBadges, err := s.BadgeRepo.ListUserBadges(userID)
	if err != nil {
		return nil, err
	}
	byBadge := make(map[uint]model.UserBadge, len(userBadges))
	for _, ub := range userBadges {
		byBadge[ub.BadgeID] = ub
	}

	views := make([]BadgeView, 0, len(badges))
	for _, badge := range badges {
		view := BadgeView{Badge: badge}
		if ub, ok := byBadge[badge.ID]; ok {
			view.Progress = ub.Progress
			view.Earned = ub.Earned()
			view.EarnedAt = ub.EarnedAt
		}
		views = append(views, view)
	}
	return views, nil
}

// HistoryEntry is one session in the history view, flattened with its game.
type HistoryEntry struct {
	SessionID   uint               `json:"sessionId"`
	GameID      uint               `json:"gameId"`
	GameTitle   string             `json:"gameTitle"`
	Category    model.GameCategory `json:"category"`
	Score       int                `json:"score"`
	MaxScore    int                `json:"maxScore"`
	Accuracy    float64            `json:"accuracy"`
	XPEarned    int                `json:"xpEarned"`
	TimeSpent   int                `json:"timeSpent"`
	CompletedAt time.Time          `json:"completedAt"`
}

func (s *ProgressService) GameHistory(userID uint, filter repository.SessionFilter) ([]HistoryEntry, error) {
	sessions, err := s.SessionRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(sessions))
	for _, session := range sessions {
		entry := HistoryEntry{
			SessionID:   session.ID,
			GameID:      session.GameID,
			Score:       session.Score,
			MaxScore:    session.MaxScore,
			Accuracy:    math.Round(session.Accuracy()*10) / 10,
			XPEarned:    session.XPEarned,
			TimeSpent:   session.TimeSpent,
			CompletedAt: session.CompletedAt,
		}
		if session.Game != nil {
			entry.GameTitle = session.Game.Title
			entry.Category = session.Game.Category
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DailyActivity is one day in the weekly report, oldest first.
type DailyActivity struct {
	Date        string `json:"date"`
	GamesPlayed int    `json:"gamesPlayed"`
	XPEarned    int    `json:"xpEarned"`
}

// WeeklyReport aggregates the last seven days of play.
type WeeklyReport struct {
	GamesPlayed     int             `json:"gamesPlayed"`
	TotalXP         int             `json:"totalXP"`
	TotalTimeSpent  int             `json:"totalTimeSpent"`
	AverageAccuracy float64         `json:"averageAccuracy"`
	ByCategory      map[string]int  `json:"byCategory"`
	DailyActivity   []DailyActivity `json:"dailyActivity"`
	Insights        WeeklyInsights  `json:"insights"`
}

// GetWeeklyReport builds the seven-day report and asks the insights
// generator (AI, with fallback) for commentary.
func (s *ProgressService) GetWeeklyReport(ctx context.Context, userID uint) (*WeeklyReport, error) {
	now := time.Now()
	weekStart := startOfDay(now).AddDate(0, 0, -6)

	sessions, err := s.SessionRepo.ListSince(userID, weekStart)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{ByCategory: map[string]int{}}
	byDay := make(map[string]*DailyActivity, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i).Format(util.DateFormat)
		activity := &DailyActivity{Date: day}
		byDay[day] = activity
	}

	accuracySum := 0.0
	for _, session := range sessions {
		report.GamesPlayed++
		report.TotalXP += session.XPEarned
		report.TotalTimeSpent += session.TimeSpent
		accuracySum += session.Accuracy()
		if session.Game != nil {
			report.ByCategory[string(session.Game.Category)]++
		}
		if activity, ok := byDay[session.CompletedAt.Format(util.DateFormat)]; ok {
			activity.GamesPlayed++
			activity.XPEarned += session.XPEarned
		}
	}
	if report.GamesPlayed > 0 {
		report.AverageAccuracy = math.Round(accuracySum/float64(report.GamesPlayed)*10) / 10
	}

	activeDays := 0
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i).Format(util.DateFormat)
		activity := byDay[day]
		if activity.GamesPlayed > 0 {
			activeDays++
		}
		report.DailyActivity = append(report.DailyActivity, *activity)
	}

	report.Insights = s.Feedback.GenerateWeeklyInsights(ctx, WeeklySummary{
		GamesPlayed:     report.GamesPlayed,
		TotalXP:         report.TotalXP,
		AverageAccuracy: report.AverageAccuracy,
		ByCategory:      report.ByCategory,
		ActiveDays:      activeDays,
	})
	return report, nil
}

// Overview is the dashboard snapshot: progression plus counters.
type Overview struct {
	Progress     *model.UserProgress `json:"progress"`
	LevelInfo    LevelInfo           `json:"levelInfo"`
	TotalGames   int64               `json:"totalGames"`
	BadgesEarned int64               `json:"badgesEarned"`
}

func (s *ProgressService) Overview(userID uint) (*Overview, error) {
	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	totalGames, err := s.SessionRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	badgesEarned, err := s.BadgeRepo.CountEarned(userID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return &Overview{
		Progress:     progress,
		LevelInfo:    CalculateLevelInfo(progress.TotalXP),
		TotalGames:   totalGames,
		BadgesEarned: badgesEarned,
	}, nil
}
