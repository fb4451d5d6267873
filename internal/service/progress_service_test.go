package service

import (
	"context"
	"edugame_backend/internal/config"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewBadgeRepository(db),
		repository.NewSessionRepository(db),
		NewFeedbackService(&config.AIConfig{}),
	)
}

func createTestSession(t *testing.T, db *gorm.DB, userID, gameID uint, score, maxScore, xp int, completedAt time.Time) *model.GameSession {
	t.Helper()
	session := &model.GameSession{
		UserID:      userID,
		GameID:      gameID,
		Score:       score,
		MaxScore:    maxScore,
		XPEarned:    xp,
		TimeSpent:   60,
		CompletedAt: completedAt,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func TestGetWeeklyReport(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgressService(db)
	user := createTestUser(t, db, "reporter")
	game := createTestGame(t, db, "Word Match", model.CategoryLanguage, 50)

	now := time.Now()
	createTestSession(t, db, user.ID, game.ID, 8, 10, 40, now)
	createTestSession(t, db, user.ID, game.ID, 6, 10, 30, now)
	createTestSession(t, db, user.ID, game.ID, 10, 10, 50, now.AddDate(0, 0, -2))
	// Outside the seven-day window, must not count.
	createTestSession(t, db, user.ID, game.ID, 5, 10, 25, now.AddDate(0, 0, -8))

	report, err := svc.GetWeeklyReport(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if report.GamesPlayed != 3 {
		t.Errorf("gamesPlayed = %d, want 3", report.GamesPlayed)
	}
	if report.TotalXP != 120 {
		t.Errorf("totalXP = %d, want 120", report.TotalXP)
	}
	if len(report.DailyActivity) != 7 {
		t.Fatalf("dailyActivity has %d days, want 7", len(report.DailyActivity))
	}

	today := report.DailyActivity[6]
	if today.GamesPlayed != 2 || today.XPEarned != 70 {
		t.Errorf("today = %+v, want 2 games / 70 XP", today)
	}
	twoDaysAgo := report.DailyActivity[4]
	if twoDaysAgo.GamesPlayed != 1 || twoDaysAgo.XPEarned != 50 {
		t.Errorf("two days ago = %+v, want 1 game / 50 XP", twoDaysAgo)
	}

	if report.ByCategory["language"] != 3 {
		t.Errorf("byCategory = %v, want language 3", report.ByCategory)
	}
	// (80 + 60 + 100) / 3 = 80.
	if report.AverageAccuracy != 80 {
		t.Errorf("averageAccuracy = %v, want 80", report.AverageAccuracy)
	}
	if report.Insights.Source != "fallback" || report.Insights.Summary == "" {
		t.Errorf("insights = %+v, want fallback with a summary", report.Insights)
	}
}

func TestGetWeeklyReportEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgressService(db)
	user := createTestUser(t, db, "idle")

	report, err := svc.GetWeeklyReport(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.GamesPlayed != 0 || len(report.DailyActivity) != 7 {
		t.Errorf("empty report = %d games, %d days", report.GamesPlayed, len(report.DailyActivity))
	}
	if len(report.Insights.Suggestions) == 0 {
		t.Error("an idle week should come with a suggestion")
	}
}

func TestBadgesWithProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgressService(db)
	xp := newTestXPService(db)
	user := createTestUser(t, db, "collector")

	small := &model.Badge{Name: "Starter", XPRequired: 50, IsActive: true}
	big := &model.Badge{Name: "Scholar", XPRequired: 1000, IsActive: true}
	hidden := &model.Badge{Name: "Retired", XPRequired: 10, IsActive: false}
	for _, badge := range []*model.Badge{small, big, hidden} {
		if err := db.Create(badge).Error; err != nil {
			t.Fatalf("create badge: %v", err)
		}
	}

	if _, err := xp.AwardXP(user.ID, 100, ""); err != nil {
		t.Fatalf("award: %v", err)
	}

	views, err := svc.BadgesWithProgress(user.ID)
	if err != nil {
		t.Fatalf("badges: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2 active badges", len(views))
	}
	for _, view := range views {
		switch view.Badge.Name {
		case "Starter":
			if !view.Earned || view.Progress != 100 {
				t.Errorf("Starter = progress %d earned %v, want 100 true", view.Progress, view.Earned)
			}
		case "Scholar":
			if view.Earned || view.Progress != 10 {
				t.Errorf("Scholar = progress %d earned %v, want 10 false", view.Progress, view.Earned)
			}
		}
	}
}

func TestOverview(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgressService(db)
	xp := newTestXPService(db)
	user := createTestUser(t, db, "overviewer")
	game := createTestGame(t, db, "Any", model.CategoryCulture, 30)

	badge := &model.Badge{Name: "Quick", XPRequired: 100, IsActive: true}
	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("create badge: %v", err)
	}

	xp.AwardXP(user.ID, 150, model.CategoryCulture)
	createTestSession(t, db, user.ID, game.ID, 5, 10, 15, time.Now())
	createTestSession(t, db, user.ID, game.ID, 7, 10, 21, time.Now())

	overview, err := svc.Overview(user.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalGames != 2 {
		t.Errorf("totalGames = %d, want 2", overview.TotalGames)
	}
	if overview.BadgesEarned != 1 {
		t.Errorf("badgesEarned = %d, want 1", overview.BadgesEarned)
	}
	if overview.LevelInfo.Level != 2 {
		t.Errorf("level = %d, want 2 at 150 XP", overview.LevelInfo.Level)
	}
}

func TestGameHistoryAccuracy(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgressService(db)
	user := createTestUser(t, db, "historian")
	game := createTestGame(t, db, "Trivia", model.CategoryLanguage, 30)

	createTestSession(t, db, user.ID, game.ID, 2, 3, 20, time.Now())

	entries, err := svc.GameHistory(user.ID, repository.SessionFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.GameTitle != "Trivia" || entry.Category != model.CategoryLanguage {
		t.Errorf("entry game = %q/%s", entry.GameTitle, entry.Category)
	}
	// 2/3 rounds to one decimal place.
	if entry.Accuracy != 66.7 {
		t.Errorf("accuracy = %v, want 66.7", entry.Accuracy)
	}
}
