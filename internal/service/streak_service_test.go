package service

import (
	"edugame_backend/internal/repository"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestStreakService(db *gorm.DB) *StreakService {
	return NewStreakService(repository.NewProgressRepository(db), repository.NewUserRepository(db))
}

// setLastActivity backdates a user's streak state directly.
func setLastActivity(t *testing.T, svc *StreakService, userID uint, daysAgo, streak, longest int) {
	t.Helper()
	progress, err := svc.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	when := time.Now().AddDate(0, 0, -daysAgo)
	progress.LastActivityDate = &when
	progress.Streak = streak
	progress.LongestStreak = longest
	if err := svc.ProgressRepo.Save(progress); err != nil {
		t.Fatalf("save progress: %v", err)
	}
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-first")

	result, err := svc.UpdateStreak(user.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Streak != 1 || !result.Extended || result.Reset {
		t.Errorf("got streak %d extended %v reset %v, want 1 true false", result.Streak, result.Extended, result.Reset)
	}
	if result.LongestStreak != 1 {
		t.Errorf("longest = %d, want 1", result.LongestStreak)
	}
	if result.LastActivity == nil {
		t.Error("lastActivityDate not set")
	}
}

func TestUpdateStreakSameDayIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-same")

	svc.UpdateStreak(user.ID)
	result, err := svc.UpdateStreak(user.ID)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if result.Streak != 1 || result.Extended || result.Reset {
		t.Errorf("second same-day update changed streak: %+v", result)
	}
}

func TestUpdateStreakConsecutiveDay(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-consec")
	setLastActivity(t, svc, user.ID, 1, 3, 3)

	result, err := svc.UpdateStreak(user.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Streak != 4 || !result.Extended {
		t.Errorf("got streak %d extended %v, want 4 true", result.Streak, result.Extended)
	}
	if result.LongestStreak != 4 {
		t.Errorf("longest = %d, want 4", result.LongestStreak)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-gap")
	setLastActivity(t, svc, user.ID, 3, 5, 5)

	result, err := svc.UpdateStreak(user.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Streak != 1 || !result.Reset || result.Extended {
		t.Errorf("got streak %d reset %v extended %v, want 1 true false", result.Streak, result.Reset, result.Extended)
	}
	if result.LongestStreak != 5 {
		t.Errorf("longest = %d, want 5 preserved across reset", result.LongestStreak)
	}
}

func TestGetStreakInfo(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-info")
	setLastActivity(t, svc, user.ID, 1, 2, 6)

	info, err := svc.GetStreakInfo(user.ID)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.CurrentStreak != 2 || info.LongestStreak != 6 {
		t.Errorf("streak %d longest %d, want 2/6", info.CurrentStreak, info.LongestStreak)
	}
	if info.IsActiveToday {
		t.Error("yesterday's activity reported as today")
	}
	if info.DaysUntilReset != 1 {
		t.Errorf("daysUntilReset = %d, want 1 while the streak is still savable", info.DaysUntilReset)
	}

	// Reading must not mutate anything.
	progress, _ := svc.ProgressRepo.FindByUser(user.ID)
	if progress.Streak != 2 {
		t.Errorf("read mutated streak to %d", progress.Streak)
	}
}

func TestResetStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)
	user := createTestUser(t, db, "streak-reset")
	setLastActivity(t, svc, user.ID, 0, 7, 9)

	if err := svc.ResetStreak(user.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	progress, _ := svc.ProgressRepo.FindByUser(user.ID)
	if progress.Streak != 0 {
		t.Errorf("streak = %d, want 0", progress.Streak)
	}
	if progress.LongestStreak != 9 {
		t.Errorf("longest = %d, want 9 untouched", progress.LongestStreak)
	}
}

func TestResetExpiredStreaks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStreakService(db)

	stale := createTestUser(t, db, "streak-stale")
	fresh := createTestUser(t, db, "streak-fresh")
	setLastActivity(t, svc, stale.ID, 4, 8, 2)
	setLastActivity(t, svc, fresh.ID, 1, 3, 3)

	reset, err := svc.ResetExpiredStreaks()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if reset != 1 {
		t.Errorf("reset %d streaks, want 1", reset)
	}

	staleProgress, _ := svc.ProgressRepo.FindByUser(stale.ID)
	if staleProgress.Streak != 0 {
		t.Errorf("stale streak = %d, want 0", staleProgress.Streak)
	}
	// The dying streak folds into the longest-streak record.
	if staleProgress.LongestStreak != 8 {
		t.Errorf("stale longest = %d, want 8", staleProgress.LongestStreak)
	}

	freshProgress, _ := svc.ProgressRepo.FindByUser(fresh.ID)
	if freshProgress.Streak != 3 {
		t.Errorf("fresh streak = %d, want 3 untouched", freshProgress.Streak)
	}
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same_moment", time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), 0},
		{"same_day_late", time.Date(2026, 8, 30, 0, 1, 0, 0, time.UTC), time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC), 0},
		{"across_midnight", time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC), 1},
		{"two_days", time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dayDiff(tt.from, tt.to); got != tt.want {
				t.Errorf("dayDiff = %d, want %d", got, tt.want)
			}
		})
	}
}
