package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestChallengeService(db *gorm.DB) *ChallengeService {
	return NewChallengeService(repository.NewChallengeRepository(db), newTestXPService(db))
}

// seedChallenge pins today's challenge to a known definition so tests do not
// depend on the date-keyed template rotation.
func seedChallenge(t *testing.T, svc *ChallengeService, challenge *model.Challenge) *model.Challenge {
	t.Helper()
	challenge.Date = startOfDay(time.Now())
	if challenge.Title == "" {
		challenge.Title = "Test Challenge"
	}
	if err := svc.ChallengeRepo.Create(challenge); err != nil {
		t.Fatalf("seed challenge: %v", err)
	}
	return challenge
}

func TestEnsureDailyChallengeDeterministic(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)

	now := time.Now()
	first, err := svc.EnsureDailyChallenge(now)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := svc.EnsureDailyChallenge(now.Add(3 * time.Hour))
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("two challenges created for one day: %d and %d", first.ID, second.ID)
	}

	tpl := challengeTemplates[startOfDay(now).YearDay()%len(challengeTemplates)]
	if first.Title != tpl.Title || first.Type != tpl.Type {
		t.Errorf("challenge %q/%s does not match the day's template %q/%s",
			first.Title, first.Type, tpl.Title, tpl.Type)
	}
}

func TestDailyChallengeCreatesUserTake(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "challenger")
	seedChallenge(t, svc, &model.Challenge{
		Type:        model.ChallengePlayGames,
		TargetCount: 3,
		RewardXP:    50,
	})

	uc, err := svc.DailyChallenge(user.ID)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if uc.Status != model.ChallengeInProgress || uc.Current != 0 || uc.Target != 3 {
		t.Errorf("got status %s current %d target %d, want in_progress 0 3", uc.Status, uc.Current, uc.Target)
	}

	again, err := svc.DailyChallenge(user.ID)
	if err != nil {
		t.Fatalf("second daily: %v", err)
	}
	if again.ID != uc.ID {
		t.Errorf("second call created a new take: %d vs %d", again.ID, uc.ID)
	}
}

func TestUpdateProgressPlayGames(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "player")
	seedChallenge(t, svc, &model.Challenge{
		Type:        model.ChallengePlayGames,
		TargetCount: 2,
		RewardXP:    50,
	})

	update := SessionUpdate{Category: model.CategoryLanguage, XPEarned: 30, Score: 5, MaxScore: 10}
	uc, err := svc.UpdateProgress(user.ID, update)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	if uc.Current != 1 || uc.Percentage != 50 || uc.Status != model.ChallengeInProgress {
		t.Errorf("after one game: current %d pct %d status %s", uc.Current, uc.Percentage, uc.Status)
	}

	uc, err = svc.UpdateProgress(user.ID, update)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if uc.Status != model.ChallengeCompleted || uc.Percentage != 100 || uc.CompletedAt == nil {
		t.Errorf("after hitting target: status %s pct %d completedAt %v", uc.Status, uc.Percentage, uc.CompletedAt)
	}

	// Completion pays the reward onto the XP total.
	progress, _ := svc.XPService.ProgressRepo.FindByUser(user.ID)
	if progress.TotalXP != 50 {
		t.Errorf("TotalXP = %d, want 50 from the challenge reward", progress.TotalXP)
	}

	// Further sessions leave a completed challenge alone.
	uc, err = svc.UpdateProgress(user.ID, update)
	if err != nil {
		t.Fatalf("post-completion session: %v", err)
	}
	if uc.Current != 2 {
		t.Errorf("completed challenge kept counting: current %d", uc.Current)
	}
}

func TestUpdateProgressEarnXP(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "earner")
	seedChallenge(t, svc, &model.Challenge{
		Type:     model.ChallengeEarnXP,
		TargetXP: 100,
		RewardXP: 40,
	})

	uc, err := svc.UpdateProgress(user.ID, SessionUpdate{XPEarned: 60})
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	if uc.Current != 60 || uc.Percentage != 60 {
		t.Errorf("current %d pct %d, want 60/60", uc.Current, uc.Percentage)
	}

	uc, err = svc.UpdateProgress(user.ID, SessionUpdate{XPEarned: 70})
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	if uc.Status != model.ChallengeCompleted {
		t.Errorf("status = %s, want completed at 130/100", uc.Status)
	}
}

func TestUpdateProgressCategoryFiltered(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "linguist")
	seedChallenge(t, svc, &model.Challenge{
		Type:        model.ChallengeCompleteCategory,
		TargetCount: 2,
		Category:    model.CategoryLanguage,
		RewardXP:    45,
	})

	uc, err := svc.UpdateProgress(user.ID, SessionUpdate{Category: model.CategoryCulture})
	if err != nil {
		t.Fatalf("culture session: %v", err)
	}
	if uc.Current != 0 {
		t.Errorf("off-category session counted: current %d", uc.Current)
	}

	uc, err = svc.UpdateProgress(user.ID, SessionUpdate{Category: model.CategoryLanguage})
	if err != nil {
		t.Fatalf("language session: %v", err)
	}
	if uc.Current != 1 {
		t.Errorf("on-category session not counted: current %d", uc.Current)
	}
}

func TestUpdateProgressPerfectScore(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "perfect")
	seedChallenge(t, svc, &model.Challenge{
		Type:        model.ChallengePerfectScore,
		TargetCount: 1,
		MinScore:    100,
		RewardXP:    60,
		BonusBadge:  "Perfect Day",
	})

	uc, err := svc.UpdateProgress(user.ID, SessionUpdate{Score: 7, MaxScore: 10})
	if err != nil {
		t.Fatalf("imperfect session: %v", err)
	}
	if uc.Current != 0 {
		t.Errorf("imperfect score counted: current %d", uc.Current)
	}

	uc, err = svc.UpdateProgress(user.ID, SessionUpdate{Score: 10, MaxScore: 10})
	if err != nil {
		t.Fatalf("perfect session: %v", err)
	}
	if uc.Status != model.ChallengeCompleted {
		t.Errorf("status = %s, want completed", uc.Status)
	}
	if uc.BonusBadge != "Perfect Day" {
		t.Errorf("bonus badge = %q, want Perfect Day", uc.BonusBadge)
	}
}

func TestCompleteGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "completer")
	challenge := seedChallenge(t, svc, &model.Challenge{
		Type:        model.ChallengePlayGames,
		TargetCount: 2,
		RewardXP:    50,
	})

	if _, err := svc.Complete(user.ID, 999); err != util.ErrChallengeNotFound {
		t.Errorf("unknown challenge err = %v, want ErrChallengeNotFound", err)
	}

	uc, err := svc.DailyChallenge(user.ID)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}

	if _, err := svc.Complete(user.ID, challenge.ID); err != util.ErrChallengeNotFulfilled {
		t.Errorf("unfulfilled err = %v, want ErrChallengeNotFulfilled", err)
	}

	uc.Current = 2
	if err := svc.ChallengeRepo.SaveUserChallenge(uc); err != nil {
		t.Fatalf("save take: %v", err)
	}
	done, err := svc.Complete(user.ID, challenge.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.ChallengeCompleted {
		t.Errorf("status = %s, want completed", done.Status)
	}

	// Idempotent: completing again neither errors nor double-pays.
	if _, err := svc.Complete(user.ID, challenge.ID); err != nil {
		t.Errorf("re-complete err = %v, want nil", err)
	}
	progress, _ := svc.XPService.ProgressRepo.FindByUser(user.ID)
	if progress.TotalXP != 50 {
		t.Errorf("TotalXP = %d, want 50 paid exactly once", progress.TotalXP)
	}

	uc, _ = svc.ChallengeRepo.FindUserChallenge(user.ID, challenge.ID)
	uc.Status = model.ChallengeExpired
	svc.ChallengeRepo.SaveUserChallenge(uc)
	if _, err := svc.Complete(user.ID, challenge.ID); err != util.ErrChallengeNotActive {
		t.Errorf("expired err = %v, want ErrChallengeNotActive", err)
	}
}

func TestExpireStale(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "latecomer")

	yesterday := &model.Challenge{
		Date:        startOfDay(time.Now()).AddDate(0, 0, -1),
		Title:       "Yesterday",
		Type:        model.ChallengePlayGames,
		TargetCount: 3,
		RewardXP:    50,
	}
	if err := svc.ChallengeRepo.Create(yesterday); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}
	stale := &model.UserChallenge{
		UserID:      user.ID,
		ChallengeID: yesterday.ID,
		Status:      model.ChallengeInProgress,
		Current:     1,
		Target:      3,
	}
	if err := svc.ChallengeRepo.CreateUserChallenge(stale); err != nil {
		t.Fatalf("seed take: %v", err)
	}

	n, err := svc.ExpireStale()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("expired %d takes, want 1", n)
	}
	uc, _ := svc.ChallengeRepo.FindUserChallenge(user.ID, yesterday.ID)
	if uc.Status != model.ChallengeExpired {
		t.Errorf("status = %s, want expired", uc.Status)
	}
}

func TestChallengeStats(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChallengeService(db)
	user := createTestUser(t, db, "statistician")

	// Completed challenges today and yesterday, with one bonus badge.
	for i, badge := range []string{"", "Perfect Day"} {
		challenge := &model.Challenge{
			Date:        startOfDay(time.Now()).AddDate(0, 0, -i),
			Title:       "Past",
			Type:        model.ChallengePlayGames,
			TargetCount: 1,
			RewardXP:    50,
		}
		if err := svc.ChallengeRepo.Create(challenge); err != nil {
			t.Fatalf("seed challenge: %v", err)
		}
		now := time.Now()
		uc := &model.UserChallenge{
			UserID:      user.ID,
			ChallengeID: challenge.ID,
			Status:      model.ChallengeCompleted,
			Current:     1,
			Target:      1,
			Percentage:  100,
			CompletedAt: &now,
			BonusBadge:  badge,
		}
		if err := svc.ChallengeRepo.CreateUserChallenge(uc); err != nil {
			t.Fatalf("seed take: %v", err)
		}
	}

	stats, err := svc.Stats(user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Completed != 2 {
		t.Errorf("completed = %d, want 2", stats.Completed)
	}
	if stats.TotalXPEarned != 100 {
		t.Errorf("totalXPEarned = %d, want 100", stats.TotalXPEarned)
	}
	if stats.BonusBadges != 1 {
		t.Errorf("bonusBadges = %d, want 1", stats.BonusBadges)
	}
	if stats.CompletionStreak != 2 {
		t.Errorf("completionStreak = %d, want 2", stats.CompletionStreak)
	}
}
