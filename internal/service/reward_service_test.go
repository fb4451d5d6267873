package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestRewardService(db *gorm.DB) *RewardService {
	return NewRewardService(repository.NewRewardRepository(db), newTestXPService(db), db)
}

func createTestReward(t *testing.T, db *gorm.DB, cost, quantity int) *model.Reward {
	t.Helper()
	reward := &model.Reward{
		Title:             "Bus Pass",
		Partner:           "City Transit",
		XPCost:            cost,
		AvailableQuantity: quantity,
		IsActive:          true,
	}
	if err := db.Create(reward).Error; err != nil {
		t.Fatalf("create reward: %v", err)
	}
	return reward
}

func TestRedeem(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "redeemer")
	reward := createTestReward(t, db, 200, 2)

	if _, err := svc.XP.AwardXP(user.ID, 500, ""); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	result, err := svc.Redeem(user.ID, reward.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if result.RemainingXP != 300 {
		t.Errorf("remaining XP = %d, want 300", result.RemainingXP)
	}

	code := result.UserReward.RedemptionCode
	if len(code) != 16 {
		t.Errorf("code length = %d, want 16", len(code))
	}
	if code != strings.ToUpper(code) {
		t.Errorf("code %q is not uppercase", code)
	}
	if !strings.HasPrefix(result.QRCode, "data:image/png;base64,") {
		t.Errorf("qr code is not a PNG data URL: %.40s", result.QRCode)
	}
	if result.UserReward.Status != model.UserRewardActive {
		t.Errorf("status = %s, want active", result.UserReward.Status)
	}

	until := time.Until(result.UserReward.ExpiresAt)
	if until <= 29*24*time.Hour || until > 30*24*time.Hour {
		t.Errorf("expiry %v away, want about 30 days", until)
	}

	stored, err := svc.RewardRepo.FindByID(reward.ID)
	if err != nil {
		t.Fatalf("reload reward: %v", err)
	}
	if stored.AvailableQuantity != 1 {
		t.Errorf("quantity = %d, want 1", stored.AvailableQuantity)
	}
}

func TestRedeemInsufficientXP(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "broke")
	reward := createTestReward(t, db, 1000, 5)

	if _, err := svc.XP.AwardXP(user.ID, 100, ""); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	_, err := svc.Redeem(user.ID, reward.ID)
	if err != util.ErrInsufficientXP {
		t.Fatalf("err = %v, want ErrInsufficientXP", err)
	}

	// Nothing may change on a failed redemption.
	progress, _ := svc.XP.ProgressRepo.FindByUser(user.ID)
	if progress.TotalXP != 100 {
		t.Errorf("TotalXP = %d, want 100", progress.TotalXP)
	}
	stored, _ := svc.RewardRepo.FindByID(reward.ID)
	if stored.AvailableQuantity != 5 {
		t.Errorf("quantity = %d, want 5", stored.AvailableQuantity)
	}
	redemptions, _ := svc.RewardRepo.ListUserRewards(user.ID, "")
	if len(redemptions) != 0 {
		t.Errorf("got %d redemption rows, want 0", len(redemptions))
	}
}

func TestRedeemPreconditionOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "checker")
	if _, err := svc.XP.AwardXP(user.ID, 50, ""); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name    string
		mutate  func(r *model.Reward)
		wantErr error
	}{
		{"inactive", func(r *model.Reward) { r.IsActive = false }, util.ErrRewardNotAvailable},
		{"out_of_stock", func(r *model.Reward) { r.AvailableQuantity = 0 }, util.ErrRewardNotAvailable},
		{"expired", func(r *model.Reward) { r.ExpiryDate = &past }, util.ErrRewardExpired},
		// Availability is checked before expiry and both before balance.
		{"inactive_and_expired", func(r *model.Reward) {
			r.IsActive = false
			r.ExpiryDate = &past
		}, util.ErrRewardNotAvailable},
		{"expired_and_unaffordable", func(r *model.Reward) {
			r.XPCost = 9999
			r.ExpiryDate = &past
		}, util.ErrRewardExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reward := createTestReward(t, db, 200, 3)
			tt.mutate(reward)
			if err := db.Save(reward).Error; err != nil {
				t.Fatalf("save reward: %v", err)
			}
			if _, err := svc.Redeem(user.ID, reward.ID); err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedeemMissingReward(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "lost")

	if _, err := svc.Redeem(user.ID, 4242); err != util.ErrRewardNotFound {
		t.Fatalf("err = %v, want ErrRewardNotFound", err)
	}
}

func TestRedeemClampsExpiryToCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "clamped")
	reward := createTestReward(t, db, 100, 1)

	soon := time.Now().Add(5 * 24 * time.Hour)
	reward.ExpiryDate = &soon
	if err := db.Save(reward).Error; err != nil {
		t.Fatalf("save reward: %v", err)
	}
	if _, err := svc.XP.AwardXP(user.ID, 100, ""); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	result, err := svc.Redeem(user.ID, reward.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if until := time.Until(result.UserReward.ExpiresAt); until > 5*24*time.Hour+time.Minute {
		t.Errorf("expiry %v away, want clamped to the catalog's 5 days", until)
	}
}

func TestRedeemLastUnit(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	first := createTestUser(t, db, "fast")
	second := createTestUser(t, db, "slow")
	reward := createTestReward(t, db, 10, 1)

	svc.XP.AwardXP(first.ID, 100, "")
	svc.XP.AwardXP(second.ID, 100, "")

	if _, err := svc.Redeem(first.ID, reward.ID); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if _, err := svc.Redeem(second.ID, reward.ID); err != util.ErrRewardNotAvailable {
		t.Fatalf("second redeem err = %v, want ErrRewardNotAvailable", err)
	}
}

func TestMarkUsed(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")
	reward := createTestReward(t, db, 50, 3)

	svc.XP.AwardXP(owner.ID, 100, "")
	result, err := svc.Redeem(owner.ID, reward.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	id := result.UserReward.ID

	if _, err := svc.MarkUsed(stranger.ID, id); err != util.ErrUserRewardNotFound {
		t.Errorf("stranger err = %v, want ErrUserRewardNotFound", err)
	}

	used, err := svc.MarkUsed(owner.ID, id)
	if err != nil {
		t.Fatalf("mark used: %v", err)
	}
	if used.Status != model.UserRewardUsed || used.UsedAt == nil {
		t.Errorf("status %s usedAt %v, want used with timestamp", used.Status, used.UsedAt)
	}

	if _, err := svc.MarkUsed(owner.ID, id); err != util.ErrRewardNotActive {
		t.Errorf("second use err = %v, want ErrRewardNotActive", err)
	}
}

func TestMyRewardsQRCodeOnlyWhenActive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "viewer")
	reward := createTestReward(t, db, 20, 5)

	svc.XP.AwardXP(user.ID, 100, "")
	first, _ := svc.Redeem(user.ID, reward.ID)
	second, _ := svc.Redeem(user.ID, reward.ID)
	if _, err := svc.MarkUsed(user.ID, second.UserReward.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	views, err := svc.MyRewards(user.ID, "")
	if err != nil {
		t.Fatalf("my rewards: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	for _, view := range views {
		switch view.ID {
		case first.UserReward.ID:
			if view.QRCode == "" {
				t.Error("active redemption missing QR code")
			}
		case second.UserReward.ID:
			if view.QRCode != "" {
				t.Error("used redemption still carries a QR code")
			}
		}
	}
}

func TestExpireOld(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRewardService(db)
	user := createTestUser(t, db, "expirer")
	reward := createTestReward(t, db, 10, 5)

	svc.XP.AwardXP(user.ID, 100, "")
	result, err := svc.Redeem(user.ID, reward.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}

	// Backdate the expiry, then sweep.
	if err := db.Model(&model.UserReward{}).Where("id = ?", result.UserReward.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	n, err := svc.ExpireOld()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("expired %d rows, want 1", n)
	}

	ur, _ := svc.RewardRepo.FindUserRewardByID(result.UserReward.ID)
	if ur.Status != model.UserRewardExpired {
		t.Errorf("status = %s, want expired", ur.Status)
	}
}
