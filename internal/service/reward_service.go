package service

import (
	"crypto/sha256"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// redemptionWindow caps how long a redeemed reward stays usable, regardless
// of the catalog entry's own expiry.
const redemptionWindow = 30 * 24 * time.Hour

type RewardService struct {
	RewardRepo *repository.RewardRepository
	XP         *XPService
	DB         *gorm.DB
}

func NewRewardService(rewardRepo *repository.RewardRepository, xp *XPService, db *gorm.DB) *RewardService {
	return &RewardService{RewardRepo: rewardRepo, XP: xp, DB: db}
}

func (s *RewardService) ListAvailable(category string) ([]model.Reward, error) {
	return s.RewardRepo.ListAvailable(category)
}

func (s *RewardService) ListAll() ([]model.Reward, error) {
	return s.RewardRepo.ListAll()
}

// RewardRequest is the admin create/update payload.
type RewardRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Partner           string     `json:"partner"`
	XPCost            int        `json:"xpCost" binding:"required,min=1"`
	AvailableQuantity int        `json:"availableQuantity" binding:"min=0"`
	ImageURL          string     `json:"imageUrl"`
	ExpiryDate        *time.Time `json:"expiryDate"`
}

func (s *RewardService) CreateReward(req *RewardRequest) (*model.Reward, error) {
	reward := &model.Reward{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Partner:           req.Partner,
		XPCost:            req.XPCost,
		AvailableQuantity: req.AvailableQuantity,
		ImageURL:          req.ImageURL,
		ExpiryDate:        req.ExpiryDate,
		IsActive:          true,
	}
	if err := s.RewardRepo.Create(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) UpdateReward(id uint, req *RewardRequest) (*model.Reward, error) {
	reward, err := s.RewardRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}

	reward.Title = req.Title
	reward.Description = req.Description
	reward.Category = req.Category
	reward.Partner = req.Partner
	reward.XPCost = req.XPCost
	reward.AvailableQuantity = req.AvailableQuantity
	reward.ImageURL = req.ImageURL
	reward.ExpiryDate = req.ExpiryDate
	if err := s.RewardRepo.Update(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) DeleteReward(id uint) error {
	if _, err := s.RewardRepo.FindByID(id); err == gorm.ErrRecordNotFound {
		return util.ErrRewardNotFound
	} else if err != nil {
		return err
	}
	return s.RewardRepo.Deactivate(id)
}

// RedemptionResult is what a successful redemption returns. QRCode is a
// base64 PNG data URL derived from the redemption code; the code is the
// persisted identity, the image is rendered on demand.
type RedemptionResult struct {
	UserReward  *model.UserReward `json:"userReward"`
	QRCode      string            `json:"qrCode"`
	RemainingXP int               `json:"remainingXP"`
}

// Redeem exchanges XP for a reward. Preconditions are checked in a fixed
// order (availability, expiry, balance) so clients get stable error
// reporting; the XP deduction, stock decrement and redemption record then
// commit atomically.
func (s *RewardService) Redeem(userID, rewardID uint) (*RedemptionResult, error) {
	reward, err := s.RewardRepo.FindByID(rewardID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !reward.IsActive || reward.AvailableQuantity <= 0 {
		return nil, util.ErrRewardNotAvailable
	}
	if reward.ExpiryDate != nil && reward.ExpiryDate.Before(now) {
		return nil, util.ErrRewardExpired
	}

	expiresAt := now.Add(redemptionWindow)
	if reward.ExpiryDate != nil && reward.ExpiryDate.Before(expiresAt) {
		expiresAt = *reward.ExpiryDate
	}

	userReward := &model.UserReward{
		UserID:         userID,
		RewardID:       reward.ID,
		RedemptionCode: generateRedemptionCode(userID, reward.ID),
		Status:         model.UserRewardActive,
		RedeemedAt:     now,
		ExpiresAt:      expiresAt,
	}

	var remaining int
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.XP.SpendXP(tx, userID, reward.XPCost)
		if err != nil {
			return err
		}
		remaining = progress.TotalXP

		taken, err := s.RewardRepo.DecrementQuantity(tx, reward.ID)
		if err != nil {
			return err
		}
		if !taken {
			// Someone else got the last unit between the check and here.
			return util.ErrRewardNotAvailable
		}

		return s.RewardRepo.CreateUserReward(tx, userReward)
	})
	if err != nil {
		return nil, err
	}

	userReward.Reward = reward
	qr, err := renderQRCode(userReward.RedemptionCode)
	if err != nil {
		return nil, err
	}
	return &RedemptionResult{
		UserReward:  userReward,
		QRCode:      qr,
		RemainingXP: remaining,
	}, nil
}

// generateRedemptionCode derives a 16-character uppercase code from the
// redemption identity plus fresh entropy.
func generateRedemptionCode(userID, rewardID uint) string {
	seed := fmt.Sprintf("%d-%d-%d-%s", userID, rewardID, time.Now().UnixNano(), uuid.NewString())
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:16]
}

func renderQRCode(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// MyRewards lists a user's redemptions, optionally filtered by status, each
// paired with its QR data URL.
type UserRewardView struct {
	model.UserReward
	QRCode string `json:"qrCode"`
}

func (s *RewardService) MyRewards(userID uint, status model.UserRewardStatus) ([]UserRewardView, error) {
	rewards, err := s.RewardRepo.ListUserRewards(userID, status)
	if err != nil {
		return nil, err
	}

	views := make([]UserRewardView, 0, len(rewards))
	for _, ur := range rewards {
		view := UserRewardView{UserReward: ur}
		if ur.Status == model.UserRewardActive {
			if qr, err := renderQRCode(ur.RedemptionCode); err == nil {
				view.QRCode = qr
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// MarkUsed transitions an active redemption to used. Owner-scoped; any other
// state is rejected.
func (s *RewardService) MarkUsed(userID, userRewardID uint) (*model.UserReward, error) {
	ur, err := s.RewardRepo.FindUserRewardByID(userRewardID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserRewardNotFound
	}
	if err != nil {
		return nil, err
	}
	if ur.UserID != userID {
		return nil, util.ErrUserRewardNotFound
	}
	if ur.Status != model.UserRewardActive {
		return nil, util.ErrRewardNotActive
	}

	now := time.Now()
	ur.Status = model.UserRewardUsed
	ur.UsedAt = &now
	if err := s.RewardRepo.SaveUserReward(ur); err != nil {
		return nil, err
	}
	return ur, nil
}

// ExpireOld sweeps active redemptions past their expiry. Runs from the
// maintenance schedule.
func (s *RewardService) ExpireOld() (int64, error) {
	return s.RewardRepo.ExpireOld(time.Now())
}
