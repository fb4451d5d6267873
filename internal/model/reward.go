package model

import (
	"time"
)

// Reward is a redeemable catalog entry. AvailableQuantity counts remaining
// stock; redemption decrements it under a guard so it never goes negative.
// swagger:model Reward
type Reward struct {
	BaseModel
	Title             string     `gorm:"size:200;not null" json:"title"`
	Description       string     `gorm:"size:255" json:"description"`
	Category          string     `gorm:"size:50;index" json:"category"`
	Partner           string     `gorm:"size:100" json:"partner"`
	XPCost            int        `gorm:"not null" json:"xpCost"`
	AvailableQuantity int        `gorm:"not null" json:"availableQuantity"`
	ImageURL          string     `gorm:"size:255" json:"imageUrl"`
	ExpiryDate        *time.Time `json:"expiryDate"`
	IsActive          bool       `gorm:"default:true;index" json:"isActive"`
}

func (Reward) TableName() string {
	return "rewards"
}

type UserRewardStatus string

const (
	UserRewardActive  UserRewardStatus = "active"
	UserRewardUsed    UserRewardStatus = "used"
	UserRewardExpired UserRewardStatus = "expired"
)

// UserReward is one redemption. RedemptionCode is the persisted identity a
// partner verifies; the QR image is derived from it on demand and never
// stored.
// swagger:model UserReward
type UserReward struct {
	BaseModel
	UserID         uint             `gorm:"not null;index" json:"userId"`
	RewardID       uint             `gorm:"not null;index" json:"rewardId"`
	Reward         *Reward          `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
	RedemptionCode string           `gorm:"size:32;not null;uniqueIndex" json:"redemptionCode"`
	Status         UserRewardStatus `gorm:"size:20;default:'active';index" json:"status"`
	RedeemedAt     time.Time        `gorm:"not null" json:"redeemedAt"`
	ExpiresAt      time.Time        `gorm:"not null" json:"expiresAt"`
	UsedAt         *time.Time       `json:"usedAt"`
}

func (UserReward) TableName() string {
	return "user_rewards"
}
