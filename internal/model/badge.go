package model

import (
	"time"
)

// Badge is a catalog entry. xpRequired drives automatic progress evaluation;
// level 1..5 orders badges within a category for display.
// swagger:model Badge
type Badge struct {
	BaseModel
	Name        string       `gorm:"size:100;not null;unique" json:"name"`
	Description string       `gorm:"size:255" json:"description"`
	Icon        string       `gorm:"size:255" json:"icon"`
	Category    GameCategory `gorm:"size:20;index" json:"category"`
	XPRequired  int          `gorm:"not null" json:"xpRequired"`
	Level       int          `gorm:"default:1" json:"level"`
	IsActive    bool         `gorm:"default:true" json:"isActive"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge tracks one user's progress towards one badge. Progress is a
// 0..100 percentage; EarnedAt is set exactly once when progress reaches 100
// and is never unset afterwards.
// swagger:model UserBadge
type UserBadge struct {
	BaseModel
	UserID   uint       `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID  uint       `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	Badge    *Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	Progress int        `gorm:"default:0" json:"progress"`
	EarnedAt *time.Time `json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

func (ub *UserBadge) Earned() bool {
	return ub.EarnedAt != nil
}
