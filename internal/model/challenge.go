package model

import (
	"time"
)

type ChallengeType string

const (
	ChallengePlayGames        ChallengeType = "play_games"
	ChallengeEarnXP           ChallengeType = "earn_xp"
	ChallengeCompleteCategory ChallengeType = "complete_category"
	ChallengePerfectScore     ChallengeType = "perfect_score"
	ChallengeSkillFocus       ChallengeType = "skill_focus"
)

// Challenge is the shared daily challenge. Exactly one row exists per
// calendar date; Date stores local midnight.
// swagger:model Challenge
type Challenge struct {
	BaseModel
	Date        time.Time     `gorm:"not null;uniqueIndex" json:"date"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"size:255" json:"description"`
	Type        ChallengeType `gorm:"size:30;not null" json:"type"`
	TargetCount int           `gorm:"default:0" json:"targetCount"`
	TargetXP    int           `gorm:"default:0" json:"targetXP"`
	Category    GameCategory  `gorm:"size:20" json:"category,omitempty"`
	MinScore    int           `gorm:"default:0" json:"minScore"`
	RewardXP    int           `gorm:"not null" json:"rewardXP"`
	BonusBadge  string        `gorm:"size:100" json:"bonusBadge,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// Target returns the progress target for the challenge type.
func (c *Challenge) Target() int {
	if c.Type == ChallengeEarnXP {
		return c.TargetXP
	}
	if c.TargetCount > 0 {
		return c.TargetCount
	}
	return 1
}

type ChallengeStatus string

const (
	ChallengeInProgress ChallengeStatus = "in_progress"
	ChallengeCompleted  ChallengeStatus = "completed"
	ChallengeExpired    ChallengeStatus = "expired"
)

// UserChallenge is one user's take on a daily challenge.
// swagger:model UserChallenge
type UserChallenge struct {
	BaseModel
	UserID      uint            `gorm:"not null;uniqueIndex:idx_user_challenge" json:"userId"`
	ChallengeID uint            `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challengeId"`
	Challenge   *Challenge      `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	Status      ChallengeStatus `gorm:"size:20;default:'in_progress';index" json:"status"`
	Current     int             `gorm:"default:0" json:"current"`
	Target      int             `gorm:"not null" json:"target"`
	Percentage  int             `gorm:"default:0" json:"percentage"`
	CompletedAt *time.Time      `json:"completedAt"`
	BonusBadge  string          `gorm:"size:100" json:"bonusBadge,omitempty"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
