package model

import (
	"time"
)

// SkillProgress is one per-category XP bucket, embedded three times on
// UserProgress with column prefixes.
type SkillProgress struct {
	XP    int `gorm:"default:0" json:"xp"`
	Level int `gorm:"default:1" json:"level"`
}

// UserProgress holds the whole progression state for one user: total XP,
// derived levels, skill buckets, streak counters and weekly goal tracking.
// One row per user, created lazily on first use.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID           uint          `gorm:"not null;uniqueIndex" json:"userId"`
	TotalXP          int           `gorm:"default:0" json:"totalXP"`
	Level            int           `gorm:"default:1" json:"level"`
	Language         SkillProgress `gorm:"embedded;embeddedPrefix:language_" json:"language"`
	Culture          SkillProgress `gorm:"embedded;embeddedPrefix:culture_" json:"culture"`
	SoftSkills       SkillProgress `gorm:"embedded;embeddedPrefix:soft_skills_" json:"softSkills"`
	Streak           int           `gorm:"default:0" json:"streak"`
	LongestStreak    int           `gorm:"default:0" json:"longestStreak"`
	LastActivityDate *time.Time    `json:"lastActivityDate"`
	WeeklyGoal       int           `gorm:"default:5" json:"weeklyGoal"`
	WeeklyProgress   int           `gorm:"default:0" json:"weeklyProgress"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// Skill returns the bucket for a category. Callers must pass a normalized
// category; unknown categories return nil.
func (p *UserProgress) Skill(category SkillCategory) *SkillProgress {
	switch category {
	case SkillLanguage:
		return &p.Language
	case SkillCulture:
		return &p.Culture
	case SkillSoftSkills:
		return &p.SoftSkills
	default:
		return nil
	}
}
