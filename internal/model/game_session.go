package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SessionAnswer is the player's answer to one question, as reported by the
// client when the session is submitted.
type SessionAnswer struct {
	QuestionIndex int  `json:"questionIndex"`
	SelectedIndex int  `json:"selectedIndex"`
	Correct       bool `json:"correct"`
	TimeSpentSec  int  `json:"timeSpentSec,omitempty"`
}

type AnswerList []SessionAnswer

func (a AnswerList) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AnswerList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("answers column is not bytes")
		}
	}
	return json.Unmarshal(bytes, a)
}

// SessionFeedback is the feedback attached to a finished session. Source
// records which generator produced it: "ai" or "fallback".
type SessionFeedback struct {
	Message       string   `json:"message"`
	Strengths     []string `json:"strengths,omitempty"`
	Improvements  []string `json:"improvements,omitempty"`
	Encouragement string   `json:"encouragement,omitempty"`
	Source        string   `json:"source"`
}

func (f SessionFeedback) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *SessionFeedback) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("feedback column is not bytes")
		}
	}
	return json.Unmarshal(bytes, f)
}

// GameSession is an immutable record of one play-through. Rows are created
// once on submission and never updated.
// swagger:model GameSession
type GameSession struct {
	BaseModel
	UserID      uint            `gorm:"not null;index:idx_sessions_user_completed" json:"userId"`
	GameID      uint            `gorm:"not null;index" json:"gameId"`
	Game        *Game           `gorm:"foreignKey:GameID" json:"game,omitempty"`
	Score       int             `gorm:"not null" json:"score"`
	MaxScore    int             `gorm:"not null" json:"maxScore"`
	XPEarned    int             `gorm:"not null" json:"xpEarned"`
	TimeSpent   int             `gorm:"not null" json:"timeSpent"`
	Answers     AnswerList      `gorm:"type:json" json:"answers"`
	Feedback    SessionFeedback `gorm:"type:json" json:"feedback"`
	CompletedAt time.Time       `gorm:"not null;index:idx_sessions_user_completed" json:"completedAt"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}

// Accuracy returns the score as a 0..100 percentage.
func (s *GameSession) Accuracy() float64 {
	if s.MaxScore <= 0 {
		return 0
	}
	return float64(s.Score) / float64(s.MaxScore) * 100
}
