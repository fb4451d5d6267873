package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// GameQuestion is one multiple-choice question inside a game. Questions are
// stored as a JSON column on the game row; they are only ever read as a whole.
type GameQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type QuestionList []GameQuestion

func (q QuestionList) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("questions column is not bytes")
		}
	}
	return json.Unmarshal(bytes, q)
}

// swagger:model Game
type Game struct {
	BaseModel
	Title        string       `gorm:"size:200;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Category     GameCategory `gorm:"size:20;not null;index" json:"category"`
	Difficulty   int          `gorm:"not null" json:"difficulty"`
	XPReward     int          `gorm:"not null" json:"xpReward"`
	Thumbnail    string       `gorm:"size:255" json:"thumbnail"`
	EstimatedMin int          `gorm:"default:5" json:"estimatedMinutes"`
	Questions    QuestionList `gorm:"type:json" json:"questions"`
	IsActive     bool         `gorm:"default:true;index" json:"isActive"`
}

func (Game) TableName() string {
	return "games"
}
