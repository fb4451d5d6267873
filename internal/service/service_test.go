package service

import (
	"edugame_backend/internal/model"
	"edugame_backend/pkg/database"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh named in-memory sqlite database per test. The
// shared cache keeps the schema visible across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@test.local",
		Password: "irrelevant",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestGame(t *testing.T, db *gorm.DB, title string, category model.GameCategory, xpReward int) *model.Game {
	t.Helper()
	game := &model.Game{
		Title:      title,
		Category:   category,
		Difficulty: 2,
		XPReward:   xpReward,
		Questions: model.QuestionList{
			{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
		},
		IsActive: true,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("create game %s: %v", title, err)
	}
	return game
}
