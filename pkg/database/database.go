package database

import (
	"edugame_backend/internal/config"
	"edugame_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs AutoMigrate for every aggregate. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.Game{},
		&model.GameSession{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Challenge{},
		&model.UserChallenge{},
		&model.Reward{},
		&model.UserReward{},
		&model.Resource{},
	)
}

// Seed installs the default catalogs on an empty database.
func Seed(db *gorm.DB) {
	seedBadges(db)
	seedGames(db)
	seedRewards(db)
}

// seedBadges installs the default badge catalog on an empty database.
func seedBadges(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	badges := []model.Badge{
		{Name: "First Steps", Description: "Earn your first 50 XP", Icon: "footsteps", XPRequired: 50, Level: 1, IsActive: true},
		{Name: "Quick Learner", Description: "Reach 200 XP", Icon: "bolt", XPRequired: 200, Level: 2, IsActive: true},
		{Name: "Dedicated Student", Description: "Reach 500 XP", Icon: "book", XPRequired: 500, Level: 3, IsActive: true},
		{Name: "Knowledge Seeker", Description: "Reach 1000 XP", Icon: "compass", XPRequired: 1000, Level: 4, IsActive: true},
		{Name: "Master Scholar", Description: "Reach 2500 XP", Icon: "crown", XPRequired: 2500, Level: 5, IsActive: true},
		{Name: "Wordsmith", Description: "Reach 300 XP through language games", Icon: "pen", Category: model.CategoryLanguage, XPRequired: 300, Level: 2, IsActive: true},
		{Name: "Culture Connoisseur", Description: "Reach 300 XP through culture games", Icon: "globe", Category: model.CategoryCulture, XPRequired: 300, Level: 2, IsActive: true},
		{Name: "People Person", Description: "Reach 300 XP through soft skills games", Icon: "handshake", Category: model.CategorySoftSkills, XPRequired: 300, Level: 2, IsActive: true},
	}
	for i := range badges {
		db.Create(&badges[i])
	}
}

// seedGames installs a small starter catalog so a fresh instance is playable.
func seedGames(db *gorm.DB) {
	var count int64
	db.Model(&model.Game{}).Count(&count)
	if count > 0 {
		return
	}

	games := []model.Game{
		{
			Title:       "Everyday Greetings",
			Description: "Learn common greetings and when to use them",
			Category:    model.CategoryLanguage,
			Difficulty:  1,
			XPReward:    50,
			Questions: model.QuestionList{
				{Question: "Which greeting fits a job interview?", Options: []string{"Hey!", "Good morning", "Yo"}, CorrectAnswer: 1},
				{Question: "What do you say when leaving?", Options: []string{"Hello", "Goodbye", "Please"}, CorrectAnswer: 1},
			},
			IsActive: true,
		},
		{
			Title:       "Local Customs Quiz",
			Description: "Test your knowledge of local traditions",
			Category:    model.CategoryCulture,
			Difficulty:  2,
			XPReward:    60,
			Questions: model.QuestionList{
				{Question: "What is a common gift when visiting someone's home?", Options: []string{"Nothing", "Flowers", "Money"}, CorrectAnswer: 1},
				{Question: "When is it polite to arrive at a dinner party?", Options: []string{"An hour early", "On time", "Whenever"}, CorrectAnswer: 1},
			},
			IsActive: true,
		},
		{
			Title:       "Workplace Communication",
			Description: "Practice professional communication skills",
			Category:    model.CategorySoftSkills,
			Difficulty:  2,
			XPReward:    60,
			Questions: model.QuestionList{
				{Question: "A colleague disagrees with you in a meeting. You should:", Options: []string{"Interrupt them", "Listen, then respond calmly", "Stay silent forever"}, CorrectAnswer: 1},
				{Question: "What is the best way to ask for help?", Options: []string{"Demand it", "Ask politely and be specific", "Never ask"}, CorrectAnswer: 1},
			},
			IsActive: true,
		},
	}
	for i := range games {
		db.Create(&games[i])
	}
}

// seedRewards installs sample partner rewards.
func seedRewards(db *gorm.DB) {
	var count int64
	db.Model(&model.Reward{}).Count(&count)
	if count > 0 {
		return
	}

	rewards := []model.Reward{
		{Title: "Coffee Voucher", Description: "A free coffee at a partner café", Category: "food", Partner: "Corner Café", XPCost: 200, AvailableQuantity: 100, IsActive: true},
		{Title: "Library Day Pass", Description: "One-day pass to the partner library coworking space", Category: "education", Partner: "City Library", XPCost: 350, AvailableQuantity: 50, IsActive: true},
		{Title: "Transit Ticket", Description: "Single-ride public transit ticket", Category: "transport", Partner: "Metro", XPCost: 150, AvailableQuantity: 200, IsActive: true},
	}
	for i := range rewards {
		db.Create(&rewards[i])
	}
}
