package service

import (
	"context"
	"edugame_backend/internal/model"
	"edugame_backend/internal/repository"
	"edugame_backend/internal/util"
	"edugame_backend/pkg/logger"
	"edugame_backend/pkg/monitoring"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GameService struct {
	GameRepo     *repository.GameRepository
	SessionRepo  *repository.SessionRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
	XP           *XPService
	Streak       *StreakService
	Challenges   *ChallengeService
	Feedback     *FeedbackService
}

func NewGameService(
	gameRepo *repository.GameRepository,
	sessionRepo *repository.SessionRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	xp *XPService,
	streak *StreakService,
	challenges *ChallengeService,
	feedback *FeedbackService,
) *GameService {
	return &GameService{
		GameRepo:     gameRepo,
		SessionRepo:  sessionRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
		XP:           xp,
		Streak:       streak,
		Challenges:   challenges,
		Feedback:     feedback,
	}
}

func (s *GameService) ListGames(category model.GameCategory, difficulty int) ([]model.Game, error) {
	return s.GameRepo.ListActive(category, difficulty)
}

func (s *GameService) GetGame(id uint) (*model.Game, error) {
	game, err := s.GameRepo.FindActiveByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrGameNotFound
	}
	return game, err
}

// GameRequest is the admin create/update payload.
type GameRequest struct {
	Title        string             `json:"title" binding:"required"`
	Description  string             `json:"description"`
	Category     model.GameCategory `json:"category" binding:"required"`
	Difficulty   int                `json:"difficulty" binding:"required"`
	XPReward     int                `json:"xpReward" binding:"required"`
	Thumbnail    string             `json:"thumbnail"`
	EstimatedMin int                `json:"estimatedMinutes"`
	Questions    model.QuestionList `json:"questions" binding:"required"`
}

func validateGameRequest(req *GameRequest) error {
	if _, ok := model.NormalizeCategory(req.Category); !ok {
		return fmt.Errorf("unknown category %q", req.Category)
	}
	if req.Difficulty < 1 || req.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5")
	}
	if req.XPReward <= 0 {
		return fmt.Errorf("xpReward must be positive")
	}
	if len(req.Questions) == 0 {
		return fmt.Errorf("a game needs at least one question")
	}
	for i, q := range req.Questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least two options", i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d has an out-of-range correct answer", i+1)
		}
	}
	return nil
}

func (s *GameService) CreateGame(req *GameRequest) (*model.Game, error) {
	if err := validateGameRequest(req); err != nil {
		return nil, err
	}

	estimated := req.EstimatedMin
	if estimated <= 0 {
		estimated = 5
	}
	game := &model.Game{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		XPReward:     req.XPReward,
		Thumbnail:    req.Thumbnail,
		EstimatedMin: estimated,
		Questions:    req.Questions,
		IsActive:     true,
	}
	if err := s.GameRepo.Create(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) UpdateGame(id uint, req *GameRequest) (*model.Game, error) {
	if err := validateGameRequest(req); err != nil {
		return nil, err
	}

	game, err := s.GameRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	game.Title = req.Title
	game.Description = req.Description
	game.Category = req.Category
	game.Difficulty = req.Difficulty
	game.XPReward = req.XPReward
	game.Thumbnail = req.Thumbnail
	if req.EstimatedMin > 0 {
		game.EstimatedMin = req.EstimatedMin
	}
	game.Questions = req.Questions
	if err := s.GameRepo.Update(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) DeleteGame(id uint) error {
	if _, err := s.GameRepo.FindByID(id); err == gorm.ErrRecordNotFound {
		return util.ErrGameNotFound
	} else if err != nil {
		return err
	}
	return s.GameRepo.Deactivate(id)
}

func (s *GameService) ListAllGames() ([]model.Game, error) {
	return s.GameRepo.ListAll()
}

// SessionRequest is the client's session submission.
type SessionRequest struct {
	Score     int              `json:"score" binding:"min=0"`
	MaxScore  int              `json:"maxScore" binding:"required,min=1"`
	TimeSpent int              `json:"timeSpent" binding:"min=0"`
	Answers   model.AnswerList `json:"answers"`
}

// SessionResponse bundles everything a finished session produced.
type SessionResponse struct {
	Session   *model.GameSession    `json:"session"`
	XPEarned  int                   `json:"xpEarned"`
	XP        *XPAwardResult        `json:"xp"`
	Streak    *StreakResult         `json:"streak"`
	Challenge *model.UserChallenge  `json:"challenge,omitempty"`
	Feedback  model.SessionFeedback `json:"feedback"`
}

// SubmitSession records one play-through and drives every progression
// side-effect: XP with the game's category, the streak, the weekly counter,
// the daily challenge and feedback. The session row is immutable once
// written.
func (s *GameService) SubmitSession(ctx context.Context, userID, gameID uint, req *SessionRequest) (*SessionResponse, error) {
	game, err := s.GameRepo.FindActiveByID(gameID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	// Proportional reward, clamped so a client reporting score > maxScore
	// can never mint more than the game's own reward.
	xpEarned := int(math.Round(float64(game.XPReward) * float64(req.Score) / float64(req.MaxScore)))
	if xpEarned < 0 {
		xpEarned = 0
	}
	if xpEarned > game.XPReward {
		xpEarned = game.XPReward
	}

	var userType model.UserType
	if user, err := s.UserRepo.FindByID(userID); err == nil {
		userType = user.UserType
	}
	feedback := s.Feedback.GenerateSessionFeedback(ctx, SessionResult{
		GameTitle: game.Title,
		Category:  game.Category,
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		TimeSpent: req.TimeSpent,
		UserType:  userType,
	})

	session := &model.GameSession{
		UserID:      userID,
		GameID:      game.ID,
		Score:       req.Score,
		MaxScore:    req.MaxScore,
		XPEarned:    xpEarned,
		TimeSpent:   req.TimeSpent,
		Answers:     req.Answers,
		Feedback:    feedback,
		CompletedAt: time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	session.Game = game

	xpResult, err := s.XP.AwardXP(userID, xpEarned, game.Category)
	if err != nil {
		return nil, err
	}
	monitoring.SessionsSubmitted.WithLabelValues(string(game.Category)).Inc()
	monitoring.XPAwarded.Add(float64(xpEarned))

	streakResult, err := s.Streak.UpdateStreak(userID)
	if err != nil {
		return nil, err
	}

	// Weekly counter rides on the row the streak update just saved.
	if progress, err := s.ProgressRepo.FindByUser(userID); err == nil {
		progress.WeeklyProgress++
		if err := s.ProgressRepo.Save(progress); err != nil {
			logger.Log.Warn("weekly progress bump failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	// Challenge progress is best-effort: a failure here never fails the
	// submission.
	challenge, err := s.Challenges.UpdateProgress(userID, SessionUpdate{
		Category: game.Category,
		XPEarned: xpEarned,
		Score:    req.Score,
		MaxScore: req.MaxScore,
	})
	if err != nil {
		logger.Log.Warn("challenge progress update failed", zap.Uint("user_id", userID), zap.Error(err))
		challenge = nil
	}

	return &SessionResponse{
		Session:   session,
		XPEarned:  xpEarned,
		XP:        xpResult,
		Streak:    streakResult,
		Challenge: challenge,
		Feedback:  feedback,
	}, nil
}

func (s *GameService) GetSession(id, userID uint) (*model.GameSession, error) {
	session, err := s.SessionRepo.FindByIDAndUser(id, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	return session, err
}

func (s *GameService) ListSessions(userID uint, filter repository.SessionFilter) ([]model.GameSession, error) {
	return s.SessionRepo.ListByUser(userID, filter)
}
