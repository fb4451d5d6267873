package service

import (
	"bytes"
	"context"
	"edugame_backend/internal/config"
	"edugame_backend/internal/model"
	"edugame_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	feedbackSourceAI       = "ai"
	feedbackSourceFallback = "fallback"

	aiMaxAttempts = 3
	aiRetryDelay  = time.Second
)

// FeedbackService talks to the AI microservice for session feedback and
// weekly insights. Every call degrades to the rule-based generator; callers
// never see an error from this service.
type FeedbackService struct {
	Cfg    *config.AIConfig
	client *http.Client
}

func NewFeedbackService(cfg *config.AIConfig) *FeedbackService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FeedbackService{
		Cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// SessionResult carries everything the generators need about one session.
type SessionResult struct {
	GameTitle string             `json:"gameTitle"`
	Category  model.GameCategory `json:"category"`
	Score     int                `json:"score"`
	MaxScore  int                `json:"maxScore"`
	TimeSpent int                `json:"timeSpent"`
	UserType  model.UserType     `json:"userType,omitempty"`
}

func (r SessionResult) percentage() int {
	if r.MaxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.MaxScore) * 100))
}

// GenerateSessionFeedback asks the microservice for feedback, falling back
// to the rule-based tiers on any failure.
func (s *FeedbackService) GenerateSessionFeedback(ctx context.Context, result SessionResult) model.SessionFeedback {
	if s.Cfg.BaseURL != "" {
		var feedback model.SessionFeedback
		err := s.post(ctx, "/api/ai/feedback", result, &feedback)
		if err == nil && feedback.Message != "" {
			feedback.Source = feedbackSourceAI
			return feedback
		}
		logger.Log.Warn("ai feedback unavailable, using fallback",
			zap.String("game", result.GameTitle), zap.Error(err))
	}
	return s.fallbackFeedback(result)
}

// fallbackFeedback is the deterministic generator: a tone tier from the
// score percentage plus a category tip. Must stay availability-independent.
func (s *FeedbackService) fallbackFeedback(result SessionResult) model.SessionFeedback {
	pct := result.percentage()

	feedback := model.SessionFeedback{Source: feedbackSourceFallback}
	switch {
	case pct >= 80:
		feedback.Message = fmt.Sprintf("Excellent work on %s! You scored %d%%.", result.GameTitle, pct)
		feedback.Strengths = []string{"Strong grasp of the material", "Consistent accuracy"}
		feedback.Encouragement = "Keep up this momentum and try a harder difficulty next."
	case pct >= 60:
		feedback.Message = fmt.Sprintf("Good job on %s! You scored %d%%.", result.GameTitle, pct)
		feedback.Strengths = []string{"Solid understanding of the basics"}
		feedback.Improvements = []string{"Review the questions you missed before replaying"}
		feedback.Encouragement = "You're getting there. A little more practice will push you over 80%."
	default:
		feedback.Message = fmt.Sprintf("Nice try on %s. You scored %d%%.", result.GameTitle, pct)
		feedback.Improvements = []string{"Replay this game to reinforce what you learned"}
		feedback.Encouragement = "Every attempt makes you stronger. Don't give up!"
	}

	if tip := categoryTip(result.Category); tip != "" {
		feedback.Improvements = append(feedback.Improvements, tip)
	}
	return feedback
}

func categoryTip(category model.GameCategory) string {
	switch category {
	case model.CategoryLanguage:
		return "Practice speaking the new words out loud to lock them in"
	case model.CategoryCulture:
		return "Connect what you learned to customs you've seen in daily life"
	case model.CategorySoftSkills:
		return "Try applying one of these skills in a real conversation this week"
	default:
		return ""
	}
}

// WeeklySummary is the aggregate the insights generator works from.
type WeeklySummary struct {
	GamesPlayed     int            `json:"gamesPlayed"`
	TotalXP         int            `json:"totalXP"`
	AverageAccuracy float64        `json:"averageAccuracy"`
	ByCategory      map[string]int `json:"byCategory"`
	ActiveDays      int            `json:"activeDays"`
}

// WeeklyInsights is what the report embeds, tagged with its generator.
type WeeklyInsights struct {
	Summary     string   `json:"summary"`
	Highlights  []string `json:"highlights,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Source      string   `json:"source"`
}

func (s *FeedbackService) GenerateWeeklyInsights(ctx context.Context, summary WeeklySummary) WeeklyInsights {
	if s.Cfg.BaseURL != "" {
		var insights WeeklyInsights
		err := s.post(ctx, "/api/ai/insights", summary, &insights)
		if err == nil && insights.Summary != "" {
			insights.Source = feedbackSourceAI
			return insights
		}
		logger.Log.Warn("ai insights unavailable, using fallback", zap.Error(err))
	}
	return fallbackInsights(summary)
}

func fallbackInsights(summary WeeklySummary) WeeklyInsights {
	insights := WeeklyInsights{Source: feedbackSourceFallback}

	if summary.GamesPlayed == 0 {
		insights.Summary = "You didn't play any games this week."
		insights.Suggestions = []string{"Start with a short game today to get back on track"}
		return insights
	}

	insights.Summary = fmt.Sprintf("You played %d games this week, earned %d XP and averaged %.0f%% accuracy.",
		summary.GamesPlayed, summary.TotalXP, summary.AverageAccuracy)

	if summary.AverageAccuracy >= 80 {
		insights.Highlights = append(insights.Highlights, "Your accuracy this week was outstanding")
	}
	if summary.ActiveDays >= 5 {
		insights.Highlights = append(insights.Highlights,
			fmt.Sprintf("You were active on %d days, great consistency", summary.ActiveDays))
	}

	best, worst := "", ""
	bestCount, worstCount := -1, math.MaxInt
	for category, count := range summary.ByCategory {
		if count > bestCount {
			best, bestCount = category, count
		}
		if count < worstCount {
			worst, worstCount = category, count
		}
	}
	if best != "" {
		insights.Highlights = append(insights.Highlights, fmt.Sprintf("Most of your practice went into %s", best))
	}
	if worst != "" && worst != best {
		insights.Suggestions = append(insights.Suggestions, fmt.Sprintf("Spend some time on %s games next week", worst))
	}
	if summary.ActiveDays < 3 {
		insights.Suggestions = append(insights.Suggestions, "Aim for at least three active days next week")
	}
	return insights
}

// Health pings the microservice. Used by the health endpoint only; a failing
// AI service never degrades gameplay.
func (s *FeedbackService) Health(ctx context.Context) error {
	if s.Cfg.BaseURL == "" {
		return fmt.Errorf("ai service not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Cfg.BaseURL+"/api/ai/health", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ai service unhealthy: %s", resp.Status)
	}
	return nil
}

// post sends one JSON request with retries: three attempts, fixed one-second
// delay between them.
func (s *FeedbackService) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= aiMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(aiRetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Cfg.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if s.Cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+s.Cfg.APIKey)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("ai service returned %s", resp.Status)
			continue
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
