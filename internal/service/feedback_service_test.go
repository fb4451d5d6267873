package service

import (
	"context"
	"edugame_backend/internal/config"
	"edugame_backend/internal/model"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFallbackFeedbackTiers(t *testing.T) {
	svc := NewFeedbackService(&config.AIConfig{})

	tests := []struct {
		name        string
		score       int
		maxScore    int
		wantPrefix  string
		wantTipWord string
	}{
		{"excellent", 9, 10, "Excellent", "speaking"},
		{"exact_eighty", 8, 10, "Excellent", "speaking"},
		{"good", 7, 10, "Good", "speaking"},
		{"exact_sixty", 6, 10, "Good", "speaking"},
		{"needs_work", 3, 10, "Nice try", "speaking"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := svc.GenerateSessionFeedback(context.Background(), SessionResult{
				GameTitle: "Word Match",
				Category:  model.CategoryLanguage,
				Score:     tt.score,
				MaxScore:  tt.maxScore,
			})
			if feedback.Source != "fallback" {
				t.Errorf("source = %q, want fallback", feedback.Source)
			}
			if !strings.HasPrefix(feedback.Message, tt.wantPrefix) {
				t.Errorf("message %q, want prefix %q", feedback.Message, tt.wantPrefix)
			}
			if feedback.Encouragement == "" {
				t.Error("missing encouragement")
			}
			foundTip := false
			for _, improvement := range feedback.Improvements {
				if strings.Contains(improvement, tt.wantTipWord) {
					foundTip = true
				}
			}
			if !foundTip {
				t.Errorf("category tip missing from improvements: %v", feedback.Improvements)
			}
		})
	}
}

func TestFallbackFeedbackZeroMaxScore(t *testing.T) {
	svc := NewFeedbackService(&config.AIConfig{})
	feedback := svc.GenerateSessionFeedback(context.Background(), SessionResult{
		GameTitle: "Broken",
		MaxScore:  0,
		Score:     5,
	})
	if feedback.Source != "fallback" || feedback.Message == "" {
		t.Errorf("feedback = %+v, want fallback with a message", feedback)
	}
}

func TestGenerateSessionFeedbackFromAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ai/feedback" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("authorization = %q", auth)
		}
		json.NewEncoder(w).Encode(model.SessionFeedback{Message: "Custom praise"})
	}))
	defer srv.Close()

	svc := NewFeedbackService(&config.AIConfig{BaseURL: srv.URL, APIKey: "secret"})
	feedback := svc.GenerateSessionFeedback(context.Background(), SessionResult{
		GameTitle: "Word Match",
		Score:     9,
		MaxScore:  10,
	})
	if feedback.Source != "ai" {
		t.Errorf("source = %q, want ai", feedback.Source)
	}
	if feedback.Message != "Custom praise" {
		t.Errorf("message = %q", feedback.Message)
	}
}

func TestGenerateSessionFeedbackEmptyAIResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SessionFeedback{})
	}))
	defer srv.Close()

	svc := NewFeedbackService(&config.AIConfig{BaseURL: srv.URL})
	feedback := svc.GenerateSessionFeedback(context.Background(), SessionResult{
		GameTitle: "Word Match",
		Score:     9,
		MaxScore:  10,
	})
	if feedback.Source != "fallback" {
		t.Errorf("source = %q, want fallback on an empty AI message", feedback.Source)
	}
}

func TestAIRetriesThenFallsBack(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewFeedbackService(&config.AIConfig{BaseURL: srv.URL})
	feedback := svc.GenerateSessionFeedback(context.Background(), SessionResult{
		GameTitle: "Word Match",
		Score:     5,
		MaxScore:  10,
	})
	if feedback.Source != "fallback" {
		t.Errorf("source = %q, want fallback", feedback.Source)
	}
	if got := atomic.LoadInt64(&calls); got != aiMaxAttempts {
		t.Errorf("made %d attempts, want %d", got, aiMaxAttempts)
	}
}

func TestFallbackInsights(t *testing.T) {
	t.Run("empty_week", func(t *testing.T) {
		insights := fallbackInsights(WeeklySummary{})
		if insights.Source != "fallback" {
			t.Errorf("source = %q", insights.Source)
		}
		if len(insights.Suggestions) == 0 {
			t.Error("an empty week should suggest getting started")
		}
	})

	t.Run("active_week", func(t *testing.T) {
		insights := fallbackInsights(WeeklySummary{
			GamesPlayed:     12,
			TotalXP:         480,
			AverageAccuracy: 85,
			ActiveDays:      6,
			ByCategory:      map[string]int{"language": 8, "culture": 4},
		})
		if !strings.Contains(insights.Summary, "12 games") {
			t.Errorf("summary = %q", insights.Summary)
		}
		if len(insights.Highlights) < 2 {
			t.Errorf("highlights = %v, want accuracy and consistency noted", insights.Highlights)
		}
		foundSuggestion := false
		for _, s := range insights.Suggestions {
			if strings.Contains(s, "culture") {
				foundSuggestion = true
			}
		}
		if !foundSuggestion {
			t.Errorf("suggestions = %v, want the weakest category nudged", insights.Suggestions)
		}
	})
}

func TestHealth(t *testing.T) {
	svc := NewFeedbackService(&config.AIConfig{})
	if err := svc.Health(context.Background()); err == nil {
		t.Error("expected error when no AI service is configured")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ai/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc = NewFeedbackService(&config.AIConfig{BaseURL: srv.URL})
	if err := svc.Health(context.Background()); err != nil {
		t.Errorf("health = %v, want nil", err)
	}
}
