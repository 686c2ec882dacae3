package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/speakit/backend/internal/model/topic"
	coachservice "github.com/zhouzirui/speakit/backend/internal/service/coach"
)

type generatorFunc func(ctx context.Context, system, prompt string, opts coachservice.GenerateOptions) (string, error)

func (f generatorFunc) Generate(ctx context.Context, system, prompt string, opts coachservice.GenerateOptions) (string, error) {
	return f(ctx, system, prompt, opts)
}

func newTestRouter(gen coachservice.Generator) http.Handler {
	r := chi.NewRouter()
	New(coachservice.NewService(gen, topic.Seed())).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload err: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleFeedbackSuccess(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, coachservice.GenerateOptions) (string, error) {
		return `{"overallScore": 78, "strengths": ["s"], "improvements": ["i"], "suggestions": ["do more reps"]}`, nil
	})
	router := newTestRouter(gen)

	rec := postJSON(t, router, "/ai/feedback", map[string]string{
		"transcript":   "Today I want to talk about...",
		"analysisData": "overall 78",
		"context":      "presentation practice",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Feedback coachservice.Feedback `json:"feedback"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response err: %v", err)
	}
	if resp.Feedback.OverallScore != 78 || len(resp.Feedback.Suggestions) != 1 {
		t.Fatalf("unexpected feedback: %+v", resp.Feedback)
	}
}

func TestHandleFeedbackMissingTranscript(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/ai/feedback", map[string]string{"transcript": ""})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_input") {
		t.Fatalf("expected invalid_input kind, got %s", rec.Body.String())
	}
}

func TestHandleFeedbackGenerationFailure(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, coachservice.GenerateOptions) (string, error) {
		return "", errors.New("model offline")
	})
	router := newTestRouter(gen)

	rec := postJSON(t, router, "/ai/feedback", map[string]string{"transcript": "some speech"})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "generation_error") {
		t.Fatalf("expected generation_error kind, got %s", rec.Body.String())
	}
}

func TestHandleDebateAlwaysSucceeds(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, coachservice.GenerateOptions) (string, error) {
		return "", errors.New("model offline")
	})
	router := newTestRouter(gen)

	rec := postJSON(t, router, "/ai/debate", map[string]any{
		"topic":        "Remote work",
		"userArgument": "It boosts productivity.",
		"position":     "con",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("debate endpoint must not fail on generation errors, got %d", rec.Code)
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response err: %v", err)
	}
	if resp.Response == "" {
		t.Fatal("expected non-empty fallback rebuttal")
	}
}

func TestHandleTopicsFallbackOnFailure(t *testing.T) {
	gen := generatorFunc(func(context.Context, string, string, coachservice.GenerateOptions) (string, error) {
		return "", errors.New("model offline")
	})
	router := newTestRouter(gen)

	rec := postJSON(t, router, "/topics/generate", map[string]any{
		"category":   "business",
		"difficulty": "beginner",
		"count":      2,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("topics endpoint must degrade silently, got %d", rec.Code)
	}

	var resp struct {
		Topics []topic.Topic `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response err: %v", err)
	}
	if len(resp.Topics) != 2 {
		t.Fatalf("expected 2 fallback topics, got %d", len(resp.Topics))
	}
}

func TestHandleTopicsDefaultCount(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/topics/generate", map[string]any{})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Topics []topic.Topic `json:"topics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response err: %v", err)
	}
	// 未指定 count 时默认生成 4 个题目
	if len(resp.Topics) != 4 {
		t.Fatalf("expected default count of 4, got %d", len(resp.Topics))
	}
}

func TestHandleTopicsNegativeCount(t *testing.T) {
	router := newTestRouter(nil)

	rec := postJSON(t, router, "/topics/generate", map[string]any{"count": -1})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative count, got %d", rec.Code)
	}
}
