package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"family_hub_backend/internal/config"
	"family_hub_backend/internal/util"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Fatalf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzeUnconfigured(t *testing.T) {
	svc := NewMealFeedbackService(config.AIConfig{})
	_, err := svc.Analyze(&MealFeedbackRequest{Dishes: []FeedbackDish{{Name: "Fried rice"}}})
	if !errors.Is(err, util.ErrAIUnconfigured) {
		t.Fatalf("expected ErrAIUnconfigured, got %v", err)
	}
}

func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("missing bearer token")
		}
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := ChatCompletionResponse{}
		resp.Choices = []struct {
			Message AIChatMessage `json:"message"`
		}{{Message: AIChatMessage{Role: "assistant", Content: content}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeParsesModelJSON(t *testing.T) {
	reply := "```json\n" + `{
		"summary": "A solid week with good protein variety.",
		"breakdown": {
			"proteins": {"status": "good", "items": ["chicken", "tofu", "eggs"]},
			"vegetables": {"status": "limited", "items": ["broccoli"]},
			"grains": {"status": "good", "items": ["rice", "noodles", "bread"]},
			"dairy": {"status": "missing", "items": []},
			"fruits": {"status": "missing", "items": []}
		},
		"suggestions": ["Add a dairy source", "Serve fruit with breakfast"]
	}` + "\n```"
	server := fakeCompletionServer(t, reply)
	defer server.Close()

	svc := NewMealFeedbackService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	feedback, err := svc.Analyze(&MealFeedbackRequest{
		Dishes: []FeedbackDish{
			{Name: "Chicken rice", Ingredients: []string{"chicken", "rice"}},
			{Name: "Mystery stew"},
		},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if feedback.Summary != "A solid week with good protein variety." {
		t.Fatalf("unexpected summary: %q", feedback.Summary)
	}
	if feedback.Breakdown.Proteins.Status != "good" || len(feedback.Breakdown.Proteins.Items) != 3 {
		t.Fatalf("unexpected protein breakdown: %+v", feedback.Breakdown.Proteins)
	}
	if len(feedback.MissingIngredientsDishes) != 1 || feedback.MissingIngredientsDishes[0] != "Mystery stew" {
		t.Fatalf("dishes without ingredients should be flagged: %v", feedback.MissingIngredientsDishes)
	}
}

func TestAnalyzeFallsBackOnPlainText(t *testing.T) {
	server := fakeCompletionServer(t, "Looks tasty, but I cannot produce JSON today.")
	defer server.Close()

	svc := NewMealFeedbackService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	feedback, err := svc.Analyze(&MealFeedbackRequest{
		Dishes: []FeedbackDish{{Name: "Noodles", Ingredients: []string{"noodles"}}},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(feedback.Summary, "Looks tasty") {
		t.Fatalf("fallback should keep the raw text as summary: %q", feedback.Summary)
	}
	if len(feedback.Suggestions) == 0 {
		t.Fatal("fallback should still carry a suggestion")
	}
	if len(feedback.MissingIngredientsDishes) != 0 {
		t.Fatalf("no dishes were missing ingredients: %v", feedback.MissingIngredientsDishes)
	}
}
