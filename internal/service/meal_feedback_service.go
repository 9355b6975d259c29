package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"family_hub_backend/internal/config"
	"family_hub_backend/internal/util"
)

// MealFeedbackService 调用 OpenAI 兼容接口给周菜单做营养点评
type MealFeedbackService struct {
	config config.AIConfig
	client *http.Client
}

func NewMealFeedbackService(cfg config.AIConfig) *MealFeedbackService {
	return &MealFeedbackService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type FeedbackDish struct {
	Name        string   `json:"name" binding:"required"`
	Ingredients []string `json:"ingredients"`
}

type MealFeedbackRequest struct {
	Dishes   []FeedbackDish `json:"dishes" binding:"required,min=1"`
	Language string         `json:"language"`
}

type BreakdownCategory struct {
	Status string   `json:"status"` // good / limited / missing
	Items  []string `json:"items"`
}

type FeedbackBreakdown struct {
	Proteins   BreakdownCategory `json:"proteins"`
	Vegetables BreakdownCategory `json:"vegetables"`
	Grains     BreakdownCategory `json:"grains"`
	Dairy      BreakdownCategory `json:"dairy"`
	Fruits     BreakdownCategory `json:"fruits"`
}

type MealFeedbackResponse struct {
	Summary                  string            `json:"summary"`
	Breakdown                FeedbackBreakdown `json:"breakdown"`
	Suggestions              []string          `json:"suggestions"`
	MissingIngredientsDishes []string          `json:"missingIngredientsDishes"`
}

const feedbackSystemPrompt = `You are a friendly family nutritionist helping parents plan healthy meals for their family. Analyze meal plans and provide constructive, practical feedback.

Your response must be valid JSON with this exact structure:
{
  "summary": "2-3 sentence overall assessment of the meal plan",
  "breakdown": {
    "proteins": { "status": "good|limited|missing", "items": ["list of proteins found"] },
    "vegetables": { "status": "good|limited|missing", "items": ["list of vegetables found"] },
    "grains": { "status": "good|limited|missing", "items": ["list of grains found"] },
    "dairy": { "status": "good|limited|missing", "items": ["list of dairy found"] },
    "fruits": { "status": "good|limited|missing", "items": ["list of fruits found"] }
  },
  "suggestions": ["3-5 specific, actionable suggestions to improve the meal plan"]
}

Use "good" if there's variety (3+ items), "limited" if there's some (1-2 items), "missing" if none.
%s`

// Analyze 对候选菜做营养分析，未配置 API Key 时返回 ErrAIUnconfigured
func (s *MealFeedbackService) Analyze(req *MealFeedbackRequest) (*MealFeedbackResponse, error) {
	if s.config.APIKey == "" {
		return nil, util.ErrAIUnconfigured
	}

	var missing []string
	var lines []string
	for _, d := range req.Dishes {
		if len(d.Ingredients) == 0 {
			missing = append(missing, d.Name)
			lines = append(lines, fmt.Sprintf("- %s (no ingredients listed)", d.Name))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: %s", d.Name, strings.Join(d.Ingredients, ", ")))
		}
	}

	languageInstruction := "Respond in English."
	if req.Language == "zh" {
		languageInstruction = "Respond in Chinese (简体中文)."
	}

	userPrompt := fmt.Sprintf(`Please analyze this weekly meal plan and provide health feedback:

%s

Remember to respond with valid JSON only, no markdown or other formatting.`, strings.Join(lines, "\n"))

	content, err := s.chat(
		fmt.Sprintf(feedbackSystemPrompt, languageInstruction),
		userPrompt,
	)
	if err != nil {
		return nil, err
	}

	feedback := &MealFeedbackResponse{}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), feedback); err != nil {
		// 模型没按约定输出 JSON 时降级成纯文本摘要
		summary := content
		if len(summary) > 200 {
			summary = summary[:200]
		}
		feedback = &MealFeedbackResponse{
			Summary: summary,
			Breakdown: FeedbackBreakdown{
				Proteins:   BreakdownCategory{Status: "limited", Items: []string{}},
				Vegetables: BreakdownCategory{Status: "limited", Items: []string{}},
				Grains:     BreakdownCategory{Status: "limited", Items: []string{}},
				Dairy:      BreakdownCategory{Status: "missing", Items: []string{}},
				Fruits:     BreakdownCategory{Status: "missing", Items: []string{}},
			},
			Suggestions: []string{"Unable to parse detailed feedback. Please try again."},
		}
	}
	feedback.MissingIngredientsDishes = missing
	if feedback.MissingIngredientsDishes == nil {
		feedback.MissingIngredientsDishes = []string{}
	}
	return feedback, nil
}

// chat 非流式调用 /chat/completions
func (s *MealFeedbackService) chat(systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// stripCodeFence 模型偶尔把 JSON 包进 ``` 代码块里
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
