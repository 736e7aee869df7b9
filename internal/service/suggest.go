package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ISuggestionService describes the cover-image suggestion boundary.
type ISuggestionService interface {
	SuggestCoverImages(ctx context.Context, description string) ([]string, error)
}

// SuggestionService asks an external generative API for cover-image
// suggestions matching a project description. Results are cached in redis so
// retyping the same description does not re-bill the API.
type SuggestionService struct {
	apiKey string
	apiURL string
	model  string
	redis  *redis.Client
	client *http.Client
}

var _ ISuggestionService = (*SuggestionService)(nil)

// NewSuggestionService builds the service from SUGGEST_API_KEY (or
// SUGGEST_API_KEY_FILE) and SUGGEST_API_URL.
func NewSuggestionService(redisClient *redis.Client) (*SuggestionService, error) {
	apiKey := os.Getenv("SUGGEST_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("SUGGEST_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("SUGGEST_API_KEY or SUGGEST_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("SUGGEST_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	model := os.Getenv("SUGGEST_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &SuggestionService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		redis:  redisClient,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type suggestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type suggestRequest struct {
	Model          string            `json:"model"`
	Messages       []suggestMessage  `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type suggestResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type suggestPayload struct {
	ImageURLs []string `json:"image_urls"`
}

const suggestPrompt = `You are a creative assistant helping users find cover images for their projects.
Based on the project description provided, suggest 3 relevant image URLs that could be used as a cover image.
Respond with JSON of the form {"image_urls": ["...", "...", "..."]}.
Project description: %s`

// SuggestCoverImages returns zero or more suggested image URLs for the
// description. The caller must tolerate an empty result.
func (s *SuggestionService) SuggestCoverImages(ctx context.Context, description string) ([]string, error) {
	cacheKey := "cover_suggestions:" + hashKey(description)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var urls []string
			if err := json.Unmarshal([]byte(cached), &urls); err == nil {
				log.Printf("[SuggestionService] cache hit for description hash %s", cacheKey)
				return urls, nil
			}
		}
	}

	reqBody := suggestRequest{
		Model: s.model,
		Messages: []suggestMessage{
			{Role: "user", Content: fmt.Sprintf(suggestPrompt, description)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result suggestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, nil
	}

	var payload suggestPayload
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion payload: %w", err)
	}

	if s.redis != nil && len(payload.ImageURLs) > 0 {
		if data, err := json.Marshal(payload.ImageURLs); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, 24*time.Hour).Err(); err != nil {
				log.Printf("[SuggestionService] failed to cache suggestions: %v", err)
			}
		}
	}

	return payload.ImageURLs, nil
}

func hashKey(description string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(description))))
	return hex.EncodeToString(sum[:8])
}
