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

	"github.com/pageza/sproutspoon/backend/internal/engine"
)

// ExplanationService generates parent-facing explanations for a
// recommendation shortlist via the DeepSeek chat completions API. It
// implements engine.ExplanationProvider; the engine owns timeouts, retries
// and the fallback, so this client stays a thin call.
type ExplanationService struct {
	apiKey string
	apiURL string
	client *http.Client
	redis  *redis.Client
}

const explanationCacheTTL = 6 * time.Hour

// NewExplanationService creates the client. The API key comes from
// DEEPSEEK_API_KEY or a file named by DEEPSEEK_API_KEY_FILE.
func NewExplanationService(redisClient *redis.Client) (*ExplanationService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &ExplanationService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  redisClient,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a request to the DeepSeek API
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Generate implements engine.ExplanationProvider.
func (s *ExplanationService) Generate(ctx context.Context, ec engine.ExplanationContext) (string, error) {
	cacheKey := s.cacheKey(ec)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	prompt := buildExplanationPrompt(ec)
	reqBody := chatRequest{
		Model: "deepseek-chat",
		Messages: []Message{
			{
				Role: "system",
				Content: "You are a pediatric nutrition assistant. Write one warm, concise paragraph " +
					"(max 3 sentences) for a parent explaining today's meal recommendations. " +
					"Do not give medical advice.",
			},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty explanation in API response")
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, text, explanationCacheTTL).Err(); err != nil {
			log.Printf("[ExplanationService] failed to cache explanation: %v", err)
		}
	}
	return text, nil
}

// cacheKey hashes the explanation context so identical shortlists reuse the
// same generated text.
func (s *ExplanationService) cacheKey(ec engine.ExplanationContext) string {
	h := sha256.New()
	h.Write([]byte(ec.BabySummary))
	for _, name := range ec.Shortlist {
		h.Write([]byte(name))
	}
	fmt.Fprintf(h, "%d:%d", ec.RetryCount, ec.AlternativeCount)
	return "explanation:" + hex.EncodeToString(h.Sum(nil))
}

func buildExplanationPrompt(ec engine.ExplanationContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Baby: %s.\n", ec.BabySummary)
	if len(ec.Shortlist) > 0 {
		fmt.Fprintf(&b, "Recommended meals: %s.\n", strings.Join(ec.Shortlist, ", "))
	}
	if ec.RetryCount > 0 {
		fmt.Fprintf(&b, "There are %d previously rejected foods with retry suggestions.\n", ec.RetryCount)
	}
	if ec.AlternativeCount > 0 {
		fmt.Fprintf(&b, "Nutritional alternatives were prepared for %d disliked ingredients.\n", ec.AlternativeCount)
	}
	return b.String()
}
