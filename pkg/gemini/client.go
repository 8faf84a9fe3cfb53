package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/chetanya04/Copilot-Clone/pkg/domain"
	"github.com/chetanya04/Copilot-Clone/pkg/logger"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	modelName      = "gemini-1.5-flash"

	roleUser  = "user"
	roleModel = "model"
)

type client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

func NewClient(apiKey string, timeout time.Duration) (*client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	return &client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

// GenerateText makes a history-aware completion call first and retries once
// without history before giving up. Only the second failure reaches the
// caller.
func (c *client) GenerateText(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	if len(history) > 0 {
		text, err := c.generateContent(ctx, prompt, history)
		if err == nil {
			return text, nil
		}
		slog.WarnContext(ctx, "History-aware generation failed, retrying without history", logger.Err(err))
	}

	return c.generateContent(ctx, prompt, nil)
}

func (c *client) generateContent(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	request := generateContentRequest{
		Contents: append(mapHistory(history), content{
			Role:  roleUser,
			Parts: []part{{Text: prompt}},
		}),
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1024,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, c.apiKey)
	resp, err := c.sendRequest(ctx, url, request)
	if err != nil {
		return "", fmt.Errorf("sending request to gemini: %w", err)
	}
	defer resp.Body.Close()

	var contentResponse generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&contentResponse); err != nil {
		return "", fmt.Errorf("decoding response data: %w", err)
	}

	if len(contentResponse.Candidates) == 0 || len(contentResponse.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return contentResponse.Candidates[0].Content.Parts[0].Text, nil
}

// mapHistory converts stored messages to the provider vocabulary; the
// assistant role is "model" on this side of the boundary.
func mapHistory(history []domain.Message) []content {
	contents := make([]content, 0, len(history))
	for _, m := range history {
		role := roleUser
		if m.Role == domain.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}
	return contents
}

func (c *client) sendRequest(ctx context.Context, url string, request generateContentRequest) (*http.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}
