package pollinations

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://image.pollinations.ai"

type client struct {
	baseURL string
	hc      *http.Client

	width  int
	height int
	model  string
	seedFn func() int
}

func NewClient(timeout time.Duration) *client {
	return &client{
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: timeout},
		width:   1024,
		height:  1024,
		model:   "flux",
		seedFn:  func() int { return rand.Intn(1000000) },
	}
}

// GenerateImage builds the generation URL and fetches it once so a dead
// service is reported as an error instead of a broken link in the chat.
// The URL itself is the image reference handed back to clients.
func (c *client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	imageURL := fmt.Sprintf("%s/prompt/%s?width=%d&height=%d&model=%s&seed=%d",
		c.baseURL, url.PathEscape(strings.TrimSpace(prompt)), c.width, c.height, c.model, c.seedFn())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return imageURL, nil
}
