package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/config"
)

// ErrUnavailable means the generation backend could not produce a usable
// response. Callers surface it as a generic failure; the underlying cause
// stays in the logs.
var ErrUnavailable = errors.New("assist service unavailable")

// Client generates a completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type generateClient struct {
	baseURL    string
	apiKey     string
	model      string
	retryCount int
	retryDelay time.Duration
	client     *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg config.AssistConfig, logger zerolog.Logger) Client {
	return &generateClient{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *generateClient) Complete(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt: %w", err)
	}

	var lastErr error

	for i := 0; i <= c.retryCount; i++ {
		if i > 0 {
			c.logger.Warn().Int("attempt", i).Msg("Retrying completion request")
			time.Sleep(c.retryDelay * time.Duration(i))
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to call generation backend: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var decoded generateResponse
			if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
				resp.Body.Close()
				lastErr = fmt.Errorf("failed to decode response: %w", err)
				continue
			}
			resp.Body.Close()

			if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
				lastErr = errors.New("empty completion")
				continue
			}
			return decoded.Candidates[0].Content.Parts[0].Text, nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("generation backend returned status %d: %s", resp.StatusCode, string(body))

		// Client-side errors will not improve on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			break
		}
	}

	return "", fmt.Errorf("failed to get completion after retries: %w", lastErr)
}
