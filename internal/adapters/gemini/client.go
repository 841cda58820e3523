// Package gemini relays aggregated statistics to the hosted Gemini API
// and returns the generated insight text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
	"github.com/emiliopalmerini/preptrack/internal/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the generateContent endpoint of the configured model.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Gemini client. Returns an error when no API key
// is configured so callers can disable the insight feature cleanly.
func NewClient(cfg config.Gemini) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse covers the fields we read from the API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// RequestInsight sends the statistics summary as a prompt and returns
// the model's text.
func (c *Client) RequestInsight(ctx context.Context, req ports.InsightRequest) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if genResp.Error != nil && genResp.Error.Message != "" {
			return "", fmt.Errorf("gemini request failed: %s", genResp.Error.Message)
		}
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// buildPrompt flattens the aggregation stats into a short instruction.
func buildPrompt(req ports.InsightRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a motivating productivity coach. Summarize this %s activity report in 3-4 short sentences, friendly and concrete.\n\n", req.WindowLabel)
	fmt.Fprintf(&b, "Tasks completed: %d\n", req.Stats.TotalTasks)
	fmt.Fprintf(&b, "Videos completed: %d\n", req.Stats.TotalVideos)
	fmt.Fprintf(&b, "Active days: %d of %d\n", req.Stats.ActiveDayCount, req.Stats.TotalDays)
	fmt.Fprintf(&b, "Current streak: %d days\n", req.Streak)
	if req.Stats.BestDayLabel != "" {
		fmt.Fprintf(&b, "Most productive day: %s\n", req.Stats.BestDayLabel)
	}
	if len(req.Stats.TopTaskLabels) > 0 {
		fmt.Fprintf(&b, "Recent tasks: %s\n", strings.Join(req.Stats.TopTaskLabels, ", "))
	}
	if len(req.Stats.TopVideoLabels) > 0 {
		fmt.Fprintf(&b, "Recent videos: %s\n", strings.Join(req.Stats.TopVideoLabels, ", "))
	}
	return b.String()
}
