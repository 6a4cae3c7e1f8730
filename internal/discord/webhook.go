package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var ErrWebhookNotConfigured = errors.New("discord webhook url is not configured")

// WebhookClient posts messages to a single incoming webhook URL.
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

func NewWebhookClient(url string, httpClient *http.Client) *WebhookClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WebhookClient{
		url:        strings.TrimSpace(url),
		httpClient: httpClient,
	}
}

func (c *WebhookClient) Configured() bool {
	return c != nil && c.url != ""
}

// Execute sends params as one JSON POST. Any non-2xx answer is an error.
func (c *WebhookClient) Execute(ctx context.Context, params *discordgo.WebhookParams) error {
	if !c.Configured() {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord webhook failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
