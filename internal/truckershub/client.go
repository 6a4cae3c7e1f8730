package truckershub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.truckershub.in/v1"

var ErrNotConfigured = errors.New("truckershub api key is not configured")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("truckershub api error: %d %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, apiKey string, httpClient *http.Client, logger zerolog.Logger) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    trimmed,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
		log:        logger.With().Str("component", "truckershub").Logger(),
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body []byte) (*http.Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// Relay forwards one call and hands back the upstream status and JSON body.
// Non-2xx answers come back as *StatusError.
func (c *Client) Relay(ctx context.Context, method, endpoint string, query url.Values, body []byte) (*RelayResponse, error) {
	resp, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", string(payload)).
			Msg("truckershub api error")
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("decode response: body of %s is not json", endpoint)
	}

	return &RelayResponse{StatusCode: resp.StatusCode, Body: payload}, nil
}

// fetch unwraps the {status, response} envelope of a GET.
func fetch[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (*T, error) {
	relayed, err := c.Relay(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return nil, err
	}

	var env envelope[T]
	if err := json.Unmarshal(relayed.Body, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	if !env.Status {
		return nil, fmt.Errorf("truckershub %s: response status is false", endpoint)
	}
	return &env.Response, nil
}

// read is fetch for the typed reads: failures are logged and come back as nil.
func read[T any](ctx context.Context, c *Client, endpoint string, query url.Values) *T {
	v, err := fetch[T](ctx, c, endpoint, query)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			c.log.Warn().Str("endpoint", endpoint).Msg("api key is not set")
		} else {
			c.log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to fetch from truckershub")
		}
		return nil
	}
	return v
}

func (c *Client) VTC(ctx context.Context) *VTCStats {
	res := read[struct {
		VTC VTCStats `json:"vtc"`
	}](ctx, c, "vtc", nil)
	if res == nil {
		return nil
	}
	return &res.VTC
}

// Leaderboard reads "alltime" or "monthly".
func (c *Client) Leaderboard(ctx context.Context, period string) []LeaderboardUser {
	res := read[[]LeaderboardUser](ctx, c, "leaderboard/"+url.PathEscape(period), nil)
	if res == nil {
		return nil
	}
	return *res
}

func (c *Client) Jobs(ctx context.Context, query url.Values) []Job {
	res := read[[]Job](ctx, c, "jobs/all", query)
	if res == nil {
		return nil
	}
	return *res
}

func (c *Client) Job(ctx context.Context, id string) *Job {
	return read[Job](ctx, c, "jobs/"+url.PathEscape(id), nil)
}

func (c *Client) Members(ctx context.Context) []Driver {
	res := read[struct {
		Drivers []Driver `json:"drivers"`
	}](ctx, c, "drivers", nil)
	if res == nil {
		return []Driver{}
	}
	return res.Drivers
}

func (c *Client) User(ctx context.Context) *User {
	return read[User](ctx, c, "user", nil)
}

func (c *Client) Skills(ctx context.Context) []Skill {
	res := read[struct {
		Skills []Skill `json:"skills"`
	}](ctx, c, "skills", nil)
	if res == nil {
		return []Skill{}
	}
	return res.Skills
}

// DriverSkills is nil when the driver could not be loaded.
func (c *Client) DriverSkills(ctx context.Context, steamID string) []DriverSkill {
	res := read[struct {
		Skills []DriverSkill `json:"skills"`
	}](ctx, c, "skills/"+url.PathEscape(steamID), nil)
	if res == nil {
		return nil
	}
	return res.Skills
}

// UpdateDriverSkills posts the skill id to level map. An empty 2xx body counts as success.
func (c *Client) UpdateDriverSkills(ctx context.Context, steamID string, levels map[string]int) error {
	body, err := json.Marshal(levels)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "skills/"+url.PathEscape(steamID), nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Status {
		return errors.New("truckershub rejected the skill update")
	}
	return nil
}
