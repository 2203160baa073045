package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-best-stories/internal/config"
	"go-best-stories/internal/failure"
	"go-best-stories/internal/interfaces"
	"go-best-stories/internal/metrics"
	"go-best-stories/internal/models"
)

const (
	endpointIDs  = "ids"
	endpointItem = "item"

	// Hacker News item bodies are a few hundred bytes, the ranked list a few KB
	maxBodySize = 4 << 20
)

var (
	_ interfaces.IdentifierSource = (*Client)(nil)
	_ interfaces.DetailFetcher    = (*Client)(nil)
)

// Client talks to the story ranking service
type Client struct {
	httpClient       *http.Client
	baseURL          string
	datasetPath      string
	itemPathTemplate string
	logger           *zap.Logger
}

// NewClient creates a client for the upstream described by cfg
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.GetTimeout()}, logger)
}

// NewClientWithHTTP creates a client that sends requests through httpClient
func NewClientWithHTTP(cfg *config.UpstreamConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		httpClient:       httpClient,
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		datasetPath:      cfg.DatasetPath,
		itemPathTemplate: cfg.ItemPathTemplate,
		logger:           logger,
	}
}

// FetchRankedIDs returns the ranked story ids, best first
func (c *Client) FetchRankedIDs(ctx context.Context) (ids []models.StoryID, err error) {
	defer metrics.TimeUpstreamRequest(endpointIDs)()
	defer func() {
		metrics.RecordUpstreamRequest(endpointIDs, string(failure.Categorize(err)))
	}()

	body, err := c.get(ctx, c.baseURL+c.datasetPath)
	if err != nil {
		return nil, err
	}

	// A JSON null decodes into a nil slice without error
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: ranked ids: %w", models.ErrMalformedResponse, err)
	}
	if ids == nil {
		return nil, fmt.Errorf("%w: ranked ids: body is not an array", models.ErrMalformedResponse)
	}

	c.logger.Debug("Fetched ranked ids", zap.Int("count", len(ids)))
	return ids, nil
}

// itemPayload mirrors the item endpoint. Pointers tell a missing or null
// field apart from a zero value.
type itemPayload struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	By          *string `json:"by"`
	Time        *int64  `json:"time"`
	Score       *int    `json:"score"`
	Descendants *int    `json:"descendants"`
}

func (p *itemPayload) missingFields() []string {
	var missing []string
	if p.ID == nil {
		missing = append(missing, "id")
	}
	if p.Title == nil {
		missing = append(missing, "title")
	}
	if p.URL == nil {
		missing = append(missing, "url")
	}
	if p.By == nil {
		missing = append(missing, "by")
	}
	if p.Time == nil {
		missing = append(missing, "time")
	}
	if p.Score == nil {
		missing = append(missing, "score")
	}
	if p.Descendants == nil {
		missing = append(missing, "descendants")
	}
	return missing
}

// FetchStory fetches one item and returns it with the id upstream reported
func (c *Client) FetchStory(ctx context.Context, id models.StoryID) (story *models.FetchedStory, err error) {
	defer metrics.TimeUpstreamRequest(endpointItem)()
	defer func() {
		metrics.RecordUpstreamRequest(endpointItem, string(failure.Categorize(err)))
	}()

	body, err := c.get(ctx, c.ItemURL(id))
	if err != nil {
		return nil, err
	}

	// A JSON null leaves every field nil and is reported as missing fields
	var payload itemPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: item %d: %w", models.ErrMalformedResponse, id, err)
	}
	if missing := payload.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: item %d: missing fields %s",
			models.ErrMalformedResponse, id, strings.Join(missing, ", "))
	}

	return &models.FetchedStory{
		ID: models.StoryID(*payload.ID),
		Story: models.Story{
			Title:        *payload.Title,
			URL:          *payload.URL,
			Author:       *payload.By,
			Time:         *payload.Time,
			Score:        *payload.Score,
			CommentCount: *payload.Descendants,
		},
	}, nil
}

// ItemURL returns the detail URL for id
func (c *Client) ItemURL(id models.StoryID) string {
	path := strings.ReplaceAll(c.itemPathTemplate, config.ItemIDPlaceholder, strconv.FormatInt(int64(id), 10))
	return c.baseURL + path
}

// get performs a GET and returns the body of a 2xx answer
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", models.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", models.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("%w: unexpected status code %d from %s",
			models.ErrUpstreamUnavailable, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", models.ErrUpstreamUnavailable, err)
	}
	return body, nil
}
