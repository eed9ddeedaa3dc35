package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
)

// maxErrorBodySize limits how much of an error response body we read when
// extracting the backend's message.
const maxErrorBodySize = 64 * 1024

// TokenSource supplies the current bearer credential for each request.
// Returning "" sends the request unauthenticated, which the backend
// answers with 401 and the caller classifies via IsUnauthorized.
type TokenSource func() string

// Client talks to the BrandPulse analytics backend.
//
// Design decision: The bearer token is read through a TokenSource on every
// request rather than captured at construction. The token lives in the
// session vault and can change (login, refresh, logout) while the client
// object stays alive for the whole process.
type Client struct {
	// baseURL is the backend endpoint without a trailing slash.
	baseURL string

	// httpClient performs the requests.
	httpClient *http.Client

	// token supplies the bearer credential per request.
	token TokenSource

	// logger for structured logging.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTokenSource sets the bearer credential supplier.
func WithTokenSource(token TokenSource) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithClientLogger sets a custom logger for the client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      func() string { return "" },
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// LoginResult is the credential set returned by a successful login.
type LoginResult struct {
	AccessToken   string `json:"accessToken"`
	SessionID     string `json:"sessionId"`
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
	FirstName     string `json:"firstName"`
}

// Login authenticates with the backend and returns the credential set.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

// TriggerAnalysis asks the backend to start an analysis run for the
// product identified by resourceID. The run is asynchronous: completion is
// observed through PollStatus.
func (c *Client) TriggerAnalysis(ctx context.Context, resourceID string) error {
	body := map[string]string{"resourceId": resourceID}

	if err := c.do(ctx, http.MethodPost, "/v1/analysis/trigger", body, nil); err != nil {
		return fmt.Errorf("failed to trigger analysis: %w", err)
	}
	return nil
}

// AnalysisStatus is one poll result for a running analysis.
type AnalysisStatus struct {
	// Ready is true once the backend has finished computing the payload.
	Ready bool `json:"ready"`

	// Dashboard carries the analytics payload once Ready is true.
	Dashboard *model.Dashboard `json:"dashboard,omitempty"`
}

// PollStatus reports whether the analysis for resourceID has finished and,
// once it has, returns the computed dashboard payload.
func (c *Client) PollStatus(ctx context.Context, resourceID string) (*AnalysisStatus, error) {
	var status AnalysisStatus
	path := "/v1/analysis/status?resourceId=" + resourceID
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, fmt.Errorf("failed to poll analysis status: %w", err)
	}
	return &status, nil
}

// ListProducts returns the account's products.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/v1/products", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListApplications returns the account's registered applications.
func (c *Client) ListApplications(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	if err := c.do(ctx, http.MethodGet, "/v1/applications", nil, &apps); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// FetchDashboard retrieves the dashboard for resourceID by fetching its
// sections concurrently and assembling them into one payload.
//
// Design decision: The backend serves the sections as separate endpoints
// so each one can be cached with its own lifetime. Fetching them with an
// errgroup keeps the wall-clock cost at the slowest section instead of the
// sum, and the first failing section cancels the rest.
func (c *Client) FetchDashboard(ctx context.Context, resourceID string) (*model.Dashboard, error) {
	var (
		overview struct {
			Brand           string             `json:"brand"`
			GeneratedAt     int64              `json:"generatedAt"`
			VisibilityScore float64            `json:"visibilityScore"`
			ModelScores     []model.ModelScore `json:"modelScores"`
		}
		competitors []model.Competitor
		sentiment   model.Sentiment
		citations   []model.Citation
	)

	base := "/v1/dashboard/" + resourceID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, base+"/visibility", nil, &overview)
	})
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, base+"/competitors", nil, &competitors)
	})
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, base+"/sentiment", nil, &sentiment)
	})
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, base+"/citations", nil, &citations)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	return &model.Dashboard{
		Brand:           overview.Brand,
		ResourceID:      resourceID,
		GeneratedAt:     overview.GeneratedAt,
		VisibilityScore: overview.VisibilityScore,
		ModelScores:     overview.ModelScores,
		Competitors:     competitors,
		Sentiment:       sentiment,
		Citations:       citations,
	}, nil
}

// do performs one JSON request against the backend. A non-2xx response is
// returned as a *StatusError carrying the backend's message so callers can
// classify credential failures.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError builds a *StatusError from a non-2xx response, extracting the
// backend's message when the body carries one.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize)) //nolint:errcheck // Partial body still yields a usable message

	message := strings.TrimSpace(string(raw))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			message = payload.Error
		} else if payload.Message != "" {
			message = payload.Message
		}
	}

	c.logger.Debug("backend request failed",
		"status", resp.StatusCode,
		"message", message,
	)

	return &StatusError{StatusCode: resp.StatusCode, Message: message}
}
