package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/foomo/confluence-gateway/confluence/vo"
	"go.uber.org/zap"
)

// Service is the scoped adapter in front of the Confluence REST API.
// All write operations are restricted to the subtree below Settings.ScopeRoot
// when one is configured.
type Service interface {
	ListPages(ctx context.Context) ([]vo.Page, error)
	GetPageSummary(ctx context.Context, pageID string, includeChildren bool) (*vo.Page, error)
	CreatePage(ctx context.Context, title, content, parentID string) (*vo.PageRef, error)
	UpdatePage(ctx context.Context, pageID, title, content string) (*vo.PageRef, error)
	DeletePage(ctx context.Context, pageID string) error
	Search(ctx context.Context, cql string, limit int) (*vo.SearchResult, error)
	InlineComments(ctx context.Context, pageID, bodyFormat string) (*vo.CommentList, error)
	ReplyInlineComment(ctx context.Context, commentID, body string) (*vo.Comment, error)
	FooterComments(ctx context.Context, pageID, bodyFormat string) (*vo.CommentList, error)
	AddFooterComment(ctx context.Context, pageID, body string) (*vo.Comment, error)
}

// Settings is the immutable upstream configuration, established once at
// startup and shared by all requests.
type Settings struct {
	BaseURL   string
	Username  string
	APIToken  string
	SpaceKey  string
	ScopeRoot string // empty means writes are unrestricted
}

type client struct {
	settings   Settings
	httpClient *http.Client
	logger     *zap.Logger
}

func New(settings Settings, httpClient *http.Client, logger *zap.Logger) Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !strings.HasSuffix(settings.BaseURL, "/") {
		settings.BaseURL += "/"
	}
	return &client{
		settings:   settings,
		httpClient: httpClient,
		logger:     logger,
	}
}

// APIError carries a non-2xx upstream response verbatim so the HTTP layer can
// propagate status and body unchanged.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// request performs a single upstream call. Relative endpoints are resolved
// against the configured base URL, absolute URLs are used unchanged.
func (c *client) request(ctx context.Context, method, endpoint string, params url.Values, payload, out any) error {
	u := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		u = c.settings.BaseURL + endpoint
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.settings.Username, c.settings.APIToken)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("upstream request", zap.String("method", method), zap.String("url", u))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}
	return nil
}

func (c *client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.request(ctx, http.MethodGet, endpoint, params, nil, out)
}
