// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package books proxies queries to the Google Books volumes API and reshapes
// the response into a minimal item list wrapped in a CORS-enabled envelope.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/credential"
	"github.com/pdiddy/books-explorer/internal/httputil"
	"github.com/pdiddy/books-explorer/pkg/types"
)

const (
	// DefaultEndpoint is the Google Books volumes search endpoint.
	DefaultEndpoint = "https://www.googleapis.com/books/v1/volumes"

	// DefaultQuery replaces an empty query.
	DefaultQuery = "node"

	// DefaultCORSOrigin is the static frontend's S3 website origin.
	DefaultCORSOrigin = "http://aws-books-explorer-frontend-20251123.s3-website-ap-northeast-1.amazonaws.com"

	defaultMaxItems = 10
	snippetLimit    = 1000

	upstreamErrorMessage = "Google Books API error"
)

// Handler answers search requests. It is safe for concurrent use.
type Handler struct {
	client   *http.Client
	resolver *credential.Resolver
	cfg      types.HandlerConfig
	logger   *zap.Logger
}

// NewHandler creates a Handler, filling unset config fields with defaults.
func NewHandler(client *http.Client, resolver *credential.Resolver, cfg types.HandlerConfig, logger *zap.Logger) *Handler {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if resolver == nil {
		resolver = credential.NewResolver(nil, nil, nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.DefaultQuery == "" {
		cfg.DefaultQuery = DefaultQuery
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = DefaultCORSOrigin
	}
	return &Handler{client: client, resolver: resolver, cfg: cfg, logger: logger}
}

// Headers returns the response headers carried by every envelope.
func (h *Handler) Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  h.cfg.CORSOrigin,
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "GET,OPTIONS",
	}
}

// Handle runs one search. It never fails: every error path becomes an
// envelope with a JSON {"message": ...} body.
func (h *Handler) Handle(ctx context.Context, req types.SearchRequest) (env types.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("search handler panicked", zap.Any("panic", r))
			env = h.errorEnvelope(http.StatusInternalServerError, fmt.Sprint(r))
		}
	}()

	q := req.Query
	if q == "" {
		q = h.cfg.DefaultQuery
	}

	key, err := h.resolver.Resolve(ctx, h.cfg.SecretName)
	if err != nil {
		h.logger.Error("failed to read secret", zap.Error(err))
		key = ""
	}

	items, status, err := h.search(ctx, q, key)
	switch {
	case err != nil:
		h.logger.Error("search failed", zap.String("query", q), zap.Error(err))
		return h.errorEnvelope(http.StatusInternalServerError, err.Error())
	case status != http.StatusOK:
		return h.errorEnvelope(status, upstreamErrorMessage)
	}
	return h.envelope(http.StatusOK, types.SearchBody{Items: items})
}

// search calls the upstream and returns projected items. A non-2xx upstream
// status is returned with a nil error.
func (h *Handler) search(ctx context.Context, q, key string) ([]types.Item, int, error) {
	reqURL := buildURL(h.cfg.Endpoint, q, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", httputil.RedactURLError(err))
	}
	if h.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", h.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, h.client, req, httputil.RetryPolicy{
		MaxAttempts: h.cfg.MaxAttempts,
		BaseDelay:   h.cfg.BaseDelay,
	}, h.logger)
	if err != nil {
		return nil, 0, httputil.RedactURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, snippetLimit))
		h.logger.Error("Google Books API responded with non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("status_text", resp.Status),
			zap.ByteString("body_snippet", snippet))
		return nil, resp.StatusCode, nil
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, 0, fmt.Errorf("parsing Google Books response: %w", err)
	}

	items := project(vr.Items, h.cfg.MaxItems)
	h.logger.Debug("search completed",
		zap.String("query", q),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return items, http.StatusOK, nil
}

// buildURL appends the encoded query and, when present, the encoded key
// after it.
func buildURL(endpoint, q, key string) string {
	u := endpoint + "?q=" + escapeComponent(q)
	if key != "" {
		u += "&key=" + escapeComponent(key)
	}
	return u
}

// escapeComponent percent-encodes s for a query value, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// project keeps at most limit volumes in upstream order and reduces each to
// an Item. Missing nested fields become nil or an empty author list.
func project(volumes []volume, limit int) []types.Item {
	if len(volumes) > limit {
		volumes = volumes[:limit]
	}
	items := make([]types.Item, 0, len(volumes))
	for _, v := range volumes {
		it := types.Item{ID: v.ID, Authors: []string{}}
		if info := v.VolumeInfo; info != nil {
			it.Title = optionalString(info.Title)
			it.PublishedDate = optionalString(info.PublishedDate)
			var authors []string
			if json.Unmarshal(info.Authors, &authors) == nil && len(authors) > 0 {
				it.Authors = authors
			}
		}
		items = append(items, it)
	}
	return items
}

// optionalString returns the JSON string in raw, or nil when raw is absent,
// empty, or not a string.
func optionalString(raw json.RawMessage) *string {
	var s string
	if json.Unmarshal(raw, &s) != nil || s == "" {
		return nil
	}
	return &s
}

func (h *Handler) errorEnvelope(status int, message string) types.Envelope {
	return h.envelope(status, types.ErrorBody{Message: message})
}

func (h *Handler) envelope(status int, body any) types.Envelope {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(types.ErrorBody{Message: err.Error()})
	}
	return types.Envelope{StatusCode: status, Headers: h.Headers(), Body: string(data)}
}

// Google Books API JSON structures. Only the consumed fields are declared.
// volumeInfo fields stay raw so one oddly typed record projects to nulls
// instead of failing the whole search.
type volumesResponse struct {
	Items []volume `json:"items"`
}

type volume struct {
	ID         string      `json:"id"`
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         json.RawMessage `json:"title"`
	Authors       json.RawMessage `json:"authors"`
	PublishedDate json.RawMessage `json:"publishedDate"`
}
