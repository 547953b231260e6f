// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the search handler over AWS Lambda (API Gateway proxy
// events) and plain net/http. Both surfaces answer CORS preflight requests
// without calling the upstream and optionally record every request in an
// access log.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/accesslog"
	"github.com/pdiddy/books-explorer/pkg/types"
)

// Searcher runs one search and reports the headers every response carries.
// *books.Handler implements it.
type Searcher interface {
	Handle(ctx context.Context, req types.SearchRequest) types.Envelope
	Headers() map[string]string
}

// Recorder persists handled requests. *accesslog.Store implements it.
type Recorder interface {
	Record(ctx context.Context, r accesslog.Record) error
}

// preflight is the envelope returned for OPTIONS requests.
func preflight(s Searcher) types.Envelope {
	return types.Envelope{StatusCode: http.StatusNoContent, Headers: s.Headers()}
}

// search runs the query and records the outcome. Recording failures are
// logged and never change the response.
func search(ctx context.Context, s Searcher, rec Recorder, logger *zap.Logger, method, q string) types.Envelope {
	start := time.Now()
	env := s.Handle(ctx, types.SearchRequest{Query: q})
	record(ctx, rec, logger, accesslog.Record{
		Time:     start,
		Method:   method,
		Query:    q,
		Status:   env.StatusCode,
		Items:    itemCount(env),
		Duration: time.Since(start),
	})
	return env
}

func record(ctx context.Context, rec Recorder, logger *zap.Logger, r accesslog.Record) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, r); err != nil {
		logger.Warn("recording access log entry", zap.Error(err))
	}
}

func itemCount(env types.Envelope) int {
	if env.StatusCode != http.StatusOK {
		return 0
	}
	var body types.SearchBody
	if err := json.Unmarshal([]byte(env.Body), &body); err != nil {
		return 0
	}
	return len(body.Items)
}
