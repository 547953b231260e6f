// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for calling the upstream API.
package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay is the default base duration for linear backoff between
// attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 300 * time.Millisecond

const defaultMaxAttempts = 3

// RetryPolicy bounds DoWithRetry. Zero fields take the defaults: 3 attempts
// and RetryBaseDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DoWithRetry executes an HTTP request and retries when the client returns a
// transport error. Any HTTP response, whatever its status, is returned to the
// caller as-is and is never retried.
//
// After failed attempt n the function waits BaseDelay*n before the next
// attempt: 300 ms, 600 ms with the defaults. There is no wait after the last
// attempt; the last transport error is returned instead. If the context is
// cancelled during a backoff wait the function returns ctx.Err().
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy, logger *zap.Logger) (*http.Response, error) {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	base := policy.BaseDelay
	if base <= 0 {
		base = RetryBaseDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil {
			return resp, nil
		}
		lastErr = err
		logger.Warn("upstream request failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.String("error", RedactURLError(err).Error()))

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(base * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

// RedactURLError strips the request URL from a *url.Error so that query
// parameters such as an API key are not echoed in logs or responses. Other
// errors are returned unchanged.
func RedactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
