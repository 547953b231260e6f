// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credential resolves the upstream API credential. A key set directly
// in the environment always wins; otherwise the credential is fetched once
// from a secret store and kept in a process-wide Cache. A changed secret
// needs a process restart.
package credential

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Source names where a credential came from. Used in log fields only.
type Source string

const (
	SourceNone        Source = "none"
	SourceEnv         Source = "env"
	SourceCache       Source = "cache"
	SourceSecretStore Source = "secretsmanager"
)

// SecretStore fetches a secret payload by name.
type SecretStore interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Resolver decides which credential, if any, to attach to upstream requests.
type Resolver struct {
	// DirectKey returns the literal API key from the environment, or "".
	// It is called on every Resolve so a changed variable takes effect
	// immediately.
	DirectKey func() string

	store  SecretStore
	cache  *Cache
	logger *zap.Logger
}

// NewResolver creates a Resolver. store may be nil when no secret store is
// configured; cache must be shared across all handlers of one process.
func NewResolver(directKey func() string, store SecretStore, cache *Cache, logger *zap.Logger) *Resolver {
	if directKey == nil {
		directKey = func() string { return "" }
	}
	if cache == nil {
		cache = &Cache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{DirectKey: directKey, store: store, cache: cache, logger: logger}
}

// Resolve returns the credential to use, or "" when none is available.
// A secret-store failure is returned to the caller and is not cached, so the
// next call fetches again.
func (r *Resolver) Resolve(ctx context.Context, secretName string) (string, error) {
	if key := r.DirectKey(); key != "" {
		r.logResolved(SourceEnv, key)
		return key, nil
	}
	if secretName == "" {
		r.logResolved(SourceNone, "")
		return "", nil
	}
	if key, ok := r.cache.Load(); ok {
		r.logResolved(SourceCache, key)
		return key, nil
	}
	if r.store == nil {
		return "", fmt.Errorf("secret %q: no secret store configured", secretName)
	}

	raw, err := r.store.GetSecret(ctx, secretName)
	if err != nil {
		return "", fmt.Errorf("reading secret %q: %w", secretName, err)
	}

	key := ParseSecret(raw).APIKey()
	r.cache.Store(key)
	if key == "" {
		r.logger.Info("secret has no recognizable key field", zap.String("secret", secretName))
		return "", nil
	}
	r.logResolved(SourceSecretStore, key)
	return key, nil
}

func (r *Resolver) logResolved(src Source, key string) {
	if key == "" {
		r.logger.Debug("no API key found; requests will be unauthenticated")
		return
	}
	r.logger.Debug("API key resolved", zap.String("source", string(src)), zap.String("mask", Mask(key)))
}

// Mask hides a credential for logging: the first and last four characters
// joined by "..." when longer than 8 characters, "****" otherwise.
func Mask(s string) string {
	if len(s) > 8 {
		return s[:4] + "..." + s[len(s)-4:]
	}
	return "****"
}
