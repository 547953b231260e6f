// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/accesslog"
	"github.com/pdiddy/books-explorer/internal/api"
	"github.com/pdiddy/books-explorer/internal/books"
	"github.com/pdiddy/books-explorer/internal/credential"
	"github.com/pdiddy/books-explorer/internal/credential/awssm"
	"github.com/pdiddy/books-explorer/internal/credential/filestore"
	"github.com/pdiddy/books-explorer/pkg/types"
)

// newSearchHandler wires the credential resolver and the search handler from
// configuration. The credential cache lives as long as the returned handler,
// which is the process lifetime for every command.
func newSearchHandler(ctx context.Context, v *viper.Viper, log *zap.Logger) *books.Handler {
	cfg := handlerConfig(v)

	directKey := func() string { return v.GetString(keyAPIKey) }
	store := newSecretStore(ctx, cfg.SecretName, secretStoreConfig(v), log)

	resolver := credential.NewResolver(directKey, store, &credential.Cache{}, log)
	return books.NewHandler(nil, resolver, cfg, log)
}

// newSecretStore picks the local directory store when a secrets directory is
// configured and AWS Secrets Manager otherwise. It returns nil when no secret
// name is configured or the AWS configuration cannot be loaded.
func newSecretStore(ctx context.Context, secretName string, cfg types.SecretStoreConfig, log *zap.Logger) credential.SecretStore {
	if secretName == "" {
		return nil
	}
	if cfg.Dir != "" {
		return filestore.New(cfg.Dir)
	}
	s, err := awssm.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Warn("secret store unavailable; requests will be unauthenticated", zap.Error(err))
		return nil
	}
	return s
}

// openRecorder opens the access log when a path is configured. The returned
// close function is never nil.
func openRecorder(path string, log *zap.Logger) (api.Recorder, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	store, err := accesslog.Open(path)
	if err != nil {
		return nil, nil, err
	}
	log.Info("recording requests", zap.String("access_log", path))
	return store, store.Close, nil
}
