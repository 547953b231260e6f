// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/credential/awssm"
	"github.com/pdiddy/books-explorer/pkg/types"
)

// Configuration keys. The first group is bound to the fixed environment
// variable names the deployment uses; the rest use the BOOKS_EXPLORER_ prefix.
const (
	keyAPIKey     = "google_books_api_key"
	keySecretName = "google_books_secret_name"
	keyRegion     = "aws_region"
	keyCORSOrigin = "cors_origin"

	keyAddr        = "addr"
	keyAccessLog   = "access_log"
	keyLogLevel    = "log_level"
	keyTimeout     = "timeout"
	keyMaxAttempts = "max_attempts"
	keyBaseDelay   = "base_delay"
	keyEndpoint    = "endpoint"
	keySecretsDir  = "secrets_dir"
)

const defaultUserAgent = "books-explorer/0.1"

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("BOOKS_EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.BindEnv(keyAPIKey, "GOOGLE_BOOKS_API_KEY")
	v.BindEnv(keySecretName, "GOOGLE_BOOKS_SECRET_NAME")
	v.BindEnv(keyRegion, "AWS_REGION", "AWS_DEFAULT_REGION")
	v.BindEnv(keyCORSOrigin, "CORS_ORIGIN")

	v.SetDefault(keyRegion, awssm.DefaultRegion)
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyLogLevel, "info")
}

// handlerConfig reads the search handler settings from v.
func handlerConfig(v *viper.Viper) types.HandlerConfig {
	return types.HandlerConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(keyTimeout),
			UserAgent: defaultUserAgent,
		},
		RetryConfig: types.RetryConfig{
			MaxAttempts: v.GetInt(keyMaxAttempts),
			BaseDelay:   v.GetDuration(keyBaseDelay),
		},
		Endpoint:   v.GetString(keyEndpoint),
		SecretName: v.GetString(keySecretName),
		CORSOrigin: v.GetString(keyCORSOrigin),
	}
}

func secretStoreConfig(v *viper.Viper) types.SecretStoreConfig {
	return types.SecretStoreConfig{
		Region: v.GetString(keyRegion),
		Dir:    v.GetString(keySecretsDir),
	}
}

func serverConfig(v *viper.Viper) types.ServerConfig {
	return types.ServerConfig{
		Addr:          v.GetString(keyAddr),
		AccessLogPath: v.GetString(keyAccessLog),
	}
}

// newLogger builds a JSON production logger at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// inLambda reports whether the process runs inside the AWS Lambda runtime.
func inLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}
