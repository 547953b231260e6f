// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/books-explorer/internal/accesslog"
	"github.com/pdiddy/books-explorer/pkg/types"
)

func TestBindEnv(t *testing.T) {
	t.Setenv("GOOGLE_BOOKS_API_KEY", "ENVKEY")
	t.Setenv("GOOGLE_BOOKS_SECRET_NAME", "books/GoogleBooks")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "us-west-2")
	t.Setenv("CORS_ORIGIN", "https://books.example.com")
	t.Setenv("BOOKS_EXPLORER_MAX_ATTEMPTS", "5")
	t.Setenv("BOOKS_EXPLORER_BASE_DELAY", "50ms")

	v := viper.New()
	bindEnv(v)

	assert.Equal(t, "ENVKEY", v.GetString(keyAPIKey))
	cfg := handlerConfig(v)
	assert.Equal(t, "books/GoogleBooks", cfg.SecretName)
	assert.Equal(t, "https://books.example.com", cfg.CORSOrigin)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.BaseDelay)
	assert.Equal(t, "us-west-2", secretStoreConfig(v).Region)
}

func TestBindEnvDefaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("BOOKS_EXPLORER_ADDR", "")

	v := viper.New()
	bindEnv(v)

	assert.Equal(t, "ap-northeast-1", secretStoreConfig(v).Region)
	assert.Equal(t, ":8080", serverConfig(v).Addr)
	assert.Empty(t, serverConfig(v).AccessLogPath)
}

func TestAPIKeyReadOnEveryLookup(t *testing.T) {
	t.Setenv("GOOGLE_BOOKS_API_KEY", "FIRST")
	v := viper.New()
	bindEnv(v)
	assert.Equal(t, "FIRST", v.GetString(keyAPIKey))

	t.Setenv("GOOGLE_BOOKS_API_KEY", "SECOND")
	assert.Equal(t, "SECOND", v.GetString(keyAPIKey))
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger("chatty")
	assert.Error(t, err)
}

func TestWriteEnvelope(t *testing.T) {
	env := types.Envelope{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"items":[{"id":"a","title":"T","authors":["X"],"publishedDate":null}]}`,
	}

	var jsonOut bytes.Buffer
	require.NoError(t, writeEnvelope(&jsonOut, env, "json"))
	assert.JSONEq(t, `{
	  "statusCode": 200,
	  "headers": {"Content-Type": "application/json"},
	  "body": {"items":[{"id":"a","title":"T","authors":["X"],"publishedDate":null}]}
	}`, jsonOut.String())

	var yamlOut bytes.Buffer
	require.NoError(t, writeEnvelope(&yamlOut, env, "yaml"))
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	assert.Equal(t, 200, decoded["statusCode"])
	assert.Contains(t, yamlOut.String(), "title: T")
}

func TestWriteRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRecords(&buf, nil, "table"))
	assert.Equal(t, "No requests recorded.\n", buf.String())

	buf.Reset()
	records := []accesslog.Record{{
		Time:     time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		Method:   "GET",
		Query:    "a very long query that will certainly be truncated",
		Status:   503,
		Duration: 250 * time.Millisecond,
	}}
	require.NoError(t, writeRecords(&buf, records, "table"))
	out := buf.String()
	assert.Contains(t, out, "503")
	assert.Contains(t, out, "250ms")
	assert.Contains(t, out, "a very long query that will...")
	assert.Contains(t, out, "1 requests")

	assert.Error(t, writeRecords(&buf, records, "xml"))
}
