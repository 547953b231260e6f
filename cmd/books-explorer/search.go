// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/books-explorer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run one search and print the response envelope",
	Long: `Search runs the same handler the Lambda function runs, once, and prints the
resulting envelope. Arguments are joined with spaces into the query; with no
arguments the default query is used. The command fails when the envelope
status is not 200.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("api-key", "", "Google Books API key (overrides GOOGLE_BOOKS_API_KEY)")
	searchCmd.Flags().String("format", "json", "output format: json or yaml")
	viper.BindPFlag(keyAPIKey, searchCmd.Flags().Lookup("api-key"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q: use json or yaml", format)
	}

	handler := newSearchHandler(cmd.Context(), viper.GetViper(), logger)
	env := handler.Handle(cmd.Context(), types.SearchRequest{Query: strings.Join(args, " ")})

	if err := writeEnvelope(os.Stdout, env, format); err != nil {
		return err
	}
	if env.StatusCode != 200 {
		return fmt.Errorf("search returned HTTP %d", env.StatusCode)
	}
	return nil
}

// decodedEnvelope mirrors types.Envelope with the body decoded for display.
type decodedEnvelope struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Body       any               `json:"body" yaml:"body"`
}

// writeEnvelope prints env with its JSON body decoded so the output reads as
// one document.
func writeEnvelope(w io.Writer, env types.Envelope, format string) error {
	out := decodedEnvelope{StatusCode: env.StatusCode, Headers: env.Headers, Body: env.Body}
	var body any
	if err := json.Unmarshal([]byte(env.Body), &body); err == nil {
		out.Body = body
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
