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

	"github.com/pdiddy/books-explorer/internal/accesslog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent requests from the access log",
	Long: `History prints the most recent requests recorded by serve or lambda when an
access log is configured (--access-log or BOOKS_EXPLORER_ACCESS_LOG).`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("access-log", "", "SQLite access log path")
	historyCmd.Flags().Int("limit", 20, "number of records to show")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("access-log")
	if path == "" {
		path = viper.GetString(keyAccessLog)
	}
	if path == "" {
		return fmt.Errorf("no access log configured: pass --access-log or set BOOKS_EXPLORER_ACCESS_LOG")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := accesslog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return writeRecords(os.Stdout, records, format)
}

func writeRecords(w io.Writer, records []accesslog.Record, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "table":
		formatTable(w, records)
		return nil
	default:
		return fmt.Errorf("unknown format %q: use table, json, or yaml", format)
	}
}

// formatTable writes records as a human-readable table.
func formatTable(w io.Writer, records []accesslog.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No requests recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-7s  %-6s  %-5s  %-8s  %s\n",
		"Time", "Method", "Status", "Items", "Duration", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-7s  %-6d  %-5d  %-8s  %s\n",
			r.Time.Local().Format("2006-01-02 15:04:05"), r.Method, r.Status, r.Items,
			r.Duration.String(), truncate(r.Query, 30))
	}

	fmt.Fprintf(w, "\n%d requests\n", len(records))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
