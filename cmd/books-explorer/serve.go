// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/api"
	"github.com/pdiddy/books-explorer/internal/web"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the API and the display page over HTTP",
	Long: `Serve starts a local HTTP server exposing GET /books?q= with the same
envelope and CORS headers as the Lambda function, plus the display page at /.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().String("access-log", "", "SQLite access log path (empty disables)")
	serveCmd.Flags().Bool("no-ui", false, "do not serve the display page")
	viper.BindPFlag(keyAddr, serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag(keyAccessLog, serveCmd.Flags().Lookup("access-log"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	cfg := serverConfig(v)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := newSearchHandler(ctx, v, logger)

	rec, closeRec, err := openRecorder(cfg.AccessLogPath, logger)
	if err != nil {
		return err
	}
	defer closeRec()

	site := web.FS()
	if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
		site = nil
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewMux(handler, site, rec, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
