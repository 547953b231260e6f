// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/internal/api"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run the AWS Lambda function handler",
	Long: `Lambda starts the AWS Lambda runtime loop and answers API Gateway proxy
events for GET /books and its OPTIONS preflight. This is also what runs when
the binary starts inside Lambda without arguments.`,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, args []string) error {
	handler, closeRec := newLambdaHandler(cmd.Context(), viper.GetViper(), logger)
	defer closeRec()

	lambda.Start(handler.Handle)
	return nil
}

// newLambdaHandler wires the Lambda adapter. An access log that cannot be
// opened is logged and skipped; the function still serves searches. The
// packaged build has no cgo, so SQLite is unavailable there.
func newLambdaHandler(ctx context.Context, v *viper.Viper, log *zap.Logger) (*api.LambdaHandler, func() error) {
	handler := newSearchHandler(ctx, v, log)

	rec, closeRec, err := openRecorder(serverConfig(v).AccessLogPath, log)
	if err != nil {
		log.Warn("access log unavailable; requests will not be recorded", zap.Error(err))
		rec, closeRec = nil, func() error { return nil }
	}
	return api.NewLambdaHandler(handler, rec, log), closeRec
}
