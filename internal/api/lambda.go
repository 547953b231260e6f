// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/pdiddy/books-explorer/pkg/types"
)

// LambdaHandler adapts a Searcher to API Gateway proxy integration events.
type LambdaHandler struct {
	searcher Searcher
	recorder Recorder
	logger   *zap.Logger
}

// NewLambdaHandler creates a LambdaHandler. recorder may be nil.
func NewLambdaHandler(s Searcher, rec Recorder, logger *zap.Logger) *LambdaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LambdaHandler{searcher: s, recorder: rec, logger: logger}
}

// Handle is passed to lambda.Start. It never returns an error; failures are
// carried in the response status and body.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		return toProxyResponse(preflight(h.searcher)), nil
	}
	q := req.QueryStringParameters["q"]
	env := search(ctx, h.searcher, h.recorder, h.logger, req.HTTPMethod, q)
	return toProxyResponse(env), nil
}

func toProxyResponse(env types.Envelope) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: env.StatusCode,
		Headers:    env.Headers,
		Body:       env.Body,
	}
}
