package relay

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// corsHeaders are attached to every Lambda response so browsers can call
// the endpoint cross-origin.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
	"Content-Type":                 "application/json; charset=utf-8",
}

// LambdaHandler adapts the relay to API Gateway proxy events. The status
// and body match the HTTP adapter exactly.
func (r *Relay) LambdaHandler() func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if req.HTTPMethod == http.MethodOptions {
			// CORS preflight: no body, no outbound calls.
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: corsHeaders}, nil
		}

		symbol := req.QueryStringParameters["symbol"]
		if symbol == "" && req.HTTPMethod == http.MethodPost && req.Body != "" {
			var b postBody
			if err := json.Unmarshal([]byte(req.Body), &b); err == nil {
				symbol = b.Symbol
			}
		}

		resp, status := r.Handle(ctx, symbol)
		body, err := json.Marshal(resp)
		if err != nil {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Headers: corsHeaders}, nil
		}
		return events.APIGatewayProxyResponse{
			StatusCode: status,
			Headers:    corsHeaders,
			Body:       string(body),
		}, nil
	}
}
