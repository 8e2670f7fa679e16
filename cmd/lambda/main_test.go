package main

import (
	"context"
	"encoding/json"
	"portfoliobacktest/cmd"
	"portfoliobacktest/internal/util"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func Test_lambdaHandler(t *testing.T) {
	t.Setenv("PORTFOLIO_ENV", "test")

	apiHandler, err := cmd.InitializeDependencies(util.DefaultConfig())
	require.NoError(t, err)
	handler := newLambdaHandler(apiHandler)

	t.Run("health", func(t *testing.T) {
		resp, err := handler.Handler(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "GET",
			Path:       "/",
		})
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
	})

	t.Run("calculate", func(t *testing.T) {
		resp, err := handler.Handler(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Path:       "/api/portfolio/calculate",
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"assets":[{"ticker":"SPY","weight":100}]}`,
		})
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		out := map[string]map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
		require.Contains(t, out["performance"], "normalizedValues")
	})

	t.Run("validation error", func(t *testing.T) {
		resp, err := handler.Handler(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Path:       "/api/portfolio/calculate",
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"assets":[{"ticker":"SPY","weight":99}]}`,
		})
		require.NoError(t, err)
		require.Equal(t, 400, resp.StatusCode)
	})
}
