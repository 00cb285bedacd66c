package finnhub_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quoterelay/internal/quote"
	finnhub "quoterelay/internal/quote/finnhub"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Assert: a valid key should return a client.
	client, err := finnhub.NewClient("test")
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller and http client
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: the request must target the overridden base URL.
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"c":1}`)),
			}, nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := finnhub.NewClient("test", finnhub.WithHTTPClient(httpClient), finnhub.WithBaseURL(baseURL))
	require.NoError(t, err)
	require.NotNil(t, client)

	// Act: fetch with the overridden base URL.
	_, err = client.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
}

func TestFetch_QueryCarriesSymbolAndToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			require.Equal(t, "AAPL", q.Get("symbol"))
			require.Equal(t, "secret", q.Get("token"))
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"c":150.1234,"h":151.5,"l":149,"o":149.5,"pc":148,"dp":1.5,"t":1700000000}`)),
			}, nil
		}).
		Times(1)

	client, err := finnhub.NewClient("secret", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	q, err := client.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q.Current)
	require.InDelta(t, 150.1234, *q.Current, 1e-9)
	require.NotNil(t, q.PercentChange)
	require.InDelta(t, 1.5, *q.PercentChange, 1e-9)
	require.Equal(t, int64(1700000000), q.Timestamp.Unix())
	require.Equal(t, "UTC", q.Timestamp.Location().String())
}

func TestFetch_NullPercentChangeStaysNil(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"c":0,"h":0,"l":0,"o":0,"pc":0,"dp":null,"t":0}`)),
			}, nil
		}).
		Times(1)

	client, err := finnhub.NewClient("test", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	q, err := client.Fetch(context.Background(), "ZZZZZ")
	require.NoError(t, err)
	require.Nil(t, q.PercentChange)
	require.True(t, q.Empty())
	require.True(t, q.Timestamp.IsZero())
}

func TestFetch_RateLimited(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(*http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(bytes.NewReader(nil)),
			}, nil
		}).
		Times(1)

	client, err := finnhub.NewClient("test", finnhub.WithHTTPClient(httpClient))
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "AAPL")
	require.ErrorIs(t, err, quote.ErrRateLimited)
}

func TestFetch_MalformedBody(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"array":          `[1,2,3]`,
		"not json":       `<html>`,
		"missing fields": `{"error":"upstream"}`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)

			httpClient.EXPECT().
				Do(gomock.Any()).
				DoAndReturn(func(*http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(strings.NewReader(body)),
					}, nil
				}).
				Times(1)

			client, err := finnhub.NewClient("test", finnhub.WithHTTPClient(httpClient))
			require.NoError(t, err)

			_, err = client.Fetch(context.Background(), "AAPL")
			require.ErrorIs(t, err, quote.ErrMalformed)
		})
	}
}
