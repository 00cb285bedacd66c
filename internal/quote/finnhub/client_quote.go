package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"quoterelay/internal/quote"
)

// quoteResponse matches the Finnhub /quote JSON. All numeric fields are
// pointers so omitted or null fields survive decoding; dp in particular
// is documented to be null for unknown symbols.
type quoteResponse struct {
	Current       *float64 `json:"c"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PrevClose     *float64 `json:"pc"`
	PercentChange *float64 `json:"dp"`
	Timestamp     int64    `json:"t"`
}

// Name identifies this provider in logs.
func (c *Client) Name() string { return "Finnhub" }

// Fetch retrieves the current quote for one symbol.
func (c *Client) Fetch(ctx context.Context, symbol string) (quote.Quote, error) {
	query := maps.Clone(c.query)
	query.Set("symbol", symbol)

	url := fmt.Sprintf("%s/quote?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return quote.Quote{}, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return quote.Quote{}, quote.ErrRateLimited

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return quote.Quote{}, fmt.Errorf("unexpected status code %d: %s", res.StatusCode, string(b))
	}

	var body quoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return quote.Quote{}, fmt.Errorf("%w: %v", quote.ErrMalformed, err)
	}
	// A well-formed quote always carries a current price, even for unknown
	// symbols (Finnhub reports those as c=0, dp=null).
	if body.Current == nil {
		return quote.Quote{}, fmt.Errorf("%w: missing current price", quote.ErrMalformed)
	}

	q := quote.Quote{
		Symbol:        symbol,
		Current:       body.Current,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PrevClose:     body.PrevClose,
		PercentChange: body.PercentChange,
	}
	if body.Timestamp > 0 {
		q.Timestamp = time.Unix(body.Timestamp, 0).UTC()
	}
	return q, nil
}
