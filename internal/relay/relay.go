package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"quoterelay/internal/config"
	"quoterelay/internal/notify"
	"quoterelay/internal/quote"
	"quoterelay/internal/retry"
)

// symbolRe is the only symbol shape we forward upstream: 1-5 uppercase
// ASCII letters after normalization.
var symbolRe = regexp.MustCompile(`^[A-Z]{1,5}$`)

// Data carries the raw (unrounded) quote fields echoed back to the caller.
type Data struct {
	Symbol        string    `json:"symbol"`
	CurrentPrice  *float64  `json:"currentPrice"`
	PercentChange *float64  `json:"percentChange"`
	Timestamp     time.Time `json:"timestamp"`
}

// Response is the caller-facing result of one relay.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *Data  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Relay validates a request, fetches a quote, formats it and sends the
// summary to the configured chat. The cache and clock are injected so a
// relay's lifetime and time source are explicit.
type Relay struct {
	Config config.Config
	Quotes quote.Provider
	Notify notify.Notifier
	Cache  *Cache
	// Now is the processing clock; nil means time.Now.
	Now func() time.Time

	group singleflight.Group
}

func (r *Relay) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// NormalizeSymbol trims and uppercases a raw symbol and checks its shape.
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolRe.MatchString(s) {
		return "", fmt.Errorf("symbol must be 1-5 letters, got %q", raw)
	}
	return s, nil
}

// Handle runs one relay for a raw symbol and returns the response plus
// its HTTP-equivalent status.
func (r *Relay) Handle(ctx context.Context, rawSymbol string) (Response, int) {
	if err := r.Config.Validate(); err != nil {
		return r.fail(ctx, KindConfiguration, "", "Server configuration error", err, true)
	}

	symbol, err := NormalizeSymbol(rawSymbol)
	if err != nil {
		// No outbound calls for a bad symbol, not even the error alert.
		return r.fail(ctx, KindInvalidSymbol, "", "Invalid stock symbol", err, false)
	}

	if resp, ok := r.Cache.Get(symbol); ok {
		return resp, http.StatusOK
	}

	q, err := r.fetchQuote(ctx, symbol)
	if err != nil {
		kind := KindUpstream
		switch {
		case errors.Is(err, quote.ErrRateLimited):
			kind = KindRateLimited
		case errors.Is(err, quote.ErrMalformed):
			kind = KindUpstreamFormat
		case errors.Is(err, context.DeadlineExceeded):
			kind = KindTimeout
		}
		return r.fail(ctx, kind, symbol, fmt.Sprintf("Failed to fetch quote for %s", symbol), err, true)
	}
	if q.Empty() {
		return r.fail(ctx, KindSymbolNotFound, symbol, fmt.Sprintf("No data found for symbol %s", symbol), nil, false)
	}

	text := FormatMessage(q, r.now())
	if err := r.send(ctx, notify.Message{ChatID: r.Config.Telegram.ChatID, Text: text, Markdown: true}); err != nil {
		kind := KindNotification
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return r.fail(ctx, kind, symbol, fmt.Sprintf("Failed to send notification for %s", symbol), err, true)
	}

	resp := Response{
		Success: true,
		Message: fmt.Sprintf("Stock update for %s sent", symbol),
		Data: &Data{
			Symbol:        symbol,
			CurrentPrice:  q.Current,
			PercentChange: q.PercentChange,
			Timestamp:     quoteTimestamp(q, r.now()),
		},
	}
	r.Cache.Put(symbol, resp)
	return resp, http.StatusOK
}

func quoteTimestamp(q quote.Quote, processedAt time.Time) time.Time {
	if q.Timestamp.IsZero() {
		return processedAt.UTC()
	}
	return q.Timestamp
}

// fetchQuote applies the quote timeout and collapses concurrent fetches
// for the same symbol into one upstream call.
func (r *Relay) fetchQuote(ctx context.Context, symbol string) (quote.Quote, error) {
	v, err, _ := r.group.Do(symbol, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(r.Config.Finnhub.TimeoutMs)*time.Millisecond)
		defer cancel()
		return r.Quotes.Fetch(fetchCtx, symbol)
	})
	if err != nil {
		return quote.Quote{}, err
	}
	return v.(quote.Quote), nil
}

// send delivers the notification with per-attempt timeout and linear
// backoff. Retries apply to this call only, never to the quote fetch.
func (r *Relay) send(ctx context.Context, msg notify.Message) error {
	tg := r.Config.Telegram
	return retry.Do(ctx, tg.MaxAttempts, retry.Linear(time.Duration(tg.BackoffMs)*time.Millisecond), func(ctx context.Context) error {
		sendCtx, cancel := context.WithTimeout(ctx, time.Duration(tg.TimeoutMs)*time.Millisecond)
		defer cancel()
		return r.Notify.Send(sendCtx, msg)
	})
}

// fail builds the failure response and, when alert is set, reports the
// failure to the chat on a best-effort basis.
func (r *Relay) fail(ctx context.Context, kind Kind, symbol, message string, err error, alert bool) (Response, int) {
	if err != nil {
		log.Printf("relay: %s error: %v", kind, err)
	} else {
		log.Printf("relay: %s: %s", kind, message)
	}

	resp := Response{Success: false, Message: message}
	if err != nil && !r.Config.Production() {
		resp.Error = err.Error()
	}

	if alert && r.Notify != nil {
		r.alert(ctx, kind, symbol, err)
	}
	return resp, StatusFor(kind)
}

// alert sends a single-attempt error notification. Its own failures are
// logged and never escalate past this boundary.
func (r *Relay) alert(ctx context.Context, kind Kind, symbol string, err error) {
	text := fmt.Sprintf("⚠️ Quote relay %s error", kind)
	if symbol != "" {
		text += " for " + symbol
	}
	if err != nil {
		text += ": " + err.Error()
	}
	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Duration(r.Config.Telegram.TimeoutMs)*time.Millisecond)
	defer cancel()
	if sendErr := r.Notify.Send(alertCtx, notify.Message{ChatID: r.Config.Telegram.ChatID, Text: text}); sendErr != nil {
		log.Printf("relay: error alert failed: %v", sendErr)
	}
}
