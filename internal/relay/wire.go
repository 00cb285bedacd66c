package relay

import (
	"net/http"
	"time"

	"quoterelay/internal/config"
	"quoterelay/internal/httpx"
	"quoterelay/internal/notify/telegram"
	"quoterelay/internal/quote/finnhub"
)

// FromConfig wires the quote provider, the notifier and the cache from
// config. A missing bot token leaves the notifier nil so requests still
// get a configuration error response instead of a startup crash.
func FromConfig(cfg config.Config, httpClient *httpx.Client) (*Relay, error) {
	fhOpts := []finnhub.ClientOption{
		finnhub.WithHTTPClient(httpClient.HTTP),
		finnhub.WithHeader(http.Header{
			"User-Agent": []string{httpClient.UserAgent},
		}),
	}
	if cfg.Finnhub.Endpoint != "" {
		fhOpts = append(fhOpts, finnhub.WithBaseURL(cfg.Finnhub.Endpoint))
	}
	quotes, err := finnhub.NewClient(cfg.Finnhub.APIKey, fhOpts...)
	if err != nil {
		return nil, err
	}

	r := &Relay{
		Config: cfg,
		Quotes: quotes,
		Cache:  NewCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second),
	}

	if cfg.Telegram.BotToken != "" {
		tgOpts := []telegram.ClientOption{telegram.WithHTTPClient(httpClient.HTTP)}
		if cfg.Telegram.Endpoint != "" {
			tgOpts = append(tgOpts, telegram.WithBaseURL(cfg.Telegram.Endpoint))
		}
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, tgOpts...)
		if err != nil {
			return nil, err
		}
		r.Notify = notifier
	}
	return r, nil
}
