package quote

import (
	"context"
	"errors"
	"time"
)

// Quote is the normalized snapshot returned by all providers.
// Price fields are pointers so an absent upstream field is distinguishable
// from a genuine zero; PercentChange in particular is only "missing" when
// nil, never when zero.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Current       *float64  `json:"current"`
	High          *float64  `json:"high"`
	Low           *float64  `json:"low"`
	Open          *float64  `json:"open"`
	PrevClose     *float64  `json:"prev_close"`
	PercentChange *float64  `json:"percent_change"`
	Timestamp     time.Time `json:"timestamp"`
}

// Empty reports whether the provider returned the "no such symbol" shape:
// a current price of exactly zero with no percent change.
func (q Quote) Empty() bool {
	return (q.Current == nil || *q.Current == 0) && q.PercentChange == nil
}

type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (Quote, error)
}

var (
	// ErrRateLimited is returned when the provider answers with a
	// rate-limit status. Callers must not retry.
	ErrRateLimited = errors.New("quote provider rate limited")
	// ErrMalformed is returned when the provider body does not decode
	// into the expected quote shape.
	ErrMalformed = errors.New("malformed quote response")
)
