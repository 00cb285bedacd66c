package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quoterelay/internal/quote"
)

// placeholder rendered for any numeric field the provider omitted.
const placeholder = "N/A"

// round2 renders v with exactly two decimals, rounding half away from zero.
func round2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// money renders a dollar amount, or the placeholder when absent.
func money(v *float64) string {
	if v == nil {
		return placeholder
	}
	return "$" + round2(*v)
}

// FormatMessage renders the Telegram text for a quote. It is a pure
// function of the quote and the processing time, which is only used when
// the provider supplied no timestamp.
func FormatMessage(q quote.Quote, processedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *%s Stock Update*\n\n", q.Symbol)
	fmt.Fprintf(&b, "💰 Price: %s\n", money(q.Current))

	// A nil percent change renders as the placeholder; zero is a real
	// value and renders as +0.00%.
	indicator := "📈"
	changeText := placeholder
	if q.PercentChange != nil {
		sign := ""
		if *q.PercentChange >= 0 {
			sign = "+"
		} else {
			indicator = "📉"
		}
		changeText = fmt.Sprintf("%s%s%%", sign, round2(*q.PercentChange))
	}
	deltaText := placeholder
	if q.Current != nil && q.PrevClose != nil {
		delta := decimal.NewFromFloat(*q.Current).Sub(decimal.NewFromFloat(*q.PrevClose))
		deltaText = "$" + delta.StringFixed(2)
	}
	fmt.Fprintf(&b, "%s Change: %s (%s)\n", indicator, changeText, deltaText)

	fmt.Fprintf(&b, "🔼 High: %s  🔽 Low: %s\n", money(q.High), money(q.Low))
	fmt.Fprintf(&b, "🌅 Open: %s  🌇 Prev Close: %s\n", money(q.Open), money(q.PrevClose))

	ts := q.Timestamp
	if ts.IsZero() {
		ts = processedAt
	}
	fmt.Fprintf(&b, "\n🕒 %s", ts.UTC().Format("Mon Jan 2 15:04:05 MST 2006"))

	// Heuristic only; the provider does not report market state.
	if q.Current != nil && q.PrevClose != nil && *q.Current == *q.PrevClose {
		b.WriteString("\n\n_Note: market may be closed (price equals previous close)_")
	}

	return b.String()
}
