package relay

import "net/http"

// Kind classifies a relay failure. The HTTP status for each kind lives in
// one table so call sites never pick statuses ad hoc.
type Kind int

const (
	KindConfiguration Kind = iota
	KindInvalidSymbol
	KindSymbolNotFound
	KindUpstream
	KindUpstreamFormat
	KindRateLimited
	KindTimeout
	KindNotification
)

var statusByKind = map[Kind]int{
	KindConfiguration:  http.StatusInternalServerError,
	KindInvalidSymbol:  http.StatusBadRequest,
	KindSymbolNotFound: http.StatusNotFound,
	KindUpstream:       http.StatusBadGateway,
	KindUpstreamFormat: http.StatusBadGateway,
	KindRateLimited:    http.StatusTooManyRequests,
	KindTimeout:        http.StatusGatewayTimeout,
	KindNotification:   http.StatusBadGateway,
}

// StatusFor maps a failure kind to its HTTP-equivalent status.
func StatusFor(k Kind) int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidSymbol:
		return "invalid symbol"
	case KindSymbolNotFound:
		return "symbol not found"
	case KindUpstream:
		return "upstream"
	case KindUpstreamFormat:
		return "upstream format"
	case KindRateLimited:
		return "rate limited"
	case KindTimeout:
		return "timeout"
	case KindNotification:
		return "notification delivery"
	default:
		return "unknown"
	}
}
