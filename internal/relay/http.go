package relay

import (
	"encoding/json"
	"net/http"
)

// postBody is the JSON shape accepted on POST.
type postBody struct {
	Symbol string `json:"symbol"`
}

// HTTPHandler adapts the relay to net/http. CORS headers and the
// OPTIONS short-circuit are applied by the middleware in cmd/server.
func (r *Relay) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var symbol string
		switch req.Method {
		case http.MethodGet:
			symbol = req.URL.Query().Get("symbol")
		case http.MethodPost:
			symbol = req.URL.Query().Get("symbol")
			if symbol == "" && req.Body != nil {
				var b postBody
				if err := json.NewDecoder(req.Body).Decode(&b); err == nil {
					symbol = b.Symbol
				}
			}
		default:
			writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
			return
		}

		resp, status := r.Handle(req.Context(), symbol)
		writeJSON(w, status, resp)
	})
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
