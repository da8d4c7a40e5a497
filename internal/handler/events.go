package handler

import (
	"fmt"
	"net/http"
)

// Events streams store change notifications as server-sent events so clients
// can re-fetch when another session mutates a record.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case table, open := <-ch:
			if !open {
				return
			}
			if table == "" {
				table = "all"
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", table)
			flusher.Flush()
		}
	}
}
