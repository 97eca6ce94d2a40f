package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service

	// authEnabled gates the ?token= check; EventSource cannot set an
	// Authorization header, so the stream authenticates via query param.
	authEnabled bool
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service, authEnabled bool) EventsHandler {
	return &eventsHandlerImpl{
		hub:         hub,
		jwtService:  jwtService,
		authEnabled: authEnabled,
	}
}

// Stream implements EventsHandler: a long-lived SSE connection carrying
// snapshot_updated events so the UI surfaces stay in sync without polling.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	if h.authEnabled {
		if _, err := h.jwtService.ValidateAccessToken(r.URL.Query().Get("token")); err != nil {
			response.Unauthorized(w, "Invalid or missing token")
			return
		}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe()
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
