package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
)

// SSEHandler streams session changes to attached dashboards, the way
// a second browser tab learns about a sign-in or sign-out elsewhere.
type SSEHandler struct {
	eventBus providers.EventBus
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{eventBus: eventBus}
}

// StreamSession handles GET /api/stream/session: events scoped to the
// caller's own session
func (h *SSEHandler) StreamSession(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		respondWithError(w, http.StatusUnauthorized, "session cookie is required")
		return
	}
	h.stream(w, r, providers.GetSessionChannel(sessionID))
}

// StreamAllSessions handles GET /api/stream/sessions: every session
// change on the gateway, for admin monitoring
func (h *SSEHandler) StreamAllSessions(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelSessions)
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("channel", channel).
			Msg("failed to subscribe to session channel")
		respondWithError(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"timestamp": time.Now(),
	})
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// sendEvent writes one SSE frame
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
