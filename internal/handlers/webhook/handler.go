package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/actions"
	"github.com/climabot/meteo-actions/internal/models"
	"github.com/climabot/meteo-actions/internal/services/metrics"
)

const actionTimeout = 10 * time.Second

// Handler receives action invocations from the conversational
// framework and dispatches them to the registry.
type Handler struct {
	registry *actions.Registry
	logger   zerolog.Logger
	m        *metrics.Metrics
}

func NewHandler(registry *actions.Registry, logger zerolog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger.With().Str("component", "WebhookHandler").Logger(),
		m:        m,
	}
}

// Run handles POST /webhook.
func (h *Handler) Run(c *gin.Context) {
	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.NextAction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "next_action is required"})
		return
	}

	action, ok := h.registry.Get(req.NextAction)
	if !ok {
		h.logger.Warn().
			Str("action", req.NextAction).
			Str("sender_id", req.Tracker.SenderID).
			Msg("unknown action requested")
		h.m.UnknownActionsTotal.Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action: " + req.NextAction})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), actionTimeout)
	defer cancel()

	start := time.Now()
	resp := action.Run(ctx, req.Tracker)
	h.m.ObserveActionRun(req.NextAction, time.Since(start))

	h.logger.Info().
		Str("action", req.NextAction).
		Str("sender_id", req.Tracker.SenderID).
		Int("messages", len(resp.Responses)).
		Dur("duration", time.Since(start)).
		Msg("action dispatched")

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "actions": h.registry.Names()})
}
