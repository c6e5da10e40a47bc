package handlers

import (
	"net/http"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/pkg/markup"
	"go.uber.org/zap"
)

// RenderRecorder records markup conversions
type RenderRecorder interface {
	Render(duration time.Duration, outputBytes int)
}

// RenderHandler converts assistant text to HTML without calling a model
type RenderHandler struct {
	base
	recorder RenderRecorder
}

// NewRenderHandler creates a new render handler. recorder may be nil.
func NewRenderHandler(recorder RenderRecorder, validator *security.Validator, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		base:     base{validator: validator, logger: logger.Named("render-api")},
		recorder: recorder,
	}
}

// RenderRequest carries raw assistant text
type RenderRequest struct {
	Text string `json:"text"`
}

// RenderResponse carries the rendered fragment
type RenderResponse struct {
	HTML string `json:"html"`
}

// Render handles POST /api/v1/render
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	start := time.Now()
	html := markup.Render(req.Text)
	if h.recorder != nil {
		h.recorder.Render(time.Since(start), len(html))
	}

	h.ok(w, http.StatusOK, RenderResponse{HTML: html}, "")
}
