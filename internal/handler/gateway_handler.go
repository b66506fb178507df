// Package handler provides HTTP handlers for the gateway endpoints.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rachiee-x/farmassist-backend/internal/adapter"
	"github.com/Rachiee-x/farmassist-backend/internal/config"
	"github.com/Rachiee-x/farmassist-backend/internal/domain"
	"github.com/Rachiee-x/farmassist-backend/internal/prompt"
	"github.com/Rachiee-x/farmassist-backend/internal/security"
)

// GatewayHandler orchestrates the translate, chat and remedy endpoints:
// validate, build the prompt, call the provider, extract the answer.
type GatewayHandler struct {
	cfg        *config.Configuration
	text       adapter.Provider
	multimodal adapter.Provider
	logger     *slog.Logger
}

// GatewayHandlerOption is a functional option for configuring GatewayHandler.
type GatewayHandlerOption func(*GatewayHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) GatewayHandlerOption {
	return func(h *GatewayHandler) {
		h.logger = logger
	}
}

// NewGatewayHandler creates a new GatewayHandler backed by the given
// providers. The configuration is read-only after startup.
func NewGatewayHandler(
	cfg *config.Configuration,
	text adapter.Provider,
	multimodal adapter.Provider,
	opts ...GatewayHandlerOption,
) *GatewayHandler {
	h := &GatewayHandler{
		cfg:        cfg,
		text:       text,
		multimodal: multimodal,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type chatRequest struct {
	Message string        `json:"message"`
	History []domain.Turn `json:"history"`
}

type remedyRequest struct {
	DiseaseName string `json:"diseaseName"`
	ImageBase64 string `json:"imageBase64"`
	Lang        string `json:"lang"`
}

// HandleTranslate handles POST /api/translate.
// Terminal states: missing credential or missing text (400), provider
// rejection (502 with diagnostic body), transport failure (500), success
// (200 with the extracted translation or null).
func (h *GatewayHandler) HandleTranslate(c *gin.Context) {
	if !h.cfg.Providers.Text.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "translation is not configured: " + config.EnvTextProviderKey + " is missing",
		})
		return
	}

	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp, err := h.text.Generate(c.Request.Context(), prompt.Translate(req.Text, req.Target))
	if err != nil {
		var apiErr *adapter.APIError
		if errors.As(err, &apiErr) {
			h.logger.Error("translation provider rejected the call",
				slog.Int("status", apiErr.StatusCode),
				slog.String("body", apiErr.Body),
			)
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "translation provider rejected the request",
				"details": apiErr.Body,
			})
			return
		}

		h.logger.Error("translation call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "translation failed"})
		return
	}

	// No localized fallback on this path: an unrecognized response shape
	// surfaces as null and the caller sees an empty answer.
	var translated *string
	if answer, ok := domain.Extract(resp); ok {
		translated = &answer
	}

	c.JSON(http.StatusOK, gin.H{"translated": translated})
}

// HandleChat handles POST /api/chat.
// There is no credential gate before the field check on this path; an
// unconfigured provider surfaces through the call failing.
func (h *GatewayHandler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resp, err := h.multimodal.Generate(c.Request.Context(), prompt.Chat(req.Message, req.History))
	if err != nil {
		h.logger.Error("chat call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}

	var reply *string
	if answer, ok := domain.Extract(resp); ok {
		reply = &answer
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// HandleRemedy handles POST /api/remedy.
// At least one of diseaseName / imageBase64 must be present. An unrecognized
// response shape yields the fixed localized fallback instead of an error.
func (h *GatewayHandler) HandleRemedy(c *gin.Context) {
	if !h.cfg.Providers.Multimodal.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "remedy is not configured: " + config.EnvMultimodalProviderKey + " is missing",
		})
		return
	}

	var req remedyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diseaseName or imageBase64 is required"})
		return
	}

	h.logger.Info("remedy request",
		slog.String("disease", req.DiseaseName),
		slog.String("lang", req.Lang),
		slog.String("image", security.Truncate(req.ImageBase64)),
	)

	if req.DiseaseName == "" && req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diseaseName or imageBase64 is required"})
		return
	}

	resp, err := h.multimodal.Generate(c.Request.Context(), prompt.Remedy(req.DiseaseName, req.ImageBase64, req.Lang))
	if err != nil {
		h.logger.Error("remedy call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch remedy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"remedy": domain.ExtractOrFallback(resp, req.Lang)})
}

// HandleHealth handles GET /health.
// It reports which provider paths are configured without exposing keys.
func (h *GatewayHandler) HandleHealth(c *gin.Context) {
	translateReady := h.cfg.Providers.Text.Configured()
	chatRemedyReady := h.cfg.Providers.Multimodal.Configured()

	status := "healthy"
	if !translateReady || !chatRemedyReady {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"translate":  translateReady,
		"chat":       chatRemedyReady,
		"remedy":     chatRemedyReady,
		"text_model": h.cfg.Providers.Text.Model,
		"mm_model":   h.cfg.Providers.Multimodal.Model,
	})
}
