package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/belaycheck/internal/domain/belay"
	"github.com/yanqian/belaycheck/internal/domain/i18n"
	"github.com/yanqian/belaycheck/internal/domain/notice"
	"github.com/yanqian/belaycheck/internal/domain/pairs"
	"github.com/yanqian/belaycheck/internal/domain/session"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	belaySvc   belay.Service
	pairsSvc   pairs.Service
	noticeSvc  notice.Service
	sessionSvc session.Service
	localizer  i18n.Localizer
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	belaySvc belay.Service,
	pairsSvc pairs.Service,
	noticeSvc notice.Service,
	sessionSvc session.Service,
	localizer i18n.Localizer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		belaySvc:   belaySvc,
		pairsSvc:   pairsSvc,
		noticeSvc:  noticeSvc,
		sessionSvc: sessionSvc,
		localizer:  localizer,
		logger:     logger.With("component", "http.handler"),
	}
}

// Assess classifies a climber/belayer pair. The result is null until both
// weights are usable.
func (h *Handler) Assess(c *gin.Context) {
	var req belay.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		req.Language = string(requestLanguage(c))
	}

	resp, err := h.belaySvc.Assess(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Localize re-renders the text of an earlier result in another language.
func (h *Handler) Localize(c *gin.Context) {
	var req belay.LocalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		req.Language = string(requestLanguage(c))
	}

	view, err := h.belaySvc.Localize(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Devices lists the belay devices with their thresholds.
func (h *Handler) Devices(c *gin.Context) {
	lang, ok := queryLanguage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language": lang,
		"devices":  h.belaySvc.Devices(c.Request.Context(), lang),
	})
}

// Translations returns the UI dictionary for one language.
func (h *Handler) Translations(c *gin.Context) {
	lang, ok := queryLanguage(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language": lang,
		"strings":  h.localizer.Dictionary(lang),
	})
}

// Updates returns the release history, newest first.
func (h *Handler) Updates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"updates": h.noticeSvc.Changelog()})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func queryLanguage(c *gin.Context) (i18n.Language, bool) {
	raw := strings.TrimSpace(c.Query("lang"))
	if raw == "" {
		return requestLanguage(c), true
	}
	lang, ok := i18n.ParseLanguage(raw)
	if !ok {
		abortWithError(c, badRequest("lang must be en, ms or zh", nil))
		return "", false
	}
	return lang, true
}

func requestLanguage(c *gin.Context) i18n.Language {
	return i18n.DetectAcceptLanguage(c.GetHeader("Accept-Language"))
}
