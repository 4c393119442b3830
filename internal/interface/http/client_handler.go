package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/belaycheck/internal/domain/pairs"
)

// OpenSession issues an anonymous client token.
func (h *Handler) OpenSession(c *gin.Context) {
	token, err := h.sessionSvc.Issue(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

// ListPairs returns the client's saved pairs, oldest first.
func (h *Handler) ListPairs(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	saved, err := h.pairsSvc.List(c.Request.Context(), clientID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pairs": saved})
}

// SavePair remembers the current form state.
func (h *Handler) SavePair(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	var req pairs.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	saved, err := h.pairsSvc.Save(c.Request.Context(), clientID, req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pairs": saved})
}

// ClearPairs forgets every saved pair of the client.
func (h *Handler) ClearPairs(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	if err := h.pairsSvc.Clear(c.Request.Context(), clientID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Notices reports which one-time notices the client still needs to see.
func (h *Handler) Notices(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	status, err := h.noticeSvc.Status(c.Request.Context(), clientID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// AcknowledgeUpdate hides the "what's new" notice until the next release.
func (h *Handler) AcknowledgeUpdate(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	if err := h.noticeSvc.AcknowledgeUpdate(c.Request.Context(), clientID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DismissInstallPrompt hides the install prompt for good.
func (h *Handler) DismissInstallPrompt(c *gin.Context) {
	clientID, ok := requireClientID(c)
	if !ok {
		return
	}
	if err := h.noticeSvc.DismissInstallPrompt(c.Request.Context(), clientID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireClientID(c *gin.Context) (string, bool) {
	claims, ok := getClaims(c)
	if !ok || claims.ClientID == "" {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, codeUnauthorized, "session required", nil))
		return "", false
	}
	return claims.ClientID, true
}
