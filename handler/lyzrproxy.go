package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksriramreddy/procurement-ai/service"
)

// LyzrProxyHandler fronts the LYZR agent API so browsers avoid CORS issues
// and the API key stays server-side.
type LyzrProxyHandler struct {
	lyzr *service.LyzrService
}

func NewLyzrProxyHandler(lyzr *service.LyzrService) *LyzrProxyHandler {
	return &LyzrProxyHandler{lyzr: lyzr}
}

func (h *LyzrProxyHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/lyzr-proxy")
	g.GET("/sessions/:session_id/history", h.SessionHistory)
}

func (h *LyzrProxyHandler) SessionHistory(c *gin.Context) {
	history, err := h.lyzr.SessionHistory(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		var upstream *service.UpstreamStatusError
		switch {
		case errors.As(err, &upstream):
			c.JSON(upstream.StatusCode, gin.H{"detail": upstream.Body})
		case errors.Is(err, service.ErrGateway):
			c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, history)
}
