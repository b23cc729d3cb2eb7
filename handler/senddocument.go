package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksriramreddy/procurement-ai/pkg/logger"
	"github.com/ksriramreddy/procurement-ai/service"
)

type SendDocumentHandler struct {
	svc *service.SendDocumentService
}

func NewSendDocumentHandler(svc *service.SendDocumentService) *SendDocumentHandler {
	return &SendDocumentHandler{svc: svc}
}

func (h *SendDocumentHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/send-document")
	g.PUT("", h.Send)
}

// Send fans an RFQ/RFP out to a vendor batch. The batch is not transactional:
// a failure aborts it, but earlier vendors' writes stay committed.
func (h *SendDocumentHandler) Send(c *gin.Context) {
	var req service.SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	logger.Info(ctx, "send-document batch received",
		"vendors", len(req.Vendors),
		"document_type", req.DocumentType,
	)

	resp, err := h.svc.Send(ctx, &req)
	if err != nil {
		logger.Error(ctx, "send-document batch aborted", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	logger.Info(ctx, "send-document batch completed",
		"created", len(resp.CreatedVendors),
		"updated", len(resp.UpdatedVendors),
	)
	c.JSON(http.StatusOK, resp)
}
