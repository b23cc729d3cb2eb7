package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ksriramreddy/procurement-ai/db"
	"github.com/ksriramreddy/procurement-ai/model"
	"github.com/ksriramreddy/procurement-ai/service"
)

// S3UploadHandler stores RFQ/RFP documents in object storage and records a
// message on the owning thread.
type S3UploadHandler struct {
	s3       *service.S3Service
	messages *mongo.Collection
}

func NewS3UploadHandler(s3 *service.S3Service, database *db.Mongo) *S3UploadHandler {
	return &S3UploadHandler{
		s3:       s3,
		messages: database.Messages(),
	}
}

func (h *S3UploadHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/s3-upload")
	g.POST("", h.Upload)
	g.GET("/presign", h.Presign)
}

func (h *S3UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}
	documentType := c.DefaultPostForm("document_type", "RFQ")
	threadID := c.PostForm("thread_id")
	if threadID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "thread_id is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	uploaded, err := h.s3.Upload(c.Request.Context(), data, file.Filename, documentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	message := model.MessageCreate{
		Message:    documentType + " Document",
		Attachment: []string{uploaded.URL},
		ThreadID:   threadID,
		Sender:     "customer",
	}
	result, err := h.messages.InsertOne(c.Request.Context(), message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	messageID := ""
	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		messageID = id.Hex()
	}

	c.JSON(http.StatusOK, gin.H{
		"s3_url":        uploaded.URL,
		"s3_key":        uploaded.Key,
		"message_id":    messageID,
		"thread_id":     threadID,
		"document_type": documentType,
	})
}

// Presign re-signs a previously stored object key.
func (h *S3UploadHandler) Presign(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "key query parameter is required"})
		return
	}

	url, err := h.s3.PresignedURL(c.Request.Context(), key, service.DefaultPresignTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"s3_key": key, "url": url})
}
