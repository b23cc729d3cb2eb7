package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler persists files to local disk and serves them back. The
// object-store path is handled separately by S3UploadHandler.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

func (h *UploadHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/upload")
	g.POST("", h.Upload)
	g.GET("/files/:filename", h.GetFile)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	ext := filepath.Ext(file.Filename)
	savedName := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(h.dir, savedName)

	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename":   file.Filename,
		"saved_name": savedName,
		"url":        "/api/upload/files/" + savedName,
		"size":       file.Size,
	})
}

func (h *UploadHandler) GetFile(c *gin.Context) {
	filename := c.Param("filename")
	// Reject anything that could escape the upload directory
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid filename"})
		return
	}

	path := filepath.Join(h.dir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"detail": "File not found"})
		return
	}
	c.File(path)
}
