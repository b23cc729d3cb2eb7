package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ksriramreddy/procurement-ai/config"
)

const (
	s3Endpoint   = "s3.amazonaws.com"
	folderPrefix = "LYZR procurement"

	// DefaultPresignTTL is the presigned URL lifetime: 7 days.
	DefaultPresignTTL = 604800 * time.Second
)

type S3Service struct {
	client *minio.Client
	bucket string
}

// UploadResult carries the stored object key and a presigned retrieval URL.
type UploadResult struct {
	Key string `json:"s3_key"`
	URL string `json:"url"`
}

func NewS3Service(cfg *config.S3Config) (*S3Service, error) {
	client, err := minio.New(s3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Service{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload stores the file bytes under a namespaced key and returns the key
// plus a presigned retrieval URL. No retry on failure.
func (s *S3Service) Upload(ctx context.Context, data []byte, originalFilename, documentType string) (*UploadResult, error) {
	key := ObjectKey(originalFilename, documentType)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeForExt(filepath.Ext(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	url, err := s.PresignedURL(ctx, key, DefaultPresignTTL)
	if err != nil {
		return nil, err
	}

	return &UploadResult{Key: key, URL: url}, nil
}

// PresignedURL generates a time-limited retrieval URL for an existing key.
func (s *S3Service) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// ObjectKey builds the namespaced object key:
// <prefix>/<documentType>/<UTC timestamp>_<8 hex chars><ext>. The extension
// comes from the original filename; missing filenames default to .pdf.
func ObjectKey(originalFilename, documentType string) string {
	ext := ".pdf"
	if originalFilename != "" {
		ext = filepath.Ext(originalFilename)
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s/%s/%s_%s%s", folderPrefix, documentType, timestamp, suffix, ext)
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
