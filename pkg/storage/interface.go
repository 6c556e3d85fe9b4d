package storage

import (
	"context"
	"io"
	"time"
)

// StorageProvider holds campaign/partner images, coupon QR codes and
// generated donation reports.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Download(ctx context.Context, key string) (*DownloadResponse, error)
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	FileExists(ctx context.Context, key string) (bool, error)
}

type UploadRequest struct {
	Key         string            `json:"key"`
	Reader      io.Reader         `json:"-"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata"`
}

type UploadResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	ETag     string `json:"etag"`
	Location string `json:"location"`
}

type DownloadResponse struct {
	Reader       io.ReadCloser `json:"-"`
	Size         int64         `json:"size"`
	ContentType  string        `json:"content_type"`
	LastModified time.Time     `json:"last_modified"`
	ETag         string        `json:"etag"`
}
