// package storage stores uploaded files (resumes, profile pictures) and
// returns public URLs for them. The service layer depends only on the
// Uploader contract; upload failures are surfaced, never retried.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a2sv-g68/admissions-service/internal/config"
	"github.com/google/uuid"
)

type Uploader interface {
	Upload(filename string, content io.Reader) (string, error)
}

// LocalUploader writes files under a directory served as static content.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(cfg config.Storage) (*LocalUploader, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &LocalUploader{dir: cfg.UploadDir, baseURL: cfg.BaseURL}, nil
}

// Upload saves the content under a random-prefixed name and returns the
// public URL. A failed write cleans up the partial file best-effort.
func (u *LocalUploader) Upload(filename string, content io.Reader) (string, error) {
	stored := uuid.NewString() + "_" + filepath.Base(filename)
	path := filepath.Join(u.dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return u.baseURL + "/" + stored, nil
}
