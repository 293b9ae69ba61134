package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadStore saves uploaded files to a local directory and serves them
// under a public URL prefix
type UploadStore struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewUploadStore creates an upload store backed by dir. Files are
// addressable under urlPrefix (e.g. "/uploads").
func NewUploadStore(dir, urlPrefix string, maxSize int64) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		maxSize:   maxSize,
	}, nil
}

// Dir returns the directory files are stored in
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save stores an uploaded image under a random filename and returns its
// public URL
func (s *UploadStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", header.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Delete removes a stored file given its public URL. URLs outside the
// store's prefix are ignored.
func (s *UploadStore) Delete(url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}

	name := filepath.Base(strings.TrimPrefix(url, s.urlPrefix+"/"))
	if name == "." || name == "/" || name == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}
