// Package file stores uploaded files behind a backend-agnostic Storage
// interface, with local filesystem and S3 implementations.
package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// File is the stored-file metadata returned by Save.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	RelativePath string
}

// Storage abstracts the upload backend.
type Storage interface {
	// Save stores an uploaded file under path and returns its metadata.
	Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error)
	// Delete removes a stored file.
	Delete(ctx context.Context, path string) error
	// Exists reports whether a stored file exists.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for a stored file.
	URL(path string) string
}

// allowedMIMETypes is the upload allow-list: images and common document
// formats, matching what the API accepts.
var allowedMIMETypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"image/svg+xml":      true,
	"application/pdf":    true,
	"text/plain":         true,
	"text/csv":           true,
	"application/json":   true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// MaxUploadSize caps a single upload at 16 MiB.
const MaxUploadSize = 16 << 20

// inspect opens the upload, enforces size and MIME limits, and returns
// the open file positioned at the start together with its metadata.
func inspect(fh *multipart.FileHeader) (multipart.File, *File, error) {
	if fh == nil {
		return nil, nil, ErrNilFileHeader
	}
	if fh.Size > MaxUploadSize {
		return nil, nil, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	// Sniff the MIME type from content rather than trusting the header.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		_ = src.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		_ = src.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	mimeType := http.DetectContentType(head[:n])
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if !allowedMIMETypes[mimeType] {
		_ = src.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mimeType)
	}

	meta := &File{
		Filename:  fh.Filename,
		Size:      fh.Size,
		MIMEType:  mimeType,
		Extension: strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), ".")),
	}
	return src, meta, nil
}

// cleanPath normalizes a storage path and rejects traversal attempts.
func cleanPath(path string) (string, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if path == "" {
		return "", ErrInvalidPath
	}

	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
