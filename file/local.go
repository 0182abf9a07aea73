package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores uploads on the local filesystem. All operations are
// confined to the base directory. Safe for concurrent use.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a local filesystem storage rooted at baseDir.
// baseURL is the public prefix under which files are served.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, path string) (*File, error) {
	cleaned, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	src, meta, err := inspect(fh)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	target := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(target)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	meta.RelativePath = cleaned
	return meta, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	cleaned, err := cleanPath(path)
	if err != nil {
		return err
	}

	target := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	cleaned, err := cleanPath(path)
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(s.baseDir, filepath.FromSlash(cleaned)))
	return err == nil && !info.IsDir()
}

func (s *LocalStorage) URL(path string) string {
	cleaned, err := cleanPath(path)
	if err != nil {
		return ""
	}
	return s.baseURL + cleaned
}
