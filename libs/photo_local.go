package libs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes photos under dir and serves them from urlPrefix, which
// routes mounts as a static directory.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return path.Join(s.urlPrefix, filename), nil
}
