package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedImage = errors.New("formato de imagen no soportado. Solo .png, .jpg, .jpeg, .gif, .webp")
	ErrImageTooLarge    = errors.New("imagen demasiado grande")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PhotoStore persists a profile photo and returns the URL clients use to
// fetch it.
type PhotoStore interface {
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
}

// ImageExtension validates an uploaded file's name and size and returns its
// lower-cased extension.
func ImageExtension(header *multipart.FileHeader, maxSize int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", ErrUnsupportedImage
	}
	if maxSize > 0 && header.Size > maxSize {
		return "", fmt.Errorf("%w (max %d MB)", ErrImageTooLarge, maxSize>>20)
	}
	return ext, nil
}
