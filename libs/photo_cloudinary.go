package libs

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStore uploads photos to Cloudinary and returns the secure URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore prefers the separate credentials and falls back to
// CLOUDINARY_URL.
func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.CloudName != "" && cfg.APIKey != "" && cfg.APISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	default:
		return nil, fmt.Errorf("cloudinary credentials not set")
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "technicians"
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: "technician_" + uuid.NewString(),
		Folder:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("cloudinary response is nil")
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", fmt.Errorf("cloudinary returned no URL")
}
