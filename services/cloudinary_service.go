package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrImagesDisabled is returned when Cloudinary credentials are not configured.
var ErrImagesDisabled = errors.New("image upload is not configured")

// ImageStore stores product photos.
type ImageStore interface {
	UploadProductImage(ctx context.Context, file io.Reader, productID string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryService(cfg config.CloudinaryConfig) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld, folder: cfg.Folder}, nil
}

// UploadProductImage uploads one photo and returns the secure URL. Each product
// keeps a single image, so the public id is the product id and re-uploads
// overwrite it.
func (s *CloudinaryService) UploadProductImage(ctx context.Context, file io.Reader, productID string) (string, error) {
	overwrite := true
	unique := false
	uploadParams := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       ProductImagePublicID(productID),
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload successful but no URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary using its public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: path.Join(s.folder, publicID),
	})
	return err
}

// ProductImagePublicID makes a product id safe for use as a Cloudinary id.
func ProductImagePublicID(productID string) string {
	return strings.ToLower(strings.NewReplacer(" ", "-", "/", "-").Replace(strings.TrimSpace(productID)))
}

var imageStore ImageStore

// InitImageStore wires Cloudinary when credentials are present.
func InitImageStore(cfg config.CloudinaryConfig) error {
	if cfg.CloudName == "" {
		config.Log.Warn("[cloudinary] cloud_name not set, product image upload disabled")
		return nil
	}
	svc, err := NewCloudinaryService(cfg)
	if err != nil {
		return err
	}
	imageStore = svc
	config.Log.Info("[cloudinary] image store initialised")
	return nil
}

// SetImageStore replaces the global image store.
func SetImageStore(s ImageStore) {
	imageStore = s
}

// GetImageStore returns the configured store or ErrImagesDisabled.
func GetImageStore() (ImageStore, error) {
	if imageStore == nil {
		return nil, ErrImagesDisabled
	}
	return imageStore, nil
}
