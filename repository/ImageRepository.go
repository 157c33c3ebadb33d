package repository

import (
	"context"
	"errors"
	"io"
	"log"

	"storegate/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Product images live on an external host; only the returned URL is kept.
type ImageRepository interface {
	UploadImage(ctx context.Context, file io.Reader) (url string, err error)
}

type CloudinaryRepo struct {
	cld *cloudinary.Cloudinary
}

func NewImageRepository(cloudURL string) (ImageRepository, error) {
	if cloudURL == "" {
		return nil, errors.New("cloudURL must be non-empty")
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryRepo{cld: cld}, nil
}

func (r *CloudinaryRepo) UploadImage(ctx context.Context, file io.Reader) (url string, err error) {
	res, err := r.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: "products"})
	if err != nil {
		log.Printf("UploadImage: %v", err)
		err = models.ErrServerError
		return
	}
	url = res.SecureURL
	if url == "" {
		url = res.URL
	}
	return
}
