package storage

import (
	"context"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary holds the image-storage client. Configured from the
// CLOUDINARY_URL environment variable.
type Cloudinary struct {
	client *cloudinary.Cloudinary
}

func NewCloudinary() (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return nil, err
	}
	return &Cloudinary{client: cld}, nil
}

// Upload stores an image (base64 data URI or remote URL) and returns the
// durable secure URL for it.
func (c *Cloudinary) Upload(ctx context.Context, image string, params uploader.UploadParams) (string, error) {
	result, err := c.client.Upload.Upload(ctx, image, params)
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// Destroy removes the asset behind a previously returned URL.
func (c *Cloudinary) Destroy(ctx context.Context, imageURL string) error {
	_, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: PublicIDFromURL(imageURL),
	})
	return err
}

// PublicIDFromURL derives the asset identifier from a delivery URL: the
// final path segment with its extension stripped.
func PublicIDFromURL(imageURL string) string {
	segment := imageURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.LastIndex(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return segment
}
