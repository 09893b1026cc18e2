// Package cloudinary stores catalog images on Cloudinary and hands back the
// delivery URL. The catalog itself only ever persists URL strings.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Optimized delivery params for product and category images.
const (
	ImageWidth = 1200
	imageEager = "q_auto,f_auto,w_1200,c_limit"
)

var ErrNotConfigured = errors.New("cloudinary: credentials not configured")

// BuildOptimizedImageURL returns a delivery URL for an existing public ID.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_limit/%s",
		cloudName, width, publicID)
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Client uploads images through the Cloudinary upload API.
type Client struct {
	cloudName string
	api       uploadAPI
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (*Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{cloudName: cloudName, api: up}, nil
}

// UploadImage uploads an image into folder and returns its secure URL,
// preferring the optimized eager derivative when Cloudinary produced one.
func (c *Client) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	eagerAsync := false
	overwrite := false
	result, err := c.api.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
		Eager:        imageEager,
		EagerAsync:   &eagerAsync,
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		return result.Eager[0].SecureURL, nil
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return BuildOptimizedImageURL(c.cloudName, result.PublicID, ImageWidth), nil
}
