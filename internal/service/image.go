package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/creativehub/backend/config"
)

// IImageService stores uploaded images and hands back opaque URL references.
// The domain store never inspects these beyond "non-empty string".
type IImageService interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}

// ImageService uploads portfolio and avatar images to S3.
type ImageService struct {
	s3Config *config.S3Config
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates an ImageService backed by the given S3 bucket.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadImage stores the image under a fresh key and returns its public URL.
func (s *ImageService) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	if contentType == "" {
		contentType = "image/png"
	}

	key := fmt.Sprintf("portfolio-images/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] uploaded image to %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
