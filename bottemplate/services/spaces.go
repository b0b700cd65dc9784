// services/spaces.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// SpacesService stores frame artifacts in a DigitalOcean Space.
type SpacesService struct {
	client           *s3.Client
	bucket           string
	region           string
	framePrefix      string
	backgroundPrefix string
}

func NewSpacesService(ctx context.Context, spacesKey, spacesSecret, region, bucket, framePrefix, backgroundPrefix string) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesService{
		client:           s3.NewFromConfig(cfg),
		bucket:           bucket,
		region:           region,
		framePrefix:      strings.Trim(framePrefix, "/"),
		backgroundPrefix: strings.Trim(backgroundPrefix, "/"),
	}, nil
}

// PublicURL is the CDN-less address of an object.
func (s *SpacesService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

// BackgroundURL returns the image of a background id.
func (s *SpacesService) BackgroundURL(background int) string {
	return s.PublicURL(path.Join(s.backgroundPrefix, fmt.Sprintf("%d.png", background)))
}

// UploadFrame stores a rendered frame and returns its public URL.
func (s *SpacesService) UploadFrame(ctx context.Context, name string, png []byte) (string, error) {
	key := path.Join(s.framePrefix, name+".png")
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(png),
		ContentType:  aws.String("image/png"),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}
