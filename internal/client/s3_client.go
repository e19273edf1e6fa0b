package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Client is a client for interacting with an S3-compatible object store.
type S3Client struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
}

// NewS3Client creates a new S3Client. endpoint is optional and selects an
// S3-compatible store (minio and friends) with path-style addressing.
// publicURL is the base under which uploaded objects are served.
func NewS3Client(ctx context.Context, bucket, endpoint, publicURL string) (*S3Client, error) {
	// Load the AWS configuration from environment variables, shared config files, etc.
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})

	return &S3Client{
		s3Client:  s3Client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// UploadFile uploads a file to S3.
func (c *S3Client) UploadFile(ctx context.Context, key, contentType string, data io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   data,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := c.s3Client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// UploadImage stores an image under a collision-free key and returns its public URL.
func (c *S3Client) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	key := ImageKey(filename)
	if err := c.UploadFile(ctx, key, contentType, data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", c.publicURL, key), nil
}

// ImageKey prefixes the base filename with a uuid so uploads never overwrite each other.
func ImageKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "image"
	}
	return fmt.Sprintf("images/%s_%s", uuid.NewString(), base)
}
