// Package storage uploads listing photos to an S3-compatible bucket (AWS S3 or Cloudflare R2).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"rentapp_backend/pkg/config"
)

var (
	ErrNotConfigured = errors.New("object storage is not configured")
	ErrAccessDenied  = errors.New("object storage rejected the credentials")
	ErrUpstream      = errors.New("object storage request failed")
)

// credentialCodes are the S3 API error codes that mean the bucket refused our identity.
var credentialCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
}

// ObjectStore is what the upload and photo endpoints need from a bucket.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	OwnsURL(url string) bool
}

type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

// New builds a client from static credentials. An endpoint switches the client
// to path-style addressing for R2 and other S3-compatible services.
func New(ctx context.Context, cfg config.StorageConfig, optFns ...func(*s3.Options)) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		// uploads are never retried
		o.RetryMaxAttempts = 1
		for _, fn := range optFns {
			fn(o)
		}
	})

	return &Client{
		s3:        client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}, nil
}

func publicBase(cfg config.StorageConfig) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimSuffix(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// ObjectKey lays uploads out as uploads/<user>/<unixnano>-<uuid>.<ext>.
func ObjectKey(username, ext string) string {
	owner := slug.Make(username)
	if owner == "" {
		owner = "anonymous"
	}
	name := fmt.Sprintf("%d-%s.%s", time.Now().UnixNano(), uuid.New().String(), strings.TrimPrefix(ext, "."))
	return path.Join("uploads", owner, name)
}

func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classify("could not upload file", err)
	}
	return c.publicURL + "/" + key, nil
}

func (c *Client) Delete(ctx context.Context, url string) error {
	if !c.OwnsURL(url) {
		return fmt.Errorf("url %q is outside bucket %s", url, c.bucket)
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.keyFromURL(url)),
	})
	if err != nil {
		return classify("could not delete file", err)
	}
	return nil
}

// OwnsURL reports whether url was produced by this client's Upload.
func (c *Client) OwnsURL(url string) bool {
	return strings.HasPrefix(url, c.publicURL+"/") && c.keyFromURL(url) != ""
}

func (c *Client) keyFromURL(url string) string {
	return strings.TrimPrefix(url, c.publicURL+"/")
}

func classify(action string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && credentialCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%w: %s: %s", ErrAccessDenied, action, apiErr.ErrorCode())
	}
	return fmt.Errorf("%w: %s: %v", ErrUpstream, action, err)
}
