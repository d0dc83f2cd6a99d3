package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"xclone/internal/core/apperr"
	objectstorePort "xclone/internal/ports/objectstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

var ErrUploadsDisabled = apperr.NewValidationError("img", "image uploads are not configured")

type Options struct {
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // S3-compatible endpoint, e.g. MinIO
	PublicBaseURL string
}

// S3ImageStore stores images in a bucket under <folder>/<uuid>.<ext>.
type S3ImageStore struct {
	client  *s3.Client
	opts    Options
	baseURL string
	logger  *zap.Logger
}

func NewS3ImageStore(ctx context.Context, opts Options, logger *zap.Logger) (*S3ImageStore, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStore{
		client:  client,
		opts:    opts,
		baseURL: publicBaseURL(opts),
		logger:  logger,
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, folder string, img *objectstorePort.Image) (string, error) {
	key := objectKey(folder, img.ContentType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Debug("Uploaded image", zap.String("key", key), zap.Int("bytes", len(img.Data)))
	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind url. URLs outside the bucket are ignored.
func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.baseURL, url)
	if !ok {
		s.logger.Debug("Skipping delete of foreign image", zap.String("url", url))
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func publicBaseURL(opts Options) string {
	switch {
	case opts.PublicBaseURL != "":
		return strings.TrimRight(opts.PublicBaseURL, "/")
	case opts.Endpoint != "":
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}

func objectKey(folder, contentType string) string {
	ext := strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexAny(ext, "+;"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	return folder + "/" + uuid.Must(uuid.NewV4()).String() + "." + ext
}

func keyFromURL(baseURL, url string) (string, bool) {
	key, ok := strings.CutPrefix(url, baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// DisabledImageStore is used when no bucket is configured.
type DisabledImageStore struct{}

func (DisabledImageStore) Upload(ctx context.Context, folder string, img *objectstorePort.Image) (string, error) {
	return "", ErrUploadsDisabled
}

func (DisabledImageStore) Delete(ctx context.Context, url string) error {
	return nil
}
