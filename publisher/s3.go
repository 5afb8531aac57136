package publisher

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aspkit/asppack/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const s3Publisher = "s3"

// S3Store uploads packages to an S3-compatible bucket, creating the bucket
// on the first upload when it is missing.
type S3Store struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	bucketOnce sync.Once
	bucketErr  error
}

func NewS3Store(cfg config.PublishConfig) (*S3Store, error) {
	required := []struct {
		name  string
		value string
	}{
		{"endpoint", cfg.Endpoint},
		{"access key", cfg.AccessKey},
		{"secret key", cfg.SecretKey},
		{"bucket", cfg.Bucket},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("publish %s is required", r.name)
		}
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = config.Default().Publish.Region
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init s3 client")
	}
	return &S3Store{
		client: client,
		bucket: strings.TrimSpace(cfg.Bucket),
		region: region,
		prefix: cfg.Prefix,
	}, nil
}

func (s *S3Store) Name() string {
	return s3Publisher
}

func (s *S3Store) Bucket() string {
	return s.bucket
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.bucketOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err == nil && !exists {
			err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
		}
		s.bucketErr = err
	})
	return s.bucketErr
}

func (s *S3Store) Publish(ctx context.Context, pkg Package) error {
	if strings.TrimSpace(pkg.Name) == "" {
		return fmt.Errorf("package name is required")
	}
	if pkg.Content == nil {
		return fmt.Errorf("package %s has no content", pkg.Name)
	}
	if err := s.ensureBucket(ctx); err != nil {
		return errors.Wrapf(err, "bucket %s", s.bucket)
	}

	key := ObjectKey(s.prefix, pkg.Version, pkg.Name)
	_, err := s.client.PutObject(ctx, s.bucket, key, pkg.Content, pkg.Size, minio.PutObjectOptions{
		ContentType: ContentType(pkg.Name),
	})
	return errors.Wrapf(err, "upload %s", key)
}
