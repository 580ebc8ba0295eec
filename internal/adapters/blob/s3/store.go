// Package s3 guarda blobs en un bucket S3 o compatible (MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-shelter/internal/ports/blobstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // opcional, MinIO
	Prefix          string // opcional, p.ej. "contracts/"
	AccessKeyID     string // opcional; si falta se usa la cadena default de AWS
	SecretAccessKey string
	PathStyle       bool
	HTTPClient      *http.Client // opcional, tests
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Put es create-only: S3 no lo garantiza, así que se consulta HeadObject antes.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) (blobstore.Object, error) {
	k := s.prefix + key
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &k})
	switch {
	case err == nil:
		return blobstore.Object{}, fmt.Errorf("%s: %w", key, blobstore.ErrExists)
	case !isNotFound(err):
		return blobstore.Object{}, fmt.Errorf("s3 head %s: %w", key, err)
	}

	in := &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &k,
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return blobstore.Object{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return blobstore.Object{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(body)),
		StoredAt:    time.Now().UTC(),
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) (blobstore.Object, error) {
	k := s.prefix + key
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &k})
	if err != nil {
		if isNotFound(err) {
			return blobstore.Object{}, fmt.Errorf("%s: %w", key, blobstore.ErrNotFound)
		}
		return blobstore.Object{}, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return blobstore.Object{}, fmt.Errorf("s3 read %s: %w", key, err)
	}
	obj := blobstore.Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Size:        int64(len(body)),
		Body:        body,
		StoredAt:    aws.ToTime(out.LastModified),
	}
	return obj, nil
}

// isNotFound cubre HeadObject (404 sin cuerpo) y GetObject (NoSuchKey).
func isNotFound(err error) bool {
	var re interface{ HTTPStatusCode() int }
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
