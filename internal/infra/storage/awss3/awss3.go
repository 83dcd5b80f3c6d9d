// Package awss3: объектное хранилище поверх AWS S3 (aws-sdk-go-v2).
package awss3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Config struct {
	Endpoint  string // пусто: стандартный эндпоинт AWS
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PathStyle bool
	Timeout   time.Duration
}

type Storage struct {
	cl       *s3.Client
	presign  *s3.PresignClient
	uploader *manager.Uploader
	bucket   string
	timeout  time.Duration
	log      zerolog.Logger
}

func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	cl := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Storage{
		cl:       cl,
		presign:  s3.NewPresignClient(cl),
		uploader: manager.NewUploader(cl),
		bucket:   cfg.Bucket,
		timeout:  cfg.Timeout,
		log:      log,
	}, nil
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Upload идёт через manager.Uploader: большие файлы уходят multipart-ом.
func (s *Storage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	start := time.Now()
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("upload failed")
		return "", fmt.Errorf("upload: %w", err)
	}
	s.log.Info().Str("key", key).Int64("size", size).Dur("took", time.Since(start)).Msg("object uploaded")
	return out.Location, nil
}

func (s *Storage) SignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

func (s *Storage) SignedDownloadURL(ctx context.Context, key string, ttl time.Duration, page int) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	if page > 0 {
		return fmt.Sprintf("%s#page=%d", req.URL, page), nil
	}
	return req.URL, nil
}

func (s *Storage) Stat(ctx context.Context, key string) (domain.ObjectInfo, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	out, err := s.cl.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var (
			nf  *types.NotFound
			nsk *types.NoSuchKey
		)
		if errors.As(err, &nf) || errors.As(err, &nsk) {
			return domain.ObjectInfo{}, domain.ErrNotFound
		}
		return domain.ObjectInfo{}, fmt.Errorf("head object: %w", err)
	}
	return domain.ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.cl.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	s.log.Debug().Str("key", key).Msg("object removed")
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.cl.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

var _ domain.ObjectStorage = (*Storage)(nil)
