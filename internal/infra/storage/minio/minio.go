// Package miniostore: объектное хранилище поверх MinIO (S3-совместимое API).
package miniostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	Timeout   time.Duration
}

type Storage struct {
	cl      *minio.Client
	bucket  string
	timeout time.Duration
	log     zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, timeout: cfg.Timeout, log: log}, nil
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Upload загружает поток целиком и возвращает URL объекта.
func (s *Storage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("upload failed")
		return "", fmt.Errorf("put object: %w", err)
	}
	s.log.Info().Str("key", key).Int64("size", info.Size).Dur("took", time.Since(start)).Msg("object uploaded")
	return s.cl.EndpointURL().JoinPath(s.bucket, key).String(), nil
}

// SignedUploadURL: Content-Type входит в подпись, клиент обязан прислать тот же.
func (s *Storage) SignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	h := http.Header{}
	h.Set("Content-Type", contentType)
	u, err := s.cl.PresignHeader(ctx, http.MethodPut, s.bucket, key, ttl, url.Values{}, h)
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return u.String(), nil
}

func (s *Storage) SignedDownloadURL(ctx context.Context, key string, ttl time.Duration, page int) (string, error) {
	u, err := s.cl.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return withPage(u.String(), page), nil
}

func (s *Storage) Stat(ctx context.Context, key string) (domain.ObjectInfo, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return domain.ObjectInfo{}, domain.ErrNotFound
		}
		return domain.ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}
	return domain.ObjectInfo{Key: info.Key, Size: info.Size, ContentType: info.ContentType}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	s.log.Debug().Str("key", key).Msg("object removed")
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("bucket " + s.bucket + " does not exist")
	}
	return nil
}

// withPage открывает PDF на нужной странице (фрагмент не входит в подпись)
func withPage(u string, page int) string {
	if page <= 0 || strings.Contains(u, "#") {
		return u
	}
	return fmt.Sprintf("%s#page=%d", u, page)
}

var _ domain.ObjectStorage = (*Storage)(nil)
