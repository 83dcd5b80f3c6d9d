package domain

import (
	"context"
	"io"
	"time"
)

// Объектное хранилище (MinIO или AWS S3, выбирается конфигом)
type ObjectStorage interface {
	// Загрузка объекта, возвращает URL объекта
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Подписанная ссылка для загрузки клиентом напрямую (PUT)
	SignedUploadURL(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	// Подписанная ссылка на чтение; page > 0: открыть PDF на странице
	SignedDownloadURL(ctx context.Context, key string, ttl time.Duration, page int) (string, error)
	// Метаданные объекта; ErrNotFound если его нет
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}
