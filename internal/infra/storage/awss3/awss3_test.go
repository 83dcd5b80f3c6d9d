package awss3

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignedURLs(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, Config{
		Endpoint: "http://localhost:9000", Region: "eu-central-1", Bucket: "docs",
		AccessKey: "key", SecretKey: "secret", PathStyle: true,
	}, zerolog.Nop())
	require.NoError(t, err)

	get, err := s.SignedDownloadURL(ctx, "users/1/documents/a.pdf", time.Hour, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(get, "http://localhost:9000/docs/users/1/documents/a.pdf?"))
	assert.Contains(t, get, "X-Amz-Expires=3600")

	paged, err := s.SignedDownloadURL(ctx, "users/1/documents/a.pdf", time.Hour, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(paged, "#page=2"))

	put, err := s.SignedUploadURL(ctx, "users/1/documents/a.pdf", "application/pdf", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, put, "X-Amz-Expires=600")
}
