package doc

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/service"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

type Documents interface {
	UploadURL(ctx context.Context, uid domain.UserID, contentType string) (service.UploadTicket, error)
	Commit(ctx context.Context, uid domain.UserID, in service.CommitInput) (service.DocumentDetail, error)
	Upload(ctx context.Context, uid domain.UserID, in service.UploadInput) (service.DocumentDetail, error)
	CreatePost(ctx context.Context, uid domain.UserID, in service.PostInput) (service.DocumentDetail, error)
	Delete(ctx context.Context, uid domain.UserID, id domain.DocID) error
	Detail(ctx context.Context, viewer domain.UserID, id domain.DocID) (service.DocumentDetail, error)
	DownloadURL(ctx context.Context, viewer domain.UserID, id domain.DocID, page int) (service.DownloadLink, error)

	PublicFeed(ctx context.Context, viewer domain.UserID, limit, offset int) (domain.FeedPage, error)
	FollowingFeed(ctx context.Context, viewer domain.UserID, limit, offset int) (domain.FeedPage, error)
	UserDocuments(ctx context.Context, viewer, owner domain.UserID, limit, offset int) (domain.FeedPage, error)
	Search(ctx context.Context, viewer domain.UserID, q string, limit, offset int) (domain.FeedPage, error)
}

type Handler struct {
	Log  zerolog.Logger
	Docs Documents

	MaxUploadBytes int64
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op, msg string, err error, kv ...any) {
	v1.Fail(h.Log, w, r, op, msg, err, kv...)
}
