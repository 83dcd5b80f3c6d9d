package web

import (
	"net/http"

	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/BheruLalM/edustore-api/internal/docs"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/auth"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/chat"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/comment"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/doc"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/health"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/profile"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/social"
	"github.com/BheruLalM/edustore-api/internal/transport/web/v1/stats"
)

type Handlers struct {
	Health  *health.Handler
	Auth    *auth.Handler
	Docs    *doc.Handler
	Social  *social.Handler
	Comment *comment.Handler
	Profile *profile.Handler
	Chat    *chat.Handler
	Stats   *stats.Handler
}

func newRouter(h Handlers, authn mw.Authenticator, lat *mw.Latency, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// pub: токен необязателен, priv: без токена 401
	pub := func(f http.HandlerFunc) http.Handler { return mw.OptionalAuth(authn, f) }
	priv := func(f http.HandlerFunc) http.Handler { return mw.RequireAuth(authn, f) }

	// health
	mux.HandleFunc("GET /v1/healthz", h.Health.Liveness)
	mux.HandleFunc("GET /v1/readyz", h.Health.Readiness)
	mux.HandleFunc("GET /v1/stats", h.Stats.Latency)

	// auth
	mux.HandleFunc("POST /v1/auth/otp", h.Auth.RequestOTP)
	mux.HandleFunc("POST /v1/auth/otp/verify", h.Auth.VerifyOTP)
	mux.Handle("DELETE /v1/auth/session", priv(h.Auth.Logout))

	// documents
	mux.Handle("POST /v1/documents/upload-url", priv(h.Docs.UploadURL))
	mux.Handle("POST /v1/documents/commit", priv(h.Docs.Commit))
	mux.Handle("POST /v1/documents/upload", priv(h.Docs.Upload))
	mux.Handle("POST /v1/documents/posts", priv(h.Docs.CreatePost))
	mux.Handle("GET /v1/documents/{id}", pub(h.Docs.GetOne))
	mux.Handle("DELETE /v1/documents/{id}", priv(h.Docs.Delete))
	mux.Handle("GET /v1/documents/{id}/download", pub(h.Docs.Download))

	// likes, bookmarks, comments
	mux.Handle("POST /v1/documents/{id}/like", priv(h.Social.ToggleLike))
	mux.Handle("DELETE /v1/documents/{id}/like", priv(h.Social.Unlike))
	mux.Handle("GET /v1/documents/{id}/likes", pub(h.Social.LikeInfo))
	mux.Handle("GET /v1/documents/{id}/likers", pub(h.Social.Likers))
	mux.Handle("POST /v1/documents/{id}/bookmark", priv(h.Social.ToggleBookmark))
	mux.Handle("DELETE /v1/documents/{id}/bookmark", priv(h.Social.RemoveBookmark))
	mux.Handle("POST /v1/documents/{id}/comments", priv(h.Comment.Create))
	mux.Handle("GET /v1/documents/{id}/comments", pub(h.Comment.List))
	mux.Handle("DELETE /v1/comments/{id}", priv(h.Comment.Delete))

	// ленты
	mux.Handle("GET /v1/feed", pub(h.Docs.Feed))
	mux.Handle("GET /v1/feed/following", priv(h.Docs.Following))
	mux.Handle("GET /v1/search", pub(h.Docs.Search))
	mux.Handle("GET /v1/search/users", pub(h.Profile.SearchUsers))

	// users
	mux.Handle("GET /v1/users/{id}/documents", pub(h.Docs.UserDocuments))
	mux.Handle("GET /v1/users/{id}/profile", pub(h.Profile.Public))
	mux.Handle("POST /v1/users/{id}/follow", priv(h.Social.ToggleFollow))
	mux.Handle("DELETE /v1/users/{id}/follow", priv(h.Social.Unfollow))
	mux.Handle("GET /v1/users/{id}/follow", priv(h.Social.FollowStatus))
	mux.Handle("GET /v1/users/{id}/followers", pub(h.Social.Followers))
	mux.Handle("GET /v1/users/{id}/following", pub(h.Social.Following))

	// me
	mux.Handle("GET /v1/me", priv(h.Profile.Me))
	mux.Handle("PATCH /v1/me", priv(h.Profile.Update))
	mux.Handle("GET /v1/me/bookmarks", priv(h.Social.MyBookmarks))
	mux.Handle("POST /v1/me/avatar/upload-url", priv(h.Profile.AvatarUploadURL))
	mux.Handle("POST /v1/me/avatar/commit", priv(h.Profile.CommitAvatar))
	mux.Handle("DELETE /v1/me/avatar", priv(h.Profile.DeleteAvatar))

	// chat
	mux.Handle("POST /v1/chat/sync", priv(h.Chat.Sync))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger, lat)(mw.Recover(logger)(mux)))
}
