package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/service"
)

type stubLikes struct {
	Likes
	liked map[domain.DocID]bool
}

func (s *stubLikes) Toggle(_ context.Context, _ domain.UserID, id domain.DocID) (service.LikeState, error) {
	if id == 404 {
		return service.LikeState{}, domain.ErrDocumentNotFound
	}
	s.liked[id] = !s.liked[id]
	n := int64(0)
	if s.liked[id] {
		n = 1
	}
	return service.LikeState{DocumentID: id, IsLiked: s.liked[id], LikeCount: n}, nil
}

func (s *stubLikes) Likers(_ context.Context, _ domain.UserID, id domain.DocID, limit, offset int) (domain.UserPage, error) {
	return domain.UserPage{Items: []domain.UserBrief{{ID: 7}}, Total: 1, Limit: limit, Offset: offset}, nil
}

type stubFollows struct {
	Follows
}

func (stubFollows) Toggle(_ context.Context, uid, target domain.UserID) (service.FollowState, error) {
	if uid == target {
		return service.FollowState{}, domain.ErrCannotFollowSelf
	}
	return service.FollowState{UserID: target, IsFollowing: true}, nil
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/documents/{id}/like", h.ToggleLike)
	mux.HandleFunc("GET /v1/documents/{id}/likers", h.Likers)
	mux.HandleFunc("POST /v1/users/{id}/follow", h.ToggleFollow)
	return mux
}

func do(mux http.Handler, method, target string, uid domain.UserID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if uid != 0 {
		req = req.WithContext(domain.WithUser(req.Context(), domain.AuthUser{ID: uid}))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestToggleLike(t *testing.T) {
	mux := newMux(&Handler{Log: zerolog.Nop(), Likes: &stubLikes{liked: map[domain.DocID]bool{}}})

	rec := do(mux, http.MethodPost, "/v1/documents/5/like", 1)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_liked":true`)

	rec = do(mux, http.MethodPost, "/v1/documents/5/like", 1)
	assert.Contains(t, rec.Body.String(), `"is_liked":false`)

	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPost, "/v1/documents/404/like", 1).Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/v1/documents/abc/like", 1).Code)
	assert.Equal(t, http.StatusUnauthorized, do(mux, http.MethodPost, "/v1/documents/5/like", 0).Code)
}

func TestLikersPaging(t *testing.T) {
	mux := newMux(&Handler{Log: zerolog.Nop(), Likes: &stubLikes{}})

	rec := do(mux, http.MethodGet, "/v1/documents/5/likers?limit=10&offset=20", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"limit":10`)
	assert.Contains(t, rec.Body.String(), `"offset":20`)

	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodGet, "/v1/documents/5/likers?limit=-1", 0).Code)
}

func TestToggleFollowSelf(t *testing.T) {
	mux := newMux(&Handler{Log: zerolog.Nop(), Follows: stubFollows{}})

	rec := do(mux, http.MethodPost, "/v1/users/3/follow", 3)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "FOLLOW.CANNOT_FOLLOW_SELF")

	rec = do(mux, http.MethodPost, "/v1/users/4/follow", 3)
	assert.Equal(t, http.StatusOK, rec.Code)
}
