package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func TestLikeToggleSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	fan := f.repo.addUser("fan@example.com")
	doc := f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	likes := NewLikes(f.deps)

	st, err := likes.Toggle(ctx, fan.ID, doc.ID)
	require.NoError(t, err)
	assert.True(t, st.IsLiked)
	assert.EqualValues(t, 1, st.LikeCount)

	st, err = likes.Toggle(ctx, fan.ID, doc.ID)
	require.NoError(t, err)
	assert.False(t, st.IsLiked)
	assert.EqualValues(t, 0, st.LikeCount)

	st, err = likes.Toggle(ctx, fan.ID, doc.ID)
	require.NoError(t, err)
	assert.True(t, st.IsLiked)
	assert.EqualValues(t, 1, st.LikeCount)
}

func TestLikeRefreshesFeedHydration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	fan := f.repo.addUser("fan@example.com")
	doc := f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	docs := NewDocuments(f.deps, DocsConfig{})
	likes := NewLikes(f.deps)

	// прогреваем базовую страницу и множество лайков
	page, err := docs.PublicFeed(ctx, fan.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.Items[0].IsLiked)

	_, err = likes.Toggle(ctx, fan.ID, doc.ID)
	require.NoError(t, err)

	page, err = docs.PublicFeed(ctx, fan.ID, 10, 0)
	require.NoError(t, err)
	assert.True(t, page.Items[0].IsLiked)

	// у другого пользователя лайка нет
	page, err = docs.PublicFeed(ctx, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.False(t, page.Items[0].IsLiked)
}

func TestLikePrivateDocumentDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	other := f.repo.addUser("other@example.com")
	doc := f.repo.addDoc(owner.ID, domain.VisibilityPrivate)

	_, err := NewLikes(f.deps).Toggle(ctx, other.ID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentAccessDenied)
}

func TestUnlikeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	doc := f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	likes := NewLikes(f.deps)

	st, err := likes.Unlike(ctx, owner.ID, doc.ID)
	require.NoError(t, err)
	assert.False(t, st.IsLiked)

	_, err = likes.Toggle(ctx, owner.ID, doc.ID)
	require.NoError(t, err)
	info, err := likes.Info(ctx, owner.ID, doc.ID)
	require.NoError(t, err)
	assert.True(t, info.IsLiked)

	likers, err := likes.Likers(ctx, 0, doc.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likers.Total)
	assert.Equal(t, 20, likers.Limit)
}

func TestBookmarksToggleAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	reader := f.repo.addUser("reader@example.com")
	doc := f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	bm := NewBookmarks(f.deps)

	page, err := bm.List(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	st, err := bm.Toggle(ctx, reader.ID, doc.ID)
	require.NoError(t, err)
	assert.True(t, st.IsBookmarked)

	page, err = bm.List(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsBookmarked)
	assert.NotNil(t, page.Items[0].BookmarkedAt)

	st, err = bm.Toggle(ctx, reader.ID, doc.ID)
	require.NoError(t, err)
	assert.False(t, st.IsBookmarked)

	page, err = bm.List(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = bm.List(ctx, 0, 10, 0)
	assert.ErrorIs(t, err, domain.ErrUnauth)
}

func TestFollowToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.repo.addUser("a@example.com")
	b := f.repo.addUser("b@example.com")
	follows := NewFollows(f.deps)

	_, err := follows.Toggle(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrCannotFollowSelf)

	_, err = follows.Toggle(ctx, a.ID, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	st, err := follows.Status(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, st.IsFollowing)

	st, err = follows.Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, st.IsFollowing)

	// множество подписок сброшено и перечитано
	st, err = follows.Status(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, st.IsFollowing)

	followers, err := follows.Followers(ctx, b.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers.Items, 1)
	assert.Equal(t, a.ID, followers.Items[0].ID)

	st, err = follows.Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, st.IsFollowing)

	following, err := follows.Following(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, following.Items)
}

func TestFollowingFeedSeesNewFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.repo.addUser("a@example.com")
	b := f.repo.addUser("b@example.com")
	f.repo.addDoc(b.ID, domain.VisibilityPublic)
	docs := NewDocuments(f.deps, DocsConfig{})

	page, err := docs.FollowingFeed(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = NewFollows(f.deps).Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)

	page, err = docs.FollowingFeed(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
