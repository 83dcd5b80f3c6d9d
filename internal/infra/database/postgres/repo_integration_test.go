//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func setupRepo(t *testing.T) *PGRepo {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("edustore"),
		tcpostgres.WithUsername("edustore"),
		tcpostgres.WithPassword("edustore"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := NewPGRepo(ctx, zerolog.Nop(), dsn, "public", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	return repo
}

func strp(s string) *string { return &s }

func TestRepoIntegration(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice, err := repo.UpsertVerifiedUser(ctx, "alice@college.edu")
	require.NoError(t, err)
	bob, err := repo.UpsertVerifiedUser(ctx, "bob@college.edu")
	require.NoError(t, err)

	again, err := repo.UpsertVerifiedUser(ctx, "alice@college.edu")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, again.ID)

	key := "users/1/documents/abc.pdf"
	pub, err := repo.CreateDoc(ctx, domain.Document{
		OwnerID: alice.ID, Title: "Linear algebra", DocType: domain.DocTypePDF, ObjectKey: &key,
		ContentType: "application/pdf", Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	dup, err := repo.CreateDoc(ctx, domain.Document{
		OwnerID: alice.ID, Title: "Linear algebra", DocType: domain.DocTypePDF, ObjectKey: &key,
		ContentType: "application/pdf", Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)
	assert.Equal(t, pub.ID, dup.ID)

	priv, err := repo.CreateDoc(ctx, domain.Document{
		OwnerID: alice.ID, Title: "diary", DocType: domain.DocTypePost, Content: strp("secret"),
		ContentType: "text/plain", Visibility: domain.VisibilityPrivate,
	})
	require.NoError(t, err)

	t.Run("likes", func(t *testing.T) {
		require.NoError(t, repo.InsertLike(ctx, bob.ID, pub.ID))
		assert.ErrorIs(t, repo.InsertLike(ctx, bob.ID, pub.ID), domain.ErrConflict)

		n, err := repo.LikeCount(ctx, pub.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		ids, err := repo.LikedDocIDs(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []domain.DocID{pub.ID}, ids)

		likers, total, err := repo.Likers(ctx, pub.ID, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, likers, 1)
		assert.Equal(t, bob.ID, likers[0].ID)
	})

	t.Run("feeds", func(t *testing.T) {
		items, total, err := repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedPublic, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.EqualValues(t, 1, items[0].LikeCount)

		items, total, err = repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedUserDocs, OwnerID: alice.ID, IncludePrivate: true, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, priv.ID, items[0].ID)

		_, total, err = repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedPublic, Limit: 20, Offset: 40})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		items, _, err = repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedSearch, Search: "algebra", Limit: 20})
		require.NoError(t, err)
		require.Len(t, items, 1)

		require.NoError(t, repo.InsertFollow(ctx, bob.ID, alice.ID))
		items, _, err = repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedFollowing, ViewerID: bob.ID, Limit: 20})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, pub.ID, items[0].ID)

		require.NoError(t, repo.InsertBookmark(ctx, bob.ID, pub.ID))
		items, _, err = repo.ListFeed(ctx, domain.FeedQuery{Kind: domain.FeedBookmarks, ViewerID: bob.ID, Limit: 20})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.NotNil(t, items[0].BookmarkedAt)
	})

	t.Run("comments", func(t *testing.T) {
		root, err := repo.CreateComment(ctx, domain.Comment{DocumentID: pub.ID, UserID: bob.ID, Content: strp("nice")})
		require.NoError(t, err)

		_, err = repo.CreateComment(ctx, domain.Comment{DocumentID: priv.ID, UserID: alice.ID, ParentID: &root.ID, Content: strp("x")})
		assert.ErrorIs(t, err, domain.ErrInvalidParent)

		reply, err := repo.CreateComment(ctx, domain.Comment{DocumentID: pub.ID, UserID: alice.ID, ParentID: &root.ID, Content: strp("thanks")})
		require.NoError(t, err)

		require.NoError(t, repo.SoftDeleteComment(ctx, root.ID))
		_, err = repo.CreateComment(ctx, domain.Comment{DocumentID: pub.ID, UserID: alice.ID, ParentID: &root.ID, Content: strp("late")})
		assert.ErrorIs(t, err, domain.ErrInvalidParent)

		flat, err := repo.ListComments(ctx, pub.ID)
		require.NoError(t, err)
		require.Len(t, flat, 2)
		assert.True(t, flat[0].IsDeleted)
		assert.Nil(t, flat[0].Content)
		assert.Equal(t, reply.ID, flat[1].ID)

		_, comments, err := repo.DocCounters(ctx, pub.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, comments)
	})

	t.Run("profile and stats", func(t *testing.T) {
		p, err := repo.ProfileByUserID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, p.Name)

		p, err = repo.UpdateProfile(ctx, bob.ID, domain.ProfilePatch{Name: strp("Bob")})
		require.NoError(t, err)
		assert.Equal(t, "Bob", *p.Name)

		prev, err := repo.SetAvatarKey(ctx, bob.ID, strp("users/2/profile/a.png"))
		require.NoError(t, err)
		assert.Nil(t, prev)
		prev, err = repo.SetAvatarKey(ctx, bob.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "users/2/profile/a.png", *prev)

		stats, err := repo.UserStats(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.Documents)
		assert.EqualValues(t, 1, stats.Followers)
	})

	t.Run("user search", func(t *testing.T) {
		_, err := repo.UpdateProfile(ctx, alice.ID, domain.ProfilePatch{Name: strp("Alice"), College: strp("IIT 100%")})
		require.NoError(t, err)

		hits, err := repo.SearchUsers(ctx, domain.UserSearchQuery{Query: "bob", Limit: 10})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, bob.ID, hits[0].ID)
		assert.EqualValues(t, 1, hits[0].FollowingCount)
		assert.EqualValues(t, 0, hits[0].FollowersCount)

		hits, err = repo.SearchUsers(ctx, domain.UserSearchQuery{Query: "iit", Limit: 10})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, alice.ID, hits[0].ID)
		assert.EqualValues(t, 1, hits[0].FollowersCount)

		// спецсимволы LIKE ищутся буквально
		hits, err = repo.SearchUsers(ctx, domain.UserSearchQuery{Query: "0%", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, hits, 1)
		hits, err = repo.SearchUsers(ctx, domain.UserSearchQuery{Query: "_ob", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, hits)

		hits, err = repo.SearchUsers(ctx, domain.UserSearchQuery{Query: "ali", Exclude: alice.ID, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("soft delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.SoftDeleteDoc(ctx, pub.ID, bob.ID), domain.ErrDocumentNotFound)
		require.NoError(t, repo.SoftDeleteDoc(ctx, pub.ID, alice.ID))
		_, err := repo.DocByID(ctx, pub.ID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})
}
