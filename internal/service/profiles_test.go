package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestPublicProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.repo.addUser("alice@example.com")
	b := f.repo.addUser("bob@example.com")
	f.repo.addDoc(b.ID, domain.VisibilityPublic)
	svc := NewProfiles(f.deps, ProfilesConfig{})

	p, err := svc.Public(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.Name)
	assert.EqualValues(t, 1, p.Stats.Documents)
	assert.False(t, p.IsFollowing)
	assert.False(t, p.IsMe)

	_, err = NewFollows(f.deps).Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)

	p, err = svc.Public(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, p.IsFollowing)
	assert.EqualValues(t, 1, p.Stats.Followers)

	// кеш общий, is_following у каждого свой
	p, err = svc.Public(ctx, 0, b.ID)
	require.NoError(t, err)
	assert.False(t, p.IsFollowing)

	me, err := svc.Public(ctx, b.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, me.IsMe)

	_, err = svc.Public(ctx, a.ID, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.repo.addUser("carol@example.com")
	svc := NewProfiles(f.deps, ProfilesConfig{})

	before, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", before.Name)
	assert.Equal(t, "carol@example.com", before.Email)

	_, err = svc.Update(ctx, u.ID, domain.ProfilePatch{Semester: ptr(13)})
	assert.ErrorIs(t, err, domain.ErrBadParams)
	_, err = svc.Update(ctx, u.ID, domain.ProfilePatch{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrBadParams)

	after, err := svc.Update(ctx, u.ID, domain.ProfilePatch{Name: ptr(" Carol C "), Semester: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Carol C", after.Name)
	require.NotNil(t, after.Semester)
	assert.Equal(t, 3, *after.Semester)
}

func TestAvatarLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.repo.addUser("dave@example.com")
	other := f.repo.addUser("eve@example.com")
	svc := NewProfiles(f.deps, ProfilesConfig{})

	_, err := svc.AvatarUploadURL(ctx, u.ID, "application/pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidAvatarType)

	first, err := svc.AvatarUploadURL(ctx, u.ID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, 5, first.MaxSizeMB)

	_, err = svc.CommitAvatar(ctx, u.ID, first.ObjectKey)
	assert.ErrorIs(t, err, domain.ErrAvatarExpired)
	_, err = svc.CommitAvatar(ctx, other.ID, first.ObjectKey)
	assert.ErrorIs(t, err, domain.ErrInvalidAvatarKey)

	f.storage.put(first.ObjectKey, "image/png", 100)
	st, err := svc.CommitAvatar(ctx, u.ID, first.ObjectKey)
	require.NoError(t, err)
	require.NotNil(t, st.AvatarURL)

	p, err := svc.Public(ctx, 0, u.ID)
	require.NoError(t, err)
	assert.Equal(t, st.AvatarURL, p.AvatarURL)

	second, err := svc.AvatarUploadURL(ctx, u.ID, "image/webp")
	require.NoError(t, err)
	f.storage.put(second.ObjectKey, "image/webp", 100)
	_, err = svc.CommitAvatar(ctx, u.ID, second.ObjectKey)
	require.NoError(t, err)
	f.drain(t)
	assert.Equal(t, []string{first.ObjectKey}, f.storage.deletedKeys())

	require.NoError(t, svc.DeleteAvatar(ctx, u.ID))
	assert.ErrorIs(t, svc.DeleteAvatar(ctx, u.ID), domain.ErrAvatarNotFound)

	p, err = svc.Public(ctx, 0, u.ID)
	require.NoError(t, err)
	assert.Nil(t, p.AvatarURL)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProfiles(f.deps, ProfilesConfig{})

	alice := f.repo.addUser("alice@example.com")
	bob := f.repo.addUser("bob@example.com")
	carol := f.repo.addUser("carol@example.com")
	f.repo.addUser("dave@example.com") // без профиля не ищется
	_, err := svc.Update(ctx, bob.ID, domain.ProfilePatch{Name: ptr("Bob Kumar"), College: ptr("IIT Delhi")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, carol.ID, domain.ProfilePatch{Name: ptr("Carol"), Course: ptr("iit prep")})
	require.NoError(t, err)

	_, err = svc.SearchUsers(ctx, alice.ID, " i ", 10, 0)
	assert.ErrorIs(t, err, domain.ErrQueryTooShort)

	_, err = NewFollows(f.deps).Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	page, err := svc.SearchUsers(ctx, alice.ID, "IIT", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, carol.ID, page.Items[0].ID)
	assert.False(t, page.Items[0].IsFollowing)
	assert.Equal(t, bob.ID, page.Items[1].ID)
	assert.True(t, page.Items[1].IsFollowing)
	assert.EqualValues(t, 1, page.Items[1].FollowersCount)

	anon, err := svc.SearchUsers(ctx, 0, "iit", 10, 0)
	require.NoError(t, err)
	require.Len(t, anon.Items, 2)
	for _, h := range anon.Items {
		assert.False(t, h.IsFollowing)
	}

	self, err := svc.SearchUsers(ctx, bob.ID, "bob", 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, self.Items)
	assert.Empty(t, self.Items)

	capped, err := svc.SearchUsers(ctx, 0, "iit", 500, -3)
	require.NoError(t, err)
	assert.Equal(t, 50, capped.Limit)
	assert.Equal(t, 0, capped.Offset)
}
