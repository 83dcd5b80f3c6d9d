package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func TestCommitUploadedDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})

	ticket, err := docs.UploadURL(ctx, owner.ID, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, domain.DocTypePDF, ticket.DocType)
	assert.True(t, strings.HasPrefix(ticket.ObjectKey, "users/1/documents/"))

	// клиент ещё не загрузил объект
	_, err = docs.Commit(ctx, owner.ID, CommitInput{ObjectKey: ticket.ObjectKey, Title: "Notes", Visibility: domain.VisibilityPublic})
	assert.ErrorIs(t, err, domain.ErrDocumentNotUploaded)

	f.storage.put(ticket.ObjectKey, "application/pdf", 1024)
	det, err := docs.Commit(ctx, owner.ID, CommitInput{ObjectKey: ticket.ObjectKey, Title: "  Notes ", Visibility: domain.VisibilityPublic})
	require.NoError(t, err)
	assert.Equal(t, "Notes", det.Title)
	assert.True(t, det.IsOwner)
	require.NotNil(t, det.FileURL)
	require.NotNil(t, det.PreviewURL)
	assert.True(t, strings.HasSuffix(*det.PreviewURL, "#page=1"))

	// повторный commit того же ключа возвращает тот же документ
	again, err := docs.Commit(ctx, owner.ID, CommitInput{ObjectKey: ticket.ObjectKey, Title: "Notes", Visibility: domain.VisibilityPublic})
	require.NoError(t, err)
	assert.Equal(t, det.ID, again.ID)
}

func TestCommitForeignKeyRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	other := f.repo.addUser("other@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})

	ticket, err := docs.UploadURL(ctx, owner.ID, "image/png")
	require.NoError(t, err)
	f.storage.put(ticket.ObjectKey, "image/png", 10)

	_, err = docs.Commit(ctx, other.ID, CommitInput{ObjectKey: ticket.ObjectKey, Title: "x"})
	assert.ErrorIs(t, err, domain.ErrDocumentOwnership)
}

func TestUploadURLRejectsUnsupportedType(t *testing.T) {
	f := newFixture(t)
	_, err := NewDocuments(f.deps, DocsConfig{}).UploadURL(context.Background(), 1, "application/zip")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestUploadThroughAPI(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	docs := NewDocuments(f.deps, DocsConfig{MaxUploadBytes: 16})

	_, err := docs.Upload(ctx, owner.ID, UploadInput{
		Title: "big", ContentType: "text/plain", Size: 17, Body: strings.NewReader(strings.Repeat("a", 17)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	det, err := docs.Upload(ctx, owner.ID, UploadInput{
		Title: "small", Filename: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DocTypeNotes, det.DocType)
	assert.Equal(t, domain.VisibilityPrivate, det.Visibility)
	require.NotNil(t, det.OriginalFilename)
	assert.Equal(t, "a.txt", *det.OriginalFilename)
}

func TestCreatePostAppearsInFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})

	page, err := docs.PublicFeed(ctx, 0, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = docs.CreatePost(ctx, owner.ID, PostInput{Title: "t", Content: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyPost)

	det, err := docs.CreatePost(ctx, owner.ID, PostInput{Title: "t", Content: "body", Visibility: domain.VisibilityPublic})
	require.NoError(t, err)
	assert.Nil(t, det.FileURL)

	page, err = docs.PublicFeed(ctx, 0, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, det.ID, page.Items[0].ID)
}

func TestDetailAccessAndHydration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	other := f.repo.addUser("other@example.com")
	private := f.repo.addDoc(owner.ID, domain.VisibilityPrivate)
	public := f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	docs := NewDocuments(f.deps, DocsConfig{})

	_, err := docs.Detail(ctx, other.ID, private.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentAccessDenied)
	_, err = docs.Detail(ctx, 0, private.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentAccessDenied)

	// кешированная карточка не должна открывать доступ
	det, err := docs.Detail(ctx, owner.ID, private.ID)
	require.NoError(t, err)
	assert.True(t, det.IsOwner)
	_, err = docs.Detail(ctx, other.ID, private.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentAccessDenied)

	_, err = NewLikes(f.deps).Toggle(ctx, other.ID, public.ID)
	require.NoError(t, err)
	det, err = docs.Detail(ctx, other.ID, public.ID)
	require.NoError(t, err)
	assert.True(t, det.IsLiked)
	assert.False(t, det.IsOwner)
	assert.EqualValues(t, 1, det.LikeCount)

	anon, err := docs.Detail(ctx, 0, public.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsLiked)
}

func TestDetailSurvivesStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})

	det, err := docs.Upload(ctx, owner.ID, UploadInput{Title: "img", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	require.NoError(t, err)

	f.storage.failURL = true
	f.mr.FlushAll()

	det, err = docs.Detail(ctx, owner.ID, det.ID)
	require.NoError(t, err)
	assert.Nil(t, det.FileURL)

	// а ссылка на скачивание без хранилища невозможна
	_, err = docs.DownloadURL(ctx, owner.ID, det.ID, 0)
	assert.ErrorIs(t, err, domain.ErrDownloadURLFailed)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDownloadURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})
	post := f.repo.addDoc(owner.ID, domain.VisibilityPublic)

	_, err := docs.DownloadURL(ctx, 0, post.ID, 0)
	assert.ErrorIs(t, err, domain.ErrBadParams)

	det, err := docs.Upload(ctx, owner.ID, UploadInput{
		Title: "pdf", Filename: "a.pdf", ContentType: "application/pdf", Size: 3,
		Body: strings.NewReader("pdf"), Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	link, err := docs.DownloadURL(ctx, 0, det.ID, 4)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(link.DownloadURL, "#page=4"))
	assert.Equal(t, 300, link.ExpiresIn)
	assert.Equal(t, "application/pdf", link.ContentType)
}

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	other := f.repo.addUser("other@example.com")
	docs := NewDocuments(f.deps, DocsConfig{})

	det, err := docs.Upload(ctx, owner.ID, UploadInput{
		Title: "img", ContentType: "image/png", Size: 3, Body: strings.NewReader("png"), Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	page, err := docs.PublicFeed(ctx, 0, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	assert.ErrorIs(t, docs.Delete(ctx, other.ID, det.ID), domain.ErrDocumentAccessDenied)
	require.NoError(t, docs.Delete(ctx, owner.ID, det.ID))
	f.drain(t)

	_, err = docs.Detail(ctx, owner.ID, det.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	page, err = docs.PublicFeed(ctx, 0, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Len(t, f.storage.deletedKeys(), 1)
}

func TestUserDocumentsPrivateOnlyForOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.repo.addUser("owner@example.com")
	other := f.repo.addUser("other@example.com")
	f.repo.addDoc(owner.ID, domain.VisibilityPrivate)
	f.repo.addDoc(owner.ID, domain.VisibilityPublic)
	docs := NewDocuments(f.deps, DocsConfig{})

	mine, err := docs.UserDocuments(ctx, owner.ID, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine.Items, 2)

	theirs, err := docs.UserDocuments(ctx, other.ID, owner.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, theirs.Items, 1)
}
