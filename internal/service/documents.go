package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BheruLalM/edustore-api/internal/access"
	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/media"
)

type DocsConfig struct {
	UploadURLTTL   time.Duration // подписанный PUT
	DetailURLTTL   time.Duration // ссылки в карточке документа
	DownloadURLTTL time.Duration // отдельная ссылка на скачивание
	DetailTTL      time.Duration // кеш карточки
	MaxUploadBytes int64
}

func (c DocsConfig) withDefaults() DocsConfig {
	if c.UploadURLTTL <= 0 {
		c.UploadURLTTL = 10 * time.Minute
	}
	if c.DetailURLTTL <= 0 {
		c.DetailURLTTL = time.Hour
	}
	if c.DownloadURLTTL <= 0 {
		c.DownloadURLTTL = 5 * time.Minute
	}
	if c.DetailTTL <= 0 {
		c.DetailTTL = 10 * time.Minute
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 25 << 20
	}
	return c
}

type Documents struct {
	Deps
	cfg DocsConfig
}

func NewDocuments(d Deps, cfg DocsConfig) *Documents {
	return &Documents{Deps: d, cfg: cfg.withDefaults()}
}

// ---- Модели ответа ----

type UploadTicket struct {
	ObjectKey string         `json:"object_key"`
	UploadURL string         `json:"upload_url"`
	DocType   domain.DocType `json:"doc_type"`
	ExpiresIn int            `json:"expires_in"`
}

type DocumentDetail struct {
	domain.Document
	Owner        domain.UserBrief `json:"owner"`
	LikeCount    int64            `json:"like_count"`
	CommentCount int64            `json:"comment_count"`
	IsLiked      bool             `json:"is_liked"`
	IsBookmarked bool             `json:"is_bookmarked"`
	IsOwner      bool             `json:"is_owner"`
	FileURL      *string          `json:"file_url"`
	PreviewURL   *string          `json:"preview_url"`
}

type DownloadLink struct {
	DocumentID  domain.DocID `json:"document_id"`
	DownloadURL string       `json:"download_url"`
	ExpiresIn   int          `json:"expires_in"`
	Filename    *string      `json:"filename"`
	ContentType string       `json:"content_type"`
}

// статическая часть карточки в кеше; ключ объекта в JSON ответа не попадает
type cachedDetail struct {
	Detail    DocumentDetail `json:"detail"`
	ObjectKey *string        `json:"object_key"`
}

// ---- Загрузка ----

// UploadURL выдаёт ключ в папке пользователя и подписанный PUT на него.
func (s *Documents) UploadURL(ctx context.Context, uid domain.UserID, contentType string) (UploadTicket, error) {
	ext, docType, err := media.DocumentType(contentType)
	if err != nil {
		return UploadTicket{}, err
	}
	key := media.DocumentKey(uid, ext)
	url, err := s.Storage.SignedUploadURL(ctx, key, contentType, s.cfg.UploadURLTTL)
	if err != nil {
		s.Log.Error().Err(err).Str("object_key", key).Msg("presign upload failed")
		return UploadTicket{}, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return UploadTicket{ObjectKey: key, UploadURL: url, DocType: docType, ExpiresIn: int(s.cfg.UploadURLTTL.Seconds())}, nil
}

type CommitInput struct {
	ObjectKey        string            `json:"object_key"`
	Title            string            `json:"title"`
	Visibility       domain.Visibility `json:"visibility"`
	OriginalFilename *string           `json:"original_filename"`
}

// Commit фиксирует загруженный клиентом объект как документ.
// Повторный commit того же ключа возвращает уже созданный документ.
func (s *Documents) Commit(ctx context.Context, uid domain.UserID, in CommitInput) (DocumentDetail, error) {
	if err := media.ValidateDocumentKey(in.ObjectKey, uid); err != nil {
		return DocumentDetail{}, err
	}
	title, vis, err := validateMeta(in.Title, in.Visibility)
	if err != nil {
		return DocumentDetail{}, err
	}

	info, err := s.Storage.Stat(ctx, in.ObjectKey)
	if errors.Is(err, domain.ErrNotFound) {
		return DocumentDetail{}, domain.ErrDocumentNotUploaded
	}
	if err != nil {
		return DocumentDetail{}, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	_, docType, err := media.DocumentType(info.ContentType)
	if err != nil {
		return DocumentDetail{}, err
	}
	if info.Size > s.cfg.MaxUploadBytes {
		return DocumentDetail{}, domain.ErrInvalidDocument
	}

	key, size := in.ObjectKey, info.Size
	doc, err := s.Docs.CreateDoc(ctx, domain.Document{
		OwnerID:          uid,
		Title:            title,
		DocType:          docType,
		ObjectKey:        &key,
		ContentType:      info.ContentType,
		OriginalFilename: trimPtr(in.OriginalFilename),
		FileSize:         &size,
		Visibility:       vis,
	})
	if err != nil {
		return DocumentDetail{}, err
	}
	s.afterCreate(ctx, doc)
	return s.Detail(ctx, uid, doc.ID)
}

type UploadInput struct {
	Title       string
	Visibility  domain.Visibility
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload: загрузка файла через API (multipart), без подписанного PUT.
func (s *Documents) Upload(ctx context.Context, uid domain.UserID, in UploadInput) (DocumentDetail, error) {
	title, vis, err := validateMeta(in.Title, in.Visibility)
	if err != nil {
		return DocumentDetail{}, err
	}
	ext, docType, err := media.DocumentType(in.ContentType)
	if err != nil {
		return DocumentDetail{}, err
	}
	if in.Size <= 0 || in.Size > s.cfg.MaxUploadBytes {
		return DocumentDetail{}, domain.ErrInvalidDocument
	}

	key := media.DocumentKey(uid, ext)
	if _, err := s.Storage.Upload(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		return DocumentDetail{}, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	var filename *string
	if f := strings.TrimSpace(in.Filename); f != "" {
		filename = &f
	}
	size := in.Size
	doc, err := s.Docs.CreateDoc(ctx, domain.Document{
		OwnerID:          uid,
		Title:            title,
		DocType:          docType,
		ObjectKey:        &key,
		ContentType:      in.ContentType,
		OriginalFilename: filename,
		FileSize:         &size,
		Visibility:       vis,
	})
	if err != nil {
		// объект без строки в БД никому не нужен
		s.removeObject(key)
		return DocumentDetail{}, err
	}
	s.afterCreate(ctx, doc)
	return s.Detail(ctx, uid, doc.ID)
}

type PostInput struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Visibility domain.Visibility `json:"visibility"`
}

// CreatePost: текстовый пост без объекта в хранилище.
func (s *Documents) CreatePost(ctx context.Context, uid domain.UserID, in PostInput) (DocumentDetail, error) {
	title, vis, err := validateMeta(in.Title, in.Visibility)
	if err != nil {
		return DocumentDetail{}, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return DocumentDetail{}, domain.ErrEmptyPost
	}
	content := in.Content
	doc, err := s.Docs.CreateDoc(ctx, domain.Document{
		OwnerID:     uid,
		Title:       title,
		DocType:     domain.DocTypePost,
		Content:     &content,
		ContentType: "text/plain",
		Visibility:  vis,
	})
	if err != nil {
		return DocumentDetail{}, err
	}
	s.afterCreate(ctx, doc)
	return s.Detail(ctx, uid, doc.ID)
}

func (s *Documents) afterCreate(ctx context.Context, doc domain.Document) {
	s.Inv.InvalidateUserDocs(ctx, doc.OwnerID)
	if doc.Visibility == domain.VisibilityPublic {
		s.Inv.InvalidateFeed(ctx)
	}
	s.Log.Info().Int64("doc_id", doc.ID).Int64("owner_id", doc.OwnerID).Str("doc_type", string(doc.DocType)).Msg("document published")
}

// Delete: мягкое удаление владельцем. Объект в хранилище чистится в фоне.
func (s *Documents) Delete(ctx context.Context, uid domain.UserID, id domain.DocID) error {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanMutateDocument(doc, uid) {
		return domain.ErrDocumentAccessDenied
	}
	if err := s.Docs.SoftDeleteDoc(ctx, id, uid); err != nil {
		return err
	}
	s.Inv.InvalidateDocument(ctx, id, doc.OwnerID, uid)
	if doc.HasFile() {
		s.removeObject(*doc.ObjectKey)
	}
	return nil
}

// ---- Чтение ----

// Detail: статическая часть из кеша, затем проверка доступа, состояние
// пользователя и свежие ссылки на файл (их отсутствие не ошибка).
func (s *Documents) Detail(ctx context.Context, viewer domain.UserID, id domain.DocID) (DocumentDetail, error) {
	var cd cachedDetail
	key := domain.CacheKeyDocDetail(id)
	if !s.Store.GetJSON(ctx, key, &cd) {
		loaded, err := s.loadDetail(ctx, id)
		if err != nil {
			return DocumentDetail{}, err
		}
		cd = loaded
		s.Store.SetJSON(ctx, key, cd, s.cfg.DetailTTL)
	}
	det := cd.Detail
	det.ObjectKey = cd.ObjectKey

	if err := access.RequireView(det.Document, viewer); err != nil {
		return DocumentDetail{}, err
	}

	if viewer != 0 {
		liked, err := s.States.LikedIDs(ctx, viewer)
		if err != nil {
			return DocumentDetail{}, err
		}
		bookmarked, err := s.States.BookmarkedIDs(ctx, viewer)
		if err != nil {
			return DocumentDetail{}, err
		}
		det.IsLiked = liked.Has(id)
		det.IsBookmarked = bookmarked.Has(id)
		det.IsOwner = viewer == det.OwnerID
	}

	if det.HasFile() {
		if u, err := s.URLs.FileURL(ctx, *det.ObjectKey, s.cfg.DetailURLTTL, 0); err == nil {
			det.FileURL = &u.URL
			det.PreviewURL = &u.URL
		} else {
			s.Log.Warn().Err(err).Int64("doc_id", id).Msg("file url failed, omitting")
		}
		if det.FileURL != nil && det.DocType == domain.DocTypePDF {
			if p, err := s.URLs.FileURL(ctx, *det.ObjectKey, s.cfg.DetailURLTTL, 1); err == nil {
				det.PreviewURL = &p.URL
			}
		}
	}
	return det, nil
}

func (s *Documents) loadDetail(ctx context.Context, id domain.DocID) (cachedDetail, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return cachedDetail{}, err
	}
	likes, comments, err := s.Docs.DocCounters(ctx, id)
	if err != nil {
		return cachedDetail{}, err
	}
	owner, err := s.Docs.OwnerBrief(ctx, doc.OwnerID)
	if err != nil {
		return cachedDetail{}, err
	}
	s.URLs.ResolveAvatars(ctx, &owner)

	return cachedDetail{
		Detail: DocumentDetail{
			Document:     doc,
			Owner:        owner,
			LikeCount:    likes,
			CommentCount: comments,
		},
		ObjectKey: doc.ObjectKey,
	}, nil
}

// DownloadURL: ссылка на скачивание. Здесь сбой хранилища это ошибка запроса.
func (s *Documents) DownloadURL(ctx context.Context, viewer domain.UserID, id domain.DocID, page int) (DownloadLink, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return DownloadLink{}, err
	}
	if err := access.RequireView(doc, viewer); err != nil {
		return DownloadLink{}, err
	}
	if !doc.HasFile() {
		return DownloadLink{}, fmt.Errorf("%w: document has no file", domain.ErrBadParams)
	}
	if page < 0 {
		page = 0
	}

	link, err := s.URLs.FileURL(ctx, *doc.ObjectKey, s.cfg.DownloadURLTTL, page)
	if err != nil {
		s.Log.Error().Err(err).Int64("doc_id", id).Msg("download url failed")
		return DownloadLink{}, domain.ErrDownloadURLFailed
	}
	return DownloadLink{
		DocumentID:  doc.ID,
		DownloadURL: link.URL,
		ExpiresIn:   int(link.ExpiresIn / time.Second),
		Filename:    doc.OriginalFilename,
		ContentType: doc.ContentType,
	}, nil
}

// ---- Листинги ----

func (s *Documents) PublicFeed(ctx context.Context, viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
	return s.Feed.List(ctx, domain.FeedQuery{Kind: domain.FeedPublic, ViewerID: viewer, Limit: limit, Offset: offset})
}

func (s *Documents) FollowingFeed(ctx context.Context, viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
	return s.Feed.List(ctx, domain.FeedQuery{Kind: domain.FeedFollowing, ViewerID: viewer, Limit: limit, Offset: offset})
}

func (s *Documents) UserDocuments(ctx context.Context, viewer, owner domain.UserID, limit, offset int) (domain.FeedPage, error) {
	return s.Feed.List(ctx, domain.FeedQuery{Kind: domain.FeedUserDocs, ViewerID: viewer, OwnerID: owner, Limit: limit, Offset: offset})
}

func (s *Documents) Search(ctx context.Context, viewer domain.UserID, q string, limit, offset int) (domain.FeedPage, error) {
	return s.Feed.List(ctx, domain.FeedQuery{Kind: domain.FeedSearch, ViewerID: viewer, Search: q, Limit: limit, Offset: offset})
}

func validateMeta(title string, vis domain.Visibility) (string, domain.Visibility, error) {
	title = strings.TrimSpace(title)
	if title == "" || tooLong(title, maxTitleLen) {
		return "", "", domain.ErrInvalidDocument
	}
	if vis == "" {
		vis = domain.VisibilityPrivate
	}
	if !vis.Valid() {
		return "", "", domain.ErrInvalidDocument
	}
	return title, vis, nil
}
