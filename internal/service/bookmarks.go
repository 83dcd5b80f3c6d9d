package service

import (
	"context"
	"errors"

	"github.com/BheruLalM/edustore-api/internal/access"
	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Bookmarks struct{ Deps }

func NewBookmarks(d Deps) *Bookmarks { return &Bookmarks{Deps: d} }

type BookmarkState struct {
	DocumentID   domain.DocID `json:"document_id"`
	IsBookmarked bool         `json:"is_bookmarked"`
}

func (s *Bookmarks) Toggle(ctx context.Context, uid domain.UserID, id domain.DocID) (BookmarkState, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return BookmarkState{}, err
	}
	if err := access.RequireView(doc, uid); err != nil {
		return BookmarkState{}, err
	}

	saved := true
	if err := s.Bookmarks.InsertBookmark(ctx, uid, id); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return BookmarkState{}, err
		}
		if _, err := s.Bookmarks.DeleteBookmark(ctx, uid, id); err != nil {
			return BookmarkState{}, err
		}
		saved = false
	}
	s.changed(ctx, uid)
	return BookmarkState{DocumentID: id, IsBookmarked: saved}, nil
}

// Remove идемпотентен и не требует доступа к документу.
func (s *Bookmarks) Remove(ctx context.Context, uid domain.UserID, id domain.DocID) (BookmarkState, error) {
	removed, err := s.Bookmarks.DeleteBookmark(ctx, uid, id)
	if err != nil {
		return BookmarkState{}, err
	}
	if removed {
		s.changed(ctx, uid)
	}
	return BookmarkState{DocumentID: id, IsBookmarked: false}, nil
}

// List: закладки пользователя, новые сверху.
func (s *Bookmarks) List(ctx context.Context, uid domain.UserID, limit, offset int) (domain.FeedPage, error) {
	return s.Feed.List(ctx, domain.FeedQuery{Kind: domain.FeedBookmarks, ViewerID: uid, Limit: limit, Offset: offset})
}

func (s *Bookmarks) changed(ctx context.Context, uid domain.UserID) {
	s.States.ClearBookmarks(ctx, uid)
	s.Inv.InvalidateUserBookmarks(ctx, uid)
}
