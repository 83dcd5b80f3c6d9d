package service

import (
	"context"
	"errors"

	"github.com/BheruLalM/edustore-api/internal/access"
	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Likes struct{ Deps }

func NewLikes(d Deps) *Likes { return &Likes{Deps: d} }

type LikeState struct {
	DocumentID domain.DocID `json:"document_id"`
	IsLiked    bool         `json:"is_liked"`
	LikeCount  int64        `json:"like_count"`
}

// Toggle: оптимистичная вставка, при конфликте уникальности удаление.
func (s *Likes) Toggle(ctx context.Context, uid domain.UserID, id domain.DocID) (LikeState, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return LikeState{}, err
	}
	if err := access.RequireView(doc, uid); err != nil {
		return LikeState{}, err
	}

	liked := true
	if err := s.Likes.InsertLike(ctx, uid, id); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return LikeState{}, err
		}
		if _, err := s.Likes.DeleteLike(ctx, uid, id); err != nil {
			return LikeState{}, err
		}
		liked = false
	}
	s.changed(ctx, doc, uid)
	return s.state(ctx, id, liked)
}

// Unlike идемпотентен: отсутствие лайка не ошибка.
func (s *Likes) Unlike(ctx context.Context, uid domain.UserID, id domain.DocID) (LikeState, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return LikeState{}, err
	}
	removed, err := s.Likes.DeleteLike(ctx, uid, id)
	if err != nil {
		return LikeState{}, err
	}
	if removed {
		s.changed(ctx, doc, uid)
	}
	return s.state(ctx, id, false)
}

func (s *Likes) Info(ctx context.Context, viewer domain.UserID, id domain.DocID) (LikeState, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return LikeState{}, err
	}
	if err := access.RequireView(doc, viewer); err != nil {
		return LikeState{}, err
	}
	liked := false
	if viewer != 0 {
		if liked, err = s.Likes.IsLiked(ctx, viewer, id); err != nil {
			return LikeState{}, err
		}
	}
	return s.state(ctx, id, liked)
}

func (s *Likes) Likers(ctx context.Context, viewer domain.UserID, id domain.DocID, limit, offset int) (domain.UserPage, error) {
	doc, err := s.Docs.DocByID(ctx, id)
	if err != nil {
		return domain.UserPage{}, err
	}
	if err := access.RequireView(doc, viewer); err != nil {
		return domain.UserPage{}, err
	}
	limit, offset = s.Paging.clamp(limit, offset)
	items, total, err := s.Likes.Likers(ctx, id, limit, offset)
	if err != nil {
		return domain.UserPage{}, err
	}
	return s.userPage(ctx, items, total, limit, offset), nil
}

func (s *Likes) changed(ctx context.Context, doc domain.Document, uid domain.UserID) {
	s.States.ClearLikes(ctx, uid)
	s.Inv.InvalidateDocument(ctx, doc.ID, doc.OwnerID, uid)
}

func (s *Likes) state(ctx context.Context, id domain.DocID, liked bool) (LikeState, error) {
	n, err := s.Likes.LikeCount(ctx, id)
	if err != nil {
		return LikeState{}, err
	}
	return LikeState{DocumentID: id, IsLiked: liked, LikeCount: n}, nil
}
