package service

import (
	"context"
	"strings"

	"github.com/BheruLalM/edustore-api/internal/access"
	"github.com/BheruLalM/edustore-api/internal/comments"
	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Comments struct {
	Deps
	maxDepth int
}

func NewComments(d Deps, maxDepth int) *Comments {
	if maxDepth <= 0 {
		maxDepth = comments.DefaultMaxDepth
	}
	return &Comments{Deps: d, maxDepth: maxDepth}
}

type CommentInput struct {
	Content  string            `json:"content"`
	ParentID *domain.CommentID `json:"parent_id"`
}

func (s *Comments) Create(ctx context.Context, uid domain.UserID, doc domain.DocID, in CommentInput) (domain.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if tooLong(content, maxCommentLen) {
		return domain.Comment{}, domain.ErrBadParams
	}

	d, err := s.Docs.DocByID(ctx, doc)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := access.RequireView(d, uid); err != nil {
		return domain.Comment{}, err
	}

	c, err := s.Comments.CreateComment(ctx, domain.Comment{
		DocumentID: doc,
		UserID:     uid,
		ParentID:   in.ParentID,
		Content:    &content,
	})
	if err != nil {
		return domain.Comment{}, err
	}
	// comment_count в карточке и лентах
	s.Inv.InvalidateDocument(ctx, doc, d.OwnerID, uid)
	return c, nil
}

// Delete: мягкое удаление автором, ответы остаются в дереве.
func (s *Comments) Delete(ctx context.Context, uid domain.UserID, id domain.CommentID) error {
	c, err := s.Comments.CommentByID(ctx, id)
	if err != nil {
		return err
	}
	if c.IsDeleted {
		return domain.ErrCommentNotFound
	}
	if !access.CanMutateComment(c, uid) {
		return domain.ErrCommentNotAllowed
	}
	if err := s.Comments.SoftDeleteComment(ctx, id); err != nil {
		return err
	}

	owner := domain.UserID(0)
	if d, err := s.Docs.DocByID(ctx, c.DocumentID); err == nil {
		owner = d.OwnerID
	}
	s.Inv.InvalidateDocument(ctx, c.DocumentID, owner, uid)
	return nil
}

// List возвращает дерево комментариев глубиной не больше maxDepth.
func (s *Comments) List(ctx context.Context, viewer domain.UserID, doc domain.DocID) ([]domain.CommentNode, error) {
	d, err := s.Docs.DocByID(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := access.RequireView(d, viewer); err != nil {
		return nil, err
	}

	flat, err := s.Comments.ListComments(ctx, doc)
	if err != nil {
		return nil, err
	}
	authors := make([]*domain.UserBrief, len(flat))
	for i := range flat {
		authors[i] = &flat[i].Author
	}
	s.URLs.ResolveAvatars(ctx, authors...)

	return comments.Build(flat, s.maxDepth), nil
}
