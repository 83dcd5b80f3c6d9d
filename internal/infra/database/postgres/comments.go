package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const commentColumns = "id, document_id, user_id, parent_id, content, is_deleted, created_at"

func scanCommentDest(c *domain.Comment) []any {
	return []any{&c.ID, &c.DocumentID, &c.UserID, &c.ParentID, &c.Content, &c.IsDeleted, &c.CreatedAt}
}

// CreateComment проверяет родителя в той же транзакции: родитель должен
// существовать, принадлежать тому же документу и не быть удалённым.
func (r *PGRepo) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	var out domain.Comment
	err := r.withTx(ctx, "CreateComment", func(tx pgx.Tx) error {
		if c.ParentID != nil {
			var (
				parentDoc domain.DocID
				deleted   bool
			)
			sel := r.qb().Select("document_id", "is_deleted").
				From(r.t("comments")).
				Where(sq.Eq{"id": *c.ParentID}).
				Suffix("FOR SHARE")
			err := r.one(ctx, tx, "CreateComment.parent", sel, &parentDoc, &deleted)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvalidParent
			}
			if err != nil {
				return err
			}
			if parentDoc != c.DocumentID || deleted {
				return domain.ErrInvalidParent
			}
		}

		ins := r.qb().Insert(r.t("comments")).
			Columns("document_id", "user_id", "parent_id", "content").
			Values(c.DocumentID, c.UserID, c.ParentID, c.Content).
			Suffix("RETURNING " + commentColumns)
		return r.one(ctx, tx, "CreateComment.insert", ins, scanCommentDest(&out)...)
	})
	if err != nil {
		return domain.Comment{}, err
	}
	r.logger.Debug().Int64("comment_id", out.ID).Int64("doc_id", out.DocumentID).Msg("comment created")
	return out, nil
}

func (r *PGRepo) CommentByID(ctx context.Context, id domain.CommentID) (domain.Comment, error) {
	q := r.qb().Select(commentColumns).From(r.t("comments")).Where(sq.Eq{"id": id})

	var c domain.Comment
	err := r.one(ctx, r.pool, "CommentByID", q, scanCommentDest(&c)...)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Comment{}, domain.ErrCommentNotFound
	}
	return c, err
}

// SoftDeleteComment: строка остаётся, чтобы ответы не потеряли родителя.
func (r *PGRepo) SoftDeleteComment(ctx context.Context, id domain.CommentID) error {
	q := r.qb().Update(r.t("comments")).
		Set("is_deleted", true).
		Set("content", nil).
		Where(sq.Eq{"id": id, "is_deleted": false})

	n, err := r.exec(ctx, r.pool, "SoftDeleteComment", q)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// ListComments отдаёт плоский список по created_at ASC с авторами.
func (r *PGRepo) ListComments(ctx context.Context, doc domain.DocID) ([]domain.FlatComment, error) {
	q := r.qb().Select("c.id", "c.parent_id", "c.content", "c.is_deleted", "c.created_at", "u.id", "p.name", "p.avatar_key").
		From(r.t("comments")+" c").
		Join(r.t("users")+" u ON u.id = c.user_id").
		LeftJoin(r.t("student_profiles")+" p ON p.user_id = c.user_id").
		Where(sq.Eq{"c.document_id": doc}).
		OrderBy("c.created_at ASC", "c.id ASC")

	return collect(ctx, r, "ListComments", q, func(row pgx.CollectableRow) (domain.FlatComment, error) {
		var c domain.FlatComment
		err := row.Scan(&c.ID, &c.ParentID, &c.Content, &c.IsDeleted, &c.CreatedAt, &c.Author.ID, &c.Author.Name, &c.Author.AvatarKey)
		return c, err
	})
}
