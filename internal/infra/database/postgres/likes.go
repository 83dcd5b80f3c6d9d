package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// InsertLike: повторный лайк даёт ErrConflict, его обрабатывает сервис.
func (r *PGRepo) InsertLike(ctx context.Context, uid domain.UserID, doc domain.DocID) error {
	q := r.qb().Insert(r.t("likes")).
		Columns("user_id", "document_id").
		Values(uid, doc)
	_, err := r.exec(ctx, r.pool, "InsertLike", q)
	return err
}

func (r *PGRepo) DeleteLike(ctx context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	q := r.qb().Delete(r.t("likes")).Where(sq.Eq{"user_id": uid, "document_id": doc})
	n, err := r.exec(ctx, r.pool, "DeleteLike", q)
	return n > 0, err
}

func (r *PGRepo) LikeCount(ctx context.Context, doc domain.DocID) (int64, error) {
	return r.count(ctx, "LikeCount", r.qb().Select("count(*)").From(r.t("likes")).Where(sq.Eq{"document_id": doc}))
}

func (r *PGRepo) IsLiked(ctx context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	n, err := r.count(ctx, "IsLiked", r.qb().Select("count(*)").From(r.t("likes")).Where(sq.Eq{"user_id": uid, "document_id": doc}))
	return n > 0, err
}

func (r *PGRepo) LikedDocIDs(ctx context.Context, uid domain.UserID) ([]domain.DocID, error) {
	return r.ids(ctx, "LikedDocIDs", r.qb().Select("document_id").From(r.t("likes")).Where(sq.Eq{"user_id": uid}))
}

func (r *PGRepo) Likers(ctx context.Context, doc domain.DocID, limit, offset int) ([]domain.UserBrief, int64, error) {
	return r.userBriefs(ctx, "Likers",
		r.t("likes")+" l ON l.user_id = u.id",
		sq.Eq{"l.document_id": doc},
		"l.created_at DESC, u.id DESC",
		limit, offset)
}
