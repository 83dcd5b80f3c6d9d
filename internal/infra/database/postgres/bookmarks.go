package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func (r *PGRepo) InsertBookmark(ctx context.Context, uid domain.UserID, doc domain.DocID) error {
	q := r.qb().Insert(r.t("bookmarks")).
		Columns("user_id", "document_id").
		Values(uid, doc)
	_, err := r.exec(ctx, r.pool, "InsertBookmark", q)
	return err
}

func (r *PGRepo) DeleteBookmark(ctx context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	q := r.qb().Delete(r.t("bookmarks")).Where(sq.Eq{"user_id": uid, "document_id": doc})
	n, err := r.exec(ctx, r.pool, "DeleteBookmark", q)
	return n > 0, err
}

func (r *PGRepo) BookmarkedDocIDs(ctx context.Context, uid domain.UserID) ([]domain.DocID, error) {
	return r.ids(ctx, "BookmarkedDocIDs", r.qb().Select("document_id").From(r.t("bookmarks")).Where(sq.Eq{"user_id": uid}))
}
