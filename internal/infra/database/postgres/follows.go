package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func (r *PGRepo) InsertFollow(ctx context.Context, follower, following domain.UserID) error {
	q := r.qb().Insert(r.t("follows")).
		Columns("follower_id", "following_id").
		Values(follower, following)
	_, err := r.exec(ctx, r.pool, "InsertFollow", q)
	return err
}

func (r *PGRepo) DeleteFollow(ctx context.Context, follower, following domain.UserID) (bool, error) {
	q := r.qb().Delete(r.t("follows")).Where(sq.Eq{"follower_id": follower, "following_id": following})
	n, err := r.exec(ctx, r.pool, "DeleteFollow", q)
	return n > 0, err
}

func (r *PGRepo) IsFollowing(ctx context.Context, follower, following domain.UserID) (bool, error) {
	n, err := r.count(ctx, "IsFollowing", r.qb().Select("count(*)").From(r.t("follows")).
		Where(sq.Eq{"follower_id": follower, "following_id": following}))
	return n > 0, err
}

func (r *PGRepo) FollowingIDs(ctx context.Context, follower domain.UserID) ([]domain.UserID, error) {
	return r.ids(ctx, "FollowingIDs", r.qb().Select("following_id").From(r.t("follows")).Where(sq.Eq{"follower_id": follower}))
}

func (r *PGRepo) Followers(ctx context.Context, uid domain.UserID, limit, offset int) ([]domain.UserBrief, int64, error) {
	return r.userBriefs(ctx, "Followers",
		r.t("follows")+" f ON f.follower_id = u.id",
		sq.Eq{"f.following_id": uid},
		"f.created_at DESC, u.id DESC",
		limit, offset)
}

func (r *PGRepo) Following(ctx context.Context, uid domain.UserID, limit, offset int) ([]domain.UserBrief, int64, error) {
	return r.userBriefs(ctx, "Following",
		r.t("follows")+" f ON f.following_id = u.id",
		sq.Eq{"f.follower_id": uid},
		"f.created_at DESC, u.id DESC",
		limit, offset)
}
