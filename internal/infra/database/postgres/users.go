package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const userColumns = "id, email, is_verified, is_active, created_at"

func (r *PGRepo) UpsertVerifiedUser(ctx context.Context, email string) (domain.User, error) {
	q := r.qb().Insert(r.t("users")).
		Columns("email", "is_verified").
		Values(email, true).
		Suffix("ON CONFLICT (email) DO UPDATE SET is_verified = TRUE RETURNING " + userColumns)

	var u domain.User
	if err := r.one(ctx, r.pool, "UpsertVerifiedUser", q, &u.ID, &u.Email, &u.IsVerified, &u.IsActive, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	r.logger.Debug().Int64("user_id", u.ID).Msg("user upserted")
	return u, nil
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select(userColumns).From(r.t("users")).Where(sq.Eq{"id": id})

	var u domain.User
	err := r.one(ctx, r.pool, "UserByID", q, &u.ID, &u.Email, &u.IsVerified, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, err
}

// ---- Профили ----

func (r *PGRepo) ProfileByUserID(ctx context.Context, id domain.UserID) (domain.Profile, error) {
	q := r.qb().Select("u.id", "p.name", "p.college", "p.course", "p.semester", "p.avatar_key").
		From(r.t("users") + " u").
		LeftJoin(r.t("student_profiles") + " p ON p.user_id = u.id").
		Where(sq.Eq{"u.id": id, "u.is_active": true})

	var p domain.Profile
	err := r.one(ctx, r.pool, "ProfileByUserID", q, &p.UserID, &p.Name, &p.College, &p.Course, &p.Semester, &p.AvatarKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, domain.ErrUserNotFound
	}
	return p, err
}

func (r *PGRepo) UpdateProfile(ctx context.Context, id domain.UserID, patch domain.ProfilePatch) (domain.Profile, error) {
	// nil в патче оставляет прежнее значение
	q := r.qb().Insert(r.t("student_profiles")).
		Columns("user_id", "name", "college", "course", "semester").
		Values(id, patch.Name, patch.College, patch.Course, patch.Semester).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, student_profiles.name),
			college = COALESCE(EXCLUDED.college, student_profiles.college),
			course = COALESCE(EXCLUDED.course, student_profiles.course),
			semester = COALESCE(EXCLUDED.semester, student_profiles.semester),
			updated_at = now()
		RETURNING user_id, name, college, course, semester, avatar_key`)

	var p domain.Profile
	err := r.one(ctx, r.pool, "UpdateProfile", q, &p.UserID, &p.Name, &p.College, &p.Course, &p.Semester, &p.AvatarKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, domain.ErrUserNotFound
	}
	return p, err
}

func (r *PGRepo) SetAvatarKey(ctx context.Context, id domain.UserID, key *string) (*string, error) {
	var prev *string
	err := r.withTx(ctx, "SetAvatarKey", func(tx pgx.Tx) error {
		sel := r.qb().Select("avatar_key").
			From(r.t("student_profiles")).
			Where(sq.Eq{"user_id": id}).
			Suffix("FOR UPDATE")
		err := r.one(ctx, tx, "SetAvatarKey.prev", sel, &prev)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		up := r.qb().Insert(r.t("student_profiles")).
			Columns("user_id", "avatar_key").
			Values(id, key).
			Suffix("ON CONFLICT (user_id) DO UPDATE SET avatar_key = EXCLUDED.avatar_key, updated_at = now()")
		if _, err := r.exec(ctx, tx, "SetAvatarKey.update", up); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prev, nil
}

func (r *PGRepo) UserStats(ctx context.Context, id domain.UserID) (domain.UserStats, error) {
	q := r.qb().Select(
		fmt.Sprintf("(SELECT count(*) FROM %s d WHERE d.owner_id = u.id AND d.is_deleted = FALSE)", r.t("documents")),
		fmt.Sprintf("(SELECT count(*) FROM %s f WHERE f.following_id = u.id)", r.t("follows")),
		fmt.Sprintf("(SELECT count(*) FROM %s f WHERE f.follower_id = u.id)", r.t("follows")),
	).From(r.t("users") + " u").Where(sq.Eq{"u.id": id})

	var s domain.UserStats
	err := r.one(ctx, r.pool, "UserStats", q, &s.Documents, &s.Followers, &s.Following)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UserStats{}, domain.ErrUserNotFound
	}
	return s, err
}

// userBriefs: общий список пользователей (лайкнувшие, подписчики, подписки)
func (r *PGRepo) userBriefs(ctx context.Context, op string, join string, where sq.Sqlizer, order string, limit, offset int) ([]domain.UserBrief, int64, error) {
	q := r.qb().Select("u.id", "p.name", "p.avatar_key", "count(*) OVER()").
		From(r.t("users") + " u").
		Join(join).
		LeftJoin(r.t("student_profiles") + " p ON p.user_id = u.id").
		Where(where).
		Where(sq.Eq{"u.is_active": true}).
		OrderBy(order).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var total int64
	out, err := collect(ctx, r, op, q, func(row pgx.CollectableRow) (domain.UserBrief, error) {
		var b domain.UserBrief
		err := row.Scan(&b.ID, &b.Name, &b.AvatarKey, &total)
		return b, err
	})
	if err != nil {
		return nil, 0, err
	}
	if len(out) == 0 && offset > 0 {
		cq := r.qb().Select("count(*)").
			From(r.t("users") + " u").
			Join(join).
			Where(where).
			Where(sq.Eq{"u.is_active": true})
		if total, err = r.count(ctx, op+".total", cq); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

// SearchUsers: inner join профиля, пользователи без профиля не находятся.
// Счётчики подписок считаются скалярными подзапросами.
func (r *PGRepo) SearchUsers(ctx context.Context, q domain.UserSearchQuery) ([]domain.UserSearchHit, error) {
	pattern := "%" + likeEscaper.Replace(q.Query) + "%"

	sb := r.qb().Select(
		"u.id", "p.name", "p.college", "p.course", "p.avatar_key",
		fmt.Sprintf("(SELECT count(*) FROM %s f WHERE f.following_id = u.id)", r.t("follows")),
		fmt.Sprintf("(SELECT count(*) FROM %s f WHERE f.follower_id = u.id)", r.t("follows")),
	).From(r.t("users") + " u").
		Join(r.t("student_profiles") + " p ON p.user_id = u.id").
		Where(sq.Eq{"u.is_active": true}).
		Where(sq.Or{
			sq.Expr(`p.name ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`p.college ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`p.course ILIKE ? ESCAPE '\'`, pattern),
		})
	if q.Exclude != 0 {
		sb = sb.Where(sq.NotEq{"u.id": q.Exclude})
	}
	sb = sb.OrderBy("u.created_at DESC, u.id DESC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))

	return collect(ctx, r, "SearchUsers", sb, func(row pgx.CollectableRow) (domain.UserSearchHit, error) {
		var h domain.UserSearchHit
		err := row.Scan(&h.ID, &h.Name, &h.College, &h.Course, &h.AvatarKey, &h.FollowersCount, &h.FollowingCount)
		return h, err
	})
}
