package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// feedFrom задаёт FROM/JOIN/WHERE для вида листинга; колонки добавляет вызывающий.
func (r *PGRepo) feedFrom(sb sq.SelectBuilder, q domain.FeedQuery) sq.SelectBuilder {
	sb = sb.From(r.t("documents") + " d").
		Join(r.t("users") + " u ON u.id = d.owner_id").
		LeftJoin(r.t("student_profiles") + " p ON p.user_id = d.owner_id").
		Where(sq.Eq{"d.is_deleted": false})

	public := sq.Eq{"d.visibility": domain.VisibilityPublic}

	switch q.Kind {
	case domain.FeedPublic:
		sb = sb.Where(public)
	case domain.FeedFollowing:
		sb = sb.Where(public).
			Where(fmt.Sprintf("d.owner_id IN (SELECT f.following_id FROM %s f WHERE f.follower_id = ?)", r.t("follows")), q.ViewerID)
	case domain.FeedUserDocs:
		sb = sb.Where(sq.Eq{"d.owner_id": q.OwnerID})
		if !q.IncludePrivate {
			sb = sb.Where(public)
		}
	case domain.FeedBookmarks:
		// документ, ставший приватным, из чужих закладок пропадает
		sb = sb.Join(r.t("bookmarks")+" b ON b.document_id = d.id AND b.user_id = ?", q.ViewerID).
			Where(sq.Or{public, sq.Eq{"d.owner_id": q.ViewerID}})
	case domain.FeedSearch:
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		sb = sb.Where(sq.Or{
			sq.Expr(`d.title ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`d.doc_type ILIKE ? ESCAPE '\'`, pattern),
		})
		if q.IncludePrivate && q.ViewerID != 0 {
			sb = sb.Where(sq.Or{public, sq.Eq{"d.owner_id": q.ViewerID}})
		} else {
			sb = sb.Where(public)
		}
	}
	return sb
}

// ListFeed: один запрос на страницу. Счётчики считаются скалярными
// подзапросами, total берётся из оконной функции.
func (r *PGRepo) ListFeed(ctx context.Context, q domain.FeedQuery) ([]domain.FeedItem, int64, error) {
	bookmarkedAt := "NULL::timestamptz"
	order := []string{"d.created_at DESC", "d.id DESC"}
	if q.Kind == domain.FeedBookmarks {
		bookmarkedAt = "b.created_at"
		order = []string{"b.created_at DESC", "d.id DESC"}
	}

	sb := r.feedFrom(r.qb().Select(
		"d.id", "d.title", "d.doc_type", "d.visibility", "d.file_size", "d.content", "d.content_type", "d.created_at",
		"u.id", "p.name", "p.avatar_key",
		fmt.Sprintf("(SELECT count(*) FROM %s l WHERE l.document_id = d.id)", r.t("likes")),
		fmt.Sprintf("(SELECT count(*) FROM %s c WHERE c.document_id = d.id AND c.is_deleted = FALSE)", r.t("comments")),
		bookmarkedAt,
		"count(*) OVER()",
	), q).
		OrderBy(order...).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))

	var total int64
	items, err := collect(ctx, r, "ListFeed."+string(q.Kind), sb, func(row pgx.CollectableRow) (domain.FeedItem, error) {
		var (
			it domain.FeedItem
			at *time.Time
		)
		err := row.Scan(
			&it.ID, &it.Title, &it.DocType, &it.Visibility, &it.FileSize, &it.Content, &it.ContentType, &it.CreatedAt,
			&it.Owner.ID, &it.Owner.Name, &it.Owner.AvatarKey,
			&it.LikeCount, &it.CommentCount,
			&at,
			&total,
		)
		it.BookmarkedAt = at
		return it, err
	})
	if err != nil {
		return nil, 0, err
	}

	// за пределами последней страницы оконная функция строк не даёт
	if len(items) == 0 && q.Offset > 0 {
		cq := r.feedFrom(r.qb().Select("count(*)"), q)
		if total, err = r.count(ctx, "ListFeed."+string(q.Kind)+".total", cq); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}
