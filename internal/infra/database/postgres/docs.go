package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

var docColumns = []string{
	"id", "owner_id", "title", "doc_type", "object_key", "content", "content_type",
	"original_filename", "file_size", "visibility", "is_deleted", "created_at",
}

func scanDocDest(d *domain.Document) []any {
	return []any{
		&d.ID, &d.OwnerID, &d.Title, &d.DocType, &d.ObjectKey, &d.Content, &d.ContentType,
		&d.OriginalFilename, &d.FileSize, &d.Visibility, &d.IsDeleted, &d.CreatedAt,
	}
}

// CreateDoc идемпотентен по object_key: повторная фиксация того же объекта
// возвращает уже созданный документ.
func (r *PGRepo) CreateDoc(ctx context.Context, d domain.Document) (domain.Document, error) {
	q := r.qb().Insert(r.t("documents")).
		Columns("owner_id", "title", "doc_type", "object_key", "content", "content_type",
			"original_filename", "file_size", "visibility").
		Values(d.OwnerID, d.Title, d.DocType, d.ObjectKey, d.Content, d.ContentType,
			d.OriginalFilename, d.FileSize, d.Visibility).
		Suffix("RETURNING " + strings.Join(docColumns, ", "))

	var out domain.Document
	err := r.one(ctx, r.pool, "CreateDoc", q, scanDocDest(&out)...)
	if errors.Is(err, domain.ErrConflict) && d.ObjectKey != nil {
		existing, gerr := r.DocByObjectKey(ctx, *d.ObjectKey)
		if gerr != nil {
			return domain.Document{}, gerr
		}
		if existing.OwnerID != d.OwnerID {
			return domain.Document{}, domain.ErrDocumentOwnership
		}
		r.logger.Debug().Int64("doc_id", existing.ID).Msg("CreateDoc: object already committed")
		return existing, nil
	}
	if err != nil {
		return domain.Document{}, err
	}
	r.logger.Info().Int64("doc_id", out.ID).Int64("owner_id", out.OwnerID).Str("doc_type", string(out.DocType)).Msg("document created")
	return out, nil
}

func (r *PGRepo) DocByID(ctx context.Context, id domain.DocID) (domain.Document, error) {
	q := r.qb().Select(docColumns...).
		From(r.t("documents")).
		Where(sq.Eq{"id": id, "is_deleted": false})

	var d domain.Document
	err := r.one(ctx, r.pool, "DocByID", q, scanDocDest(&d)...)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, err
}

func (r *PGRepo) DocByObjectKey(ctx context.Context, key string) (domain.Document, error) {
	q := r.qb().Select(docColumns...).
		From(r.t("documents")).
		Where(sq.Eq{"object_key": key})

	var d domain.Document
	err := r.one(ctx, r.pool, "DocByObjectKey", q, scanDocDest(&d)...)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, err
}

func (r *PGRepo) SoftDeleteDoc(ctx context.Context, id domain.DocID, owner domain.UserID) error {
	q := r.qb().Update(r.t("documents")).
		Set("is_deleted", true).
		Where(sq.Eq{"id": id, "owner_id": owner, "is_deleted": false})

	n, err := r.exec(ctx, r.pool, "SoftDeleteDoc", q)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	r.logger.Info().Int64("doc_id", id).Int64("owner_id", owner).Msg("document soft-deleted")
	return nil
}

func (r *PGRepo) DocCounters(ctx context.Context, id domain.DocID) (int64, int64, error) {
	q := r.qb().Select(
		fmt.Sprintf("(SELECT count(*) FROM %s l WHERE l.document_id = d.id)", r.t("likes")),
		fmt.Sprintf("(SELECT count(*) FROM %s c WHERE c.document_id = d.id AND c.is_deleted = FALSE)", r.t("comments")),
	).From(r.t("documents") + " d").Where(sq.Eq{"d.id": id})

	var likes, comments int64
	err := r.one(ctx, r.pool, "DocCounters", q, &likes, &comments)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, 0, domain.ErrDocumentNotFound
	}
	return likes, comments, err
}

func (r *PGRepo) OwnerBrief(ctx context.Context, id domain.UserID) (domain.UserBrief, error) {
	q := r.qb().Select("u.id", "p.name", "p.avatar_key").
		From(r.t("users") + " u").
		LeftJoin(r.t("student_profiles") + " p ON p.user_id = u.id").
		Where(sq.Eq{"u.id": id})

	var b domain.UserBrief
	err := r.one(ctx, r.pool, "OwnerBrief", q, &b.ID, &b.Name, &b.AvatarKey)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UserBrief{}, domain.ErrUserNotFound
	}
	return b, err
}
