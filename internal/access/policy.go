// Package access: правила видимости и владения. Нулевой viewer: аноним.
package access

import "github.com/BheruLalM/edustore-api/internal/domain"

func CanView(vis domain.Visibility, owner, viewer domain.UserID) bool {
	if vis == domain.VisibilityPublic {
		return true
	}
	return viewer != 0 && viewer == owner
}

func CanViewDocument(d domain.Document, viewer domain.UserID) bool {
	return !d.IsDeleted && CanView(d.Visibility, d.OwnerID, viewer)
}

// RequireView для выборки одного документа: отказ это ошибка, а не фильтрация.
func RequireView(d domain.Document, viewer domain.UserID) error {
	switch {
	case CanViewDocument(d, viewer):
		return nil
	case d.IsDeleted:
		return domain.ErrDocumentNotFound
	default:
		return domain.ErrDocumentAccessDenied
	}
}

// FilterVisible для листингов: недоступное молча выкидывается.
func FilterVisible(items []domain.FeedItem, viewer domain.UserID) []domain.FeedItem {
	out := items[:0:0]
	for _, it := range items {
		if CanView(it.Visibility, it.Owner.ID, viewer) {
			out = append(out, it)
		}
	}
	return out
}

func CanMutateDocument(d domain.Document, actor domain.UserID) bool {
	return actor != 0 && d.OwnerID == actor
}

func CanMutateComment(c domain.Comment, actor domain.UserID) bool {
	return actor != 0 && c.UserID == actor
}
