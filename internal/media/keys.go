// Package media: ключи объектов в хранилище и кеш подписанных ссылок.
package media

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const (
	keyBase     = "users"
	keyDocs     = "documents"
	keyProfile  = "profile"
	MaxAvatarMB = 5
)

// Допустимые типы документов: content-type -> расширение и тип документа
var documentTypes = map[string]struct {
	ext     string
	docType domain.DocType
}{
	"application/pdf": {"pdf", domain.DocTypePDF},
	"image/png":       {"png", domain.DocTypeImage},
	"image/jpeg":      {"jpg", domain.DocTypeImage},
	"image/webp":      {"webp", domain.DocTypeImage},
	"text/plain":      {"txt", domain.DocTypeNotes},
}

var avatarTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// DocumentType по content-type возвращает расширение и тип документа.
func DocumentType(contentType string) (ext string, t domain.DocType, err error) {
	v, ok := documentTypes[normalizeCT(contentType)]
	if !ok {
		return "", "", domain.ErrUnsupportedType
	}
	return v.ext, v.docType, nil
}

func AvatarExt(contentType string) (string, error) {
	ext, ok := avatarTypes[normalizeCT(contentType)]
	if !ok {
		return "", domain.ErrInvalidAvatarType
	}
	return ext, nil
}

// DocumentKey: users/{uid}/documents/{uuid}.{ext}
func DocumentKey(uid domain.UserID, ext string) string {
	return objectKey(uid, keyDocs, ext)
}

// AvatarKey: users/{uid}/profile/{uuid}.{ext}
func AvatarKey(uid domain.UserID, ext string) string {
	return objectKey(uid, keyProfile, ext)
}

// ValidateDocumentKey проверяет, что ключ лежит в папке документов пользователя.
func ValidateDocumentKey(key string, uid domain.UserID) error {
	if !ownedBy(key, uid, keyDocs) {
		return domain.ErrDocumentOwnership
	}
	return nil
}

func ValidateAvatarKey(key string, uid domain.UserID) error {
	if !ownedBy(key, uid, keyProfile) {
		return domain.ErrInvalidAvatarKey
	}
	return nil
}

func objectKey(uid domain.UserID, folder, ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return fmt.Sprintf("%s/%d/%s/%s", keyBase, uid, folder, id)
	}
	return fmt.Sprintf("%s/%d/%s/%s.%s", keyBase, uid, folder, id, ext)
}

func ownedBy(key string, uid domain.UserID, folder string) bool {
	if uid == 0 || key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return false
	}
	prefix := fmt.Sprintf("%s/%d/%s/", keyBase, uid, folder)
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}

func normalizeCT(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
