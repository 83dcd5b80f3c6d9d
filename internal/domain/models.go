package domain

import "time"

// Базовые идентификаторы. Нулевой UserID означает анонимного пользователя.
type UserID = int64
type DocID = int64
type CommentID = int64

type DocType string

const (
	DocTypePDF   DocType = "pdf"
	DocTypeImage DocType = "image"
	DocTypeNotes DocType = "notes"
	DocTypePost  DocType = "post"
)

func (t DocType) Valid() bool {
	switch t {
	case DocTypePDF, DocTypeImage, DocTypeNotes, DocTypePost:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Пользователь
type User struct {
	ID         UserID    `json:"id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Профиль студента (1:1 с User, может отсутствовать)
type Profile struct {
	UserID    UserID  `json:"user_id"`
	Name      *string `json:"name"`
	College   *string `json:"college"`
	Course    *string `json:"course"`
	Semester  *int    `json:"semester"`
	AvatarKey *string `json:"-"`
}

// ProfilePatch: nil-поля не меняются.
type ProfilePatch struct {
	Name     *string `json:"name"`
	College  *string `json:"college"`
	Course   *string `json:"course"`
	Semester *int    `json:"semester"`
}

// Документ. ObjectKey == nil только у текстовых постов.
type Document struct {
	ID               DocID      `json:"id"`
	OwnerID          UserID     `json:"owner_id"`
	Title            string     `json:"title"`
	DocType          DocType    `json:"doc_type"`
	ObjectKey        *string    `json:"-"`
	Content          *string    `json:"content"`
	ContentType      string     `json:"content_type"`
	OriginalFilename *string    `json:"original_filename,omitempty"`
	FileSize         *int64     `json:"file_size"`
	Visibility       Visibility `json:"visibility"`
	IsDeleted        bool       `json:"is_deleted"`
	CreatedAt        time.Time  `json:"created_at"`
}

// HasFile: ссылку на скачивание генерируем только для документов с объектом в хранилище.
func (d Document) HasFile() bool {
	return d.DocType != DocTypePost && d.ObjectKey != nil && *d.ObjectKey != ""
}

// Комментарий. Content обнуляется при удалении, строка остаётся ради структуры дерева.
type Comment struct {
	ID         CommentID  `json:"id"`
	DocumentID DocID      `json:"document_id"`
	UserID     UserID     `json:"user_id"`
	ParentID   *CommentID `json:"parent_id"`
	Content    *string    `json:"content"`
	IsDeleted  bool       `json:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Краткая карточка пользователя для лент, комментариев и списков
type UserBrief struct {
	ID        UserID  `json:"id"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	AvatarKey *string `json:"-"`
}

// UserSearchHit: строка поиска людей. IsFollowing и AvatarURL
// заполняются сервисом, хранилище отдаёт только AvatarKey и счётчики.
type UserSearchHit struct {
	ID             UserID  `json:"id"`
	Name           *string `json:"name"`
	College        *string `json:"college"`
	Course         *string `json:"course"`
	AvatarURL      *string `json:"avatar_url"`
	AvatarKey      *string `json:"-"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
	IsFollowing    bool    `json:"is_following"`
}

type UserSearchPage struct {
	Items  []UserSearchHit `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
