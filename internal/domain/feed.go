package domain

import "time"

type FeedKind string

const (
	FeedPublic    FeedKind = "public"
	FeedFollowing FeedKind = "following"
	FeedUserDocs  FeedKind = "user_docs"
	FeedBookmarks FeedKind = "bookmarks"
	FeedSearch    FeedKind = "search"
)

// FeedQuery описывает один из вариантов листинга документов.
type FeedQuery struct {
	Kind     FeedKind
	ViewerID UserID // 0: аноним
	OwnerID  UserID // для FeedUserDocs
	Search   string // для FeedSearch
	Limit    int
	Offset   int

	// Выставляется сборщиком ленты, а не вызывающим кодом
	IncludePrivate bool
}

type FeedItem struct {
	ID           DocID      `json:"id"`
	Title        string     `json:"title"`
	DocType      DocType    `json:"doc_type"`
	Visibility   Visibility `json:"visibility"`
	FileSize     *int64     `json:"file_size"`
	Content      *string    `json:"content"`
	ContentType  string     `json:"content_type"`
	CreatedAt    time.Time  `json:"created_at"`
	Owner        UserBrief  `json:"owner"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	IsLiked      bool       `json:"is_liked"`
	IsBookmarked bool       `json:"is_bookmarked"`
	BookmarkedAt *time.Time `json:"bookmarked_at,omitempty"`
}

type FeedPage struct {
	Items  []FeedItem `json:"items"`
	Total  int64      `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Плоская строка комментария из хранилища, отсортирована по created_at ASC
type FlatComment struct {
	ID        CommentID
	ParentID  *CommentID
	Content   *string
	IsDeleted bool
	CreatedAt time.Time
	Author    UserBrief
}

type CommentNode struct {
	ID        CommentID     `json:"id"`
	Content   *string       `json:"content"`
	IsDeleted bool          `json:"is_deleted"`
	CreatedAt time.Time     `json:"created_at"`
	Author    UserBrief     `json:"author"`
	Replies   []CommentNode `json:"replies"`
}

// Страница пользователей (лайкнувшие, подписчики, подписки)
type UserPage struct {
	Items  []UserBrief `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
