package domain

import "context"

// Порты хранилища. Реализация: internal/infra/database/postgres.
// Отсутствующие строки возвращаются как ErrNotFound (или доменная ошибка с этим Kind),
// нарушение уникальности: как ErrConflict.

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	// Создаёт подтверждённого пользователя или возвращает существующего
	UpsertVerifiedUser(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}

type ProfilesRepo interface {
	// Профиль может отсутствовать: тогда вернётся Profile{UserID: id} без ошибки
	ProfileByUserID(ctx context.Context, id UserID) (Profile, error)
	UpdateProfile(ctx context.Context, id UserID, patch ProfilePatch) (Profile, error)
	// Меняет ключ аватара, возвращает предыдущий
	SetAvatarKey(ctx context.Context, id UserID, key *string) (prev *string, err error)
	UserStats(ctx context.Context, id UserID) (UserStats, error)
}

type UserStats struct {
	Documents int64 `json:"documents"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// UserSearchQuery: подстрока ищется в имени, вузе и курсе профиля.
type UserSearchQuery struct {
	Query   string
	Exclude UserID // 0: никого не исключать
	Limit   int
	Offset  int
}

type UserSearchRepo interface {
	// Только активные пользователи с заполненным профилем, новые сначала
	SearchUsers(ctx context.Context, q UserSearchQuery) ([]UserSearchHit, error)
}

type DocsRepo interface {
	CreateDoc(ctx context.Context, d Document) (Document, error)
	// Только не удалённые документы
	DocByID(ctx context.Context, id DocID) (Document, error)
	DocByObjectKey(ctx context.Context, key string) (Document, error)
	SoftDeleteDoc(ctx context.Context, id DocID, owner UserID) error
	DocCounters(ctx context.Context, id DocID) (likes, comments int64, err error)
	OwnerBrief(ctx context.Context, id UserID) (UserBrief, error)
}

type FeedRepo interface {
	// Один запрос с join владельца и скалярными подзапросами счётчиков
	ListFeed(ctx context.Context, q FeedQuery) (items []FeedItem, total int64, err error)
}

type LikesRepo interface {
	InsertLike(ctx context.Context, uid UserID, doc DocID) error
	DeleteLike(ctx context.Context, uid UserID, doc DocID) (bool, error)
	LikeCount(ctx context.Context, doc DocID) (int64, error)
	IsLiked(ctx context.Context, uid UserID, doc DocID) (bool, error)
	LikedDocIDs(ctx context.Context, uid UserID) ([]DocID, error)
	Likers(ctx context.Context, doc DocID, limit, offset int) ([]UserBrief, int64, error)
}

type BookmarksRepo interface {
	InsertBookmark(ctx context.Context, uid UserID, doc DocID) error
	DeleteBookmark(ctx context.Context, uid UserID, doc DocID) (bool, error)
	BookmarkedDocIDs(ctx context.Context, uid UserID) ([]DocID, error)
}

type FollowsRepo interface {
	InsertFollow(ctx context.Context, follower, following UserID) error
	DeleteFollow(ctx context.Context, follower, following UserID) (bool, error)
	IsFollowing(ctx context.Context, follower, following UserID) (bool, error)
	FollowingIDs(ctx context.Context, follower UserID) ([]UserID, error)
	Followers(ctx context.Context, uid UserID, limit, offset int) ([]UserBrief, int64, error)
	Following(ctx context.Context, uid UserID, limit, offset int) ([]UserBrief, int64, error)
}

type CommentsRepo interface {
	// В одной транзакции проверяет родителя: тот же документ и не удалён
	CreateComment(ctx context.Context, c Comment) (Comment, error)
	CommentByID(ctx context.Context, id CommentID) (Comment, error)
	// Обнуляет content и ставит is_deleted
	SoftDeleteComment(ctx context.Context, id CommentID) error
	ListComments(ctx context.Context, doc DocID) ([]FlatComment, error)
}
