package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// EmptySetSentinel кладётся в пустое множество, чтобы отличить «пусто» от промаха.
// При чтении отфильтровывается.
const EmptySetSentinel int64 = -1

const DefaultUserStateTTL = time.Hour

// StateSource: полные отношения пользователя из хранилища.
type StateSource interface {
	FollowingIDs(ctx context.Context, uid domain.UserID) ([]domain.UserID, error)
	LikedDocIDs(ctx context.Context, uid domain.UserID) ([]domain.DocID, error)
	BookmarkedDocIDs(ctx context.Context, uid domain.UserID) ([]domain.DocID, error)
}

type IDSet map[int64]struct{}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != EmptySetSentinel {
			s[id] = struct{}{}
		}
	}
	return s
}

type UserStates struct {
	store *Store
	src   StateSource
	ttl   time.Duration
	sf    singleflight.Group
}

func NewUserStates(store *Store, src StateSource, ttl time.Duration) *UserStates {
	if ttl <= 0 {
		ttl = DefaultUserStateTTL
	}
	return &UserStates{store: store, src: src, ttl: ttl}
}

func (u *UserStates) FollowingIDs(ctx context.Context, uid domain.UserID) (IDSet, error) {
	return u.get(ctx, uid, domain.CacheKeyFollowingSet(uid), u.src.FollowingIDs)
}

func (u *UserStates) LikedIDs(ctx context.Context, uid domain.UserID) (IDSet, error) {
	return u.get(ctx, uid, domain.CacheKeyLikesSet(uid), u.src.LikedDocIDs)
}

func (u *UserStates) BookmarkedIDs(ctx context.Context, uid domain.UserID) (IDSet, error) {
	return u.get(ctx, uid, domain.CacheKeyBookmarksSet(uid), u.src.BookmarkedDocIDs)
}

// Clear сбрасывает все множества пользователя.
func (u *UserStates) Clear(ctx context.Context, uid domain.UserID) {
	u.store.Delete(ctx,
		domain.CacheKeyFollowingSet(uid),
		domain.CacheKeyLikesSet(uid),
		domain.CacheKeyBookmarksSet(uid),
	)
}

func (u *UserStates) ClearFollowing(ctx context.Context, uid domain.UserID) {
	u.store.Delete(ctx, domain.CacheKeyFollowingSet(uid))
}

func (u *UserStates) ClearLikes(ctx context.Context, uid domain.UserID) {
	u.store.Delete(ctx, domain.CacheKeyLikesSet(uid))
}

func (u *UserStates) ClearBookmarks(ctx context.Context, uid domain.UserID) {
	u.store.Delete(ctx, domain.CacheKeyBookmarksSet(uid))
}

type loader func(ctx context.Context, uid domain.UserID) ([]int64, error)

func (u *UserStates) get(ctx context.Context, uid domain.UserID, key string, load loader) (IDSet, error) {
	if uid == 0 {
		return IDSet{}, nil
	}
	if members, ok := u.store.Members(ctx, key); ok {
		return parseMembers(members), nil
	}

	v, err, _ := u.sf.Do(key, func() (any, error) {
		ids, err := load(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		members := make([]string, 0, len(ids))
		for _, id := range ids {
			members = append(members, strconv.FormatInt(id, 10))
		}
		if len(members) == 0 {
			members = append(members, strconv.FormatInt(EmptySetSentinel, 10))
		}
		u.store.SetMembers(ctx, key, members, u.ttl)
		return NewIDSet(ids...), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(IDSet), nil
}

func parseMembers(members []string) IDSet {
	s := make(IDSet, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil || id == EmptySetSentinel {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}
