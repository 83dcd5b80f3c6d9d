package service

import (
	"context"
	"errors"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

type Follows struct{ Deps }

func NewFollows(d Deps) *Follows { return &Follows{Deps: d} }

type FollowState struct {
	UserID      domain.UserID `json:"user_id"`
	IsFollowing bool          `json:"is_following"`
}

func (s *Follows) Toggle(ctx context.Context, uid, target domain.UserID) (FollowState, error) {
	if err := s.checkTarget(ctx, uid, target); err != nil {
		return FollowState{}, err
	}

	following := true
	if err := s.Follows.InsertFollow(ctx, uid, target); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return FollowState{}, err
		}
		if _, err := s.Follows.DeleteFollow(ctx, uid, target); err != nil {
			return FollowState{}, err
		}
		following = false
	}
	s.changed(ctx, uid, target)
	return FollowState{UserID: target, IsFollowing: following}, nil
}

// Unfollow идемпотентен.
func (s *Follows) Unfollow(ctx context.Context, uid, target domain.UserID) (FollowState, error) {
	if uid == target {
		return FollowState{}, domain.ErrCannotFollowSelf
	}
	removed, err := s.Follows.DeleteFollow(ctx, uid, target)
	if err != nil {
		return FollowState{}, err
	}
	if removed {
		s.changed(ctx, uid, target)
	}
	return FollowState{UserID: target, IsFollowing: false}, nil
}

// Status читает множество подписок из кеша состояния.
func (s *Follows) Status(ctx context.Context, uid, target domain.UserID) (FollowState, error) {
	ids, err := s.States.FollowingIDs(ctx, uid)
	if err != nil {
		return FollowState{}, err
	}
	return FollowState{UserID: target, IsFollowing: ids.Has(target)}, nil
}

func (s *Follows) Followers(ctx context.Context, uid domain.UserID, limit, offset int) (domain.UserPage, error) {
	if _, err := s.Users.UserByID(ctx, uid); err != nil {
		return domain.UserPage{}, err
	}
	limit, offset = s.Paging.clamp(limit, offset)
	items, total, err := s.Follows.Followers(ctx, uid, limit, offset)
	if err != nil {
		return domain.UserPage{}, err
	}
	return s.userPage(ctx, items, total, limit, offset), nil
}

func (s *Follows) Following(ctx context.Context, uid domain.UserID, limit, offset int) (domain.UserPage, error) {
	if _, err := s.Users.UserByID(ctx, uid); err != nil {
		return domain.UserPage{}, err
	}
	limit, offset = s.Paging.clamp(limit, offset)
	items, total, err := s.Follows.Following(ctx, uid, limit, offset)
	if err != nil {
		return domain.UserPage{}, err
	}
	return s.userPage(ctx, items, total, limit, offset), nil
}

func (s *Follows) checkTarget(ctx context.Context, uid, target domain.UserID) error {
	if uid == target {
		return domain.ErrCannotFollowSelf
	}
	u, err := s.Users.UserByID(ctx, target)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return domain.ErrUserNotFound
	}
	return nil
}

// changed: лента подписок и счётчики в обоих профилях.
func (s *Follows) changed(ctx context.Context, uid, target domain.UserID) {
	s.States.ClearFollowing(ctx, uid)
	s.Inv.InvalidateFollowingFeed(ctx, uid)
	s.Inv.InvalidateProfile(ctx, uid)
	s.Inv.InvalidateProfile(ctx, target)
}
