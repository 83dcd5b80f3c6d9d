package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/media"
)

type ProfilesConfig struct {
	ProfileTTL   time.Duration // статическая часть профиля
	UploadURLTTL time.Duration
}

func (c ProfilesConfig) withDefaults() ProfilesConfig {
	if c.ProfileTTL <= 0 {
		c.ProfileTTL = 300 * time.Second
	}
	if c.UploadURLTTL <= 0 {
		c.UploadURLTTL = 10 * time.Minute
	}
	return c
}

type Profiles struct {
	Deps
	cfg ProfilesConfig
}

func NewProfiles(d Deps, cfg ProfilesConfig) *Profiles {
	return &Profiles{Deps: d, cfg: cfg.withDefaults()}
}

type PublicProfile struct {
	UserID      domain.UserID    `json:"user_id"`
	Name        string           `json:"name"`
	College     *string          `json:"college"`
	Course      *string          `json:"course"`
	Semester    *int             `json:"semester"`
	AvatarURL   *string          `json:"avatar_url"`
	Stats       domain.UserStats `json:"stats"`
	IsFollowing bool             `json:"is_following"`
	IsMe        bool             `json:"is_me"`
}

type MyProfile struct {
	PublicProfile
	Email string `json:"email"`
}

// Public: статика (профиль, счётчики, аватар) из кеша, is_following
// и is_me считаются для каждого запроса отдельно.
func (s *Profiles) Public(ctx context.Context, viewer, uid domain.UserID) (PublicProfile, error) {
	var p PublicProfile
	key := domain.CacheKeyProfile(uid)
	if !s.Store.GetJSON(ctx, key, &p) {
		loaded, err := s.load(ctx, uid)
		if err != nil {
			return PublicProfile{}, err
		}
		p = loaded
		s.Store.SetJSON(ctx, key, p, s.cfg.ProfileTTL)
	}

	p.IsFollowing, p.IsMe = false, viewer != 0 && viewer == uid
	if viewer != 0 && !p.IsMe {
		ids, err := s.States.FollowingIDs(ctx, viewer)
		if err != nil {
			return PublicProfile{}, err
		}
		p.IsFollowing = ids.Has(uid)
	}
	return p, nil
}

func (s *Profiles) Me(ctx context.Context, uid domain.UserID) (MyProfile, error) {
	u, err := s.Users.UserByID(ctx, uid)
	if err != nil {
		return MyProfile{}, err
	}
	p, err := s.Public(ctx, uid, uid)
	if err != nil {
		return MyProfile{}, err
	}
	return MyProfile{PublicProfile: p, Email: u.Email}, nil
}

func (s *Profiles) load(ctx context.Context, uid domain.UserID) (PublicProfile, error) {
	u, err := s.Users.UserByID(ctx, uid)
	if err != nil {
		return PublicProfile{}, err
	}
	if !u.IsActive {
		return PublicProfile{}, domain.ErrUserNotFound
	}
	prof, err := s.Profiles.ProfileByUserID(ctx, uid)
	if err != nil {
		return PublicProfile{}, err
	}
	stats, err := s.Profiles.UserStats(ctx, uid)
	if err != nil {
		return PublicProfile{}, err
	}
	return PublicProfile{
		UserID:    uid,
		Name:      displayName(u.Email, prof.Name),
		College:   prof.College,
		Course:    prof.Course,
		Semester:  prof.Semester,
		AvatarURL: s.URLs.AvatarURL(ctx, prof.AvatarKey),
		Stats:     stats,
	}, nil
}

// maxUserSearchLimit: поиск людей отдаёт не больше 50 за раз при любом MaxLimit.
const maxUserSearchLimit = 50

// SearchUsers ищет людей по имени, вузу и курсу. Ищущий себя не видит,
// is_following берётся из закешированного множества подписок.
func (s *Profiles) SearchUsers(ctx context.Context, viewer domain.UserID, query string, limit, offset int) (domain.UserSearchPage, error) {
	query, err := domain.NormalizeSearch(query)
	if err != nil {
		return domain.UserSearchPage{}, err
	}
	limit, offset = s.Paging.clamp(limit, offset)
	limit = min(limit, maxUserSearchLimit)

	hits, err := s.Search.SearchUsers(ctx, domain.UserSearchQuery{Query: query, Exclude: viewer, Limit: limit, Offset: offset})
	if err != nil {
		return domain.UserSearchPage{}, err
	}
	if hits == nil {
		hits = []domain.UserSearchHit{}
	}

	following, err := s.States.FollowingIDs(ctx, viewer)
	if err != nil {
		return domain.UserSearchPage{}, err
	}
	for i := range hits {
		hits[i].IsFollowing = following.Has(hits[i].ID)
		hits[i].AvatarURL = s.URLs.AvatarURL(ctx, hits[i].AvatarKey)
	}
	return domain.UserSearchPage{Items: hits, Limit: limit, Offset: offset}, nil
}

// Update меняет поля профиля. Имя видно в лентах, поэтому сбрасываются и они.
func (s *Profiles) Update(ctx context.Context, uid domain.UserID, patch domain.ProfilePatch) (MyProfile, error) {
	patch.Name = trimPtr(patch.Name)
	patch.College = trimPtr(patch.College)
	patch.Course = trimPtr(patch.Course)
	for _, f := range []*string{patch.Name, patch.College, patch.Course} {
		if f != nil && tooLong(*f, maxNameLen) {
			return MyProfile{}, fmt.Errorf("%w: field too long", domain.ErrBadParams)
		}
	}
	if patch.Name != nil && *patch.Name == "" {
		return MyProfile{}, fmt.Errorf("%w: empty name", domain.ErrBadParams)
	}
	if patch.Semester != nil && (*patch.Semester < 1 || *patch.Semester > 12) {
		return MyProfile{}, fmt.Errorf("%w: semester must be 1..12", domain.ErrBadParams)
	}

	if _, err := s.Profiles.UpdateProfile(ctx, uid, patch); err != nil {
		return MyProfile{}, err
	}
	s.profileChanged(ctx, uid)
	return s.Me(ctx, uid)
}

// ---- Аватар ----

type AvatarTicket struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"`
	MaxSizeMB int    `json:"max_size_mb"`
}

type AvatarState struct {
	AvatarURL *string `json:"avatar_url"`
}

func (s *Profiles) AvatarUploadURL(ctx context.Context, uid domain.UserID, contentType string) (AvatarTicket, error) {
	ext, err := media.AvatarExt(contentType)
	if err != nil {
		return AvatarTicket{}, err
	}
	key := media.AvatarKey(uid, ext)
	url, err := s.Storage.SignedUploadURL(ctx, key, contentType, s.cfg.UploadURLTTL)
	if err != nil {
		s.Log.Error().Err(err).Str("object_key", key).Msg("presign avatar upload failed")
		return AvatarTicket{}, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return AvatarTicket{
		ObjectKey: key,
		UploadURL: url,
		ExpiresIn: int(s.cfg.UploadURLTTL.Seconds()),
		MaxSizeMB: media.MaxAvatarMB,
	}, nil
}

// CommitAvatar ставит загруженный объект аватаром; прежний удаляется в фоне.
func (s *Profiles) CommitAvatar(ctx context.Context, uid domain.UserID, key string) (AvatarState, error) {
	if err := media.ValidateAvatarKey(key, uid); err != nil {
		return AvatarState{}, err
	}
	info, err := s.Storage.Stat(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return AvatarState{}, domain.ErrAvatarExpired
	}
	if err != nil {
		return AvatarState{}, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	if _, err := media.AvatarExt(info.ContentType); err != nil {
		return AvatarState{}, err
	}
	if info.Size > int64(media.MaxAvatarMB)<<20 {
		return AvatarState{}, fmt.Errorf("%w: avatar too large", domain.ErrBadParams)
	}

	prev, err := s.Profiles.SetAvatarKey(ctx, uid, &key)
	if err != nil {
		return AvatarState{}, err
	}
	s.avatarChanged(ctx, uid, prev, key)
	return AvatarState{AvatarURL: s.URLs.AvatarURL(ctx, &key)}, nil
}

func (s *Profiles) DeleteAvatar(ctx context.Context, uid domain.UserID) error {
	prev, err := s.Profiles.SetAvatarKey(ctx, uid, nil)
	if err != nil {
		return err
	}
	if prev == nil || *prev == "" {
		return domain.ErrAvatarNotFound
	}
	s.avatarChanged(ctx, uid, prev, "")
	return nil
}

func (s *Profiles) avatarChanged(ctx context.Context, uid domain.UserID, prev *string, next string) {
	s.profileChanged(ctx, uid)
	if prev == nil || *prev == "" || *prev == next {
		return
	}
	s.Inv.InvalidateAvatarURL(ctx, *prev)
	s.removeObject(*prev)
}

func (s *Profiles) profileChanged(ctx context.Context, uid domain.UserID) {
	s.Inv.InvalidateProfile(ctx, uid)
	s.Inv.InvalidateUserDocs(ctx, uid)
	s.Inv.InvalidateFeed(ctx)
	s.syncChat(uid)
}
