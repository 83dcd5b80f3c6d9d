package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/cache"
	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/feed"
	redisx "github.com/BheruLalM/edustore-api/internal/infra/cache/redis"
	"github.com/BheruLalM/edustore-api/internal/media"
	"github.com/BheruLalM/edustore-api/internal/notify"
)

type pair struct{ a, b int64 }

// memRepo: хранилище в памяти для сценариев сервисов.
type memRepo struct {
	mu        sync.Mutex
	seq       int64
	users     map[domain.UserID]domain.User
	profiles  map[domain.UserID]domain.Profile
	docs      map[domain.DocID]domain.Document
	likes     map[pair]time.Time
	bookmarks map[pair]time.Time
	follows   map[pair]time.Time
	comments  map[domain.CommentID]domain.Comment
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:     map[domain.UserID]domain.User{},
		profiles:  map[domain.UserID]domain.Profile{},
		docs:      map[domain.DocID]domain.Document{},
		likes:     map[pair]time.Time{},
		bookmarks: map[pair]time.Time{},
		follows:   map[pair]time.Time{},
		comments:  map[domain.CommentID]domain.Comment{},
	}
}

func (m *memRepo) next() int64 {
	m.seq++
	return m.seq
}

func (m *memRepo) addUser(email string) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := domain.User{ID: m.next(), Email: email, IsVerified: true, IsActive: true, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u
}

func (m *memRepo) addDoc(owner domain.UserID, vis domain.Visibility) domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	content := "hello"
	d := domain.Document{
		ID: m.next(), OwnerID: owner, Title: "doc", DocType: domain.DocTypePost,
		Content: &content, ContentType: "text/plain", Visibility: vis, CreatedAt: time.Now(),
	}
	m.docs[d.ID] = d
	return d
}

// ---- UsersRepo ----

func (m *memRepo) Close()                     {}
func (m *memRepo) Ping(context.Context) error { return nil }

func (m *memRepo) UpsertVerifiedUser(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	u := domain.User{ID: m.next(), Email: email, IsVerified: true, IsActive: true, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memRepo) UserByID(_ context.Context, id domain.UserID) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// ---- ProfilesRepo ----

func (m *memRepo) ProfileByUserID(_ context.Context, id domain.UserID) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.Profile{}, domain.ErrUserNotFound
	}
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{UserID: id}, nil
	}
	return p, nil
}

func (m *memRepo) UpdateProfile(_ context.Context, id domain.UserID, patch domain.ProfilePatch) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[id]
	p.UserID = id
	if patch.Name != nil {
		p.Name = patch.Name
	}
	if patch.College != nil {
		p.College = patch.College
	}
	if patch.Course != nil {
		p.Course = patch.Course
	}
	if patch.Semester != nil {
		p.Semester = patch.Semester
	}
	m.profiles[id] = p
	return p, nil
}

func (m *memRepo) SetAvatarKey(_ context.Context, id domain.UserID, key *string) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[id]
	prev := p.AvatarKey
	p.UserID = id
	p.AvatarKey = key
	m.profiles[id] = p
	return prev, nil
}

func (m *memRepo) UserStats(_ context.Context, id domain.UserID) (domain.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s domain.UserStats
	for _, d := range m.docs {
		if d.OwnerID == id && !d.IsDeleted {
			s.Documents++
		}
	}
	for k := range m.follows {
		if k.b == id {
			s.Followers++
		}
		if k.a == id {
			s.Following++
		}
	}
	return s, nil
}

// ---- DocsRepo ----

func (m *memRepo) CreateDoc(_ context.Context, d domain.Document) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ObjectKey != nil {
		for _, ex := range m.docs {
			if ex.ObjectKey != nil && *ex.ObjectKey == *d.ObjectKey {
				if ex.OwnerID != d.OwnerID {
					return domain.Document{}, domain.ErrDocumentOwnership
				}
				return ex, nil
			}
		}
	}
	d.ID = m.next()
	d.CreatedAt = time.Now()
	m.docs[d.ID] = d
	return d, nil
}

func (m *memRepo) DocByID(_ context.Context, id domain.DocID) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok || d.IsDeleted {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, nil
}

func (m *memRepo) DocByObjectKey(_ context.Context, key string) (domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ObjectKey != nil && *d.ObjectKey == key {
			return d, nil
		}
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

func (m *memRepo) SoftDeleteDoc(_ context.Context, id domain.DocID, owner domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok || d.IsDeleted || d.OwnerID != owner {
		return domain.ErrDocumentNotFound
	}
	d.IsDeleted = true
	m.docs[id] = d
	return nil
}

func (m *memRepo) DocCounters(_ context.Context, id domain.DocID) (int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var likes, comments int64
	for k := range m.likes {
		if k.b == id {
			likes++
		}
	}
	for _, c := range m.comments {
		if c.DocumentID == id && !c.IsDeleted {
			comments++
		}
	}
	return likes, comments, nil
}

func (m *memRepo) OwnerBrief(_ context.Context, id domain.UserID) (domain.UserBrief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.UserBrief{}, domain.ErrUserNotFound
	}
	p := m.profiles[id]
	return domain.UserBrief{ID: id, Name: p.Name, AvatarKey: p.AvatarKey}, nil
}

// ---- FeedRepo ----

func (m *memRepo) ListFeed(_ context.Context, q domain.FeedQuery) ([]domain.FeedItem, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FeedItem
	for _, d := range m.docs {
		if d.IsDeleted {
			continue
		}
		public := d.Visibility == domain.VisibilityPublic
		var at *time.Time
		switch q.Kind {
		case domain.FeedPublic:
			if !public {
				continue
			}
		case domain.FeedFollowing:
			if _, ok := m.follows[pair{q.ViewerID, d.OwnerID}]; !ok || !public {
				continue
			}
		case domain.FeedUserDocs:
			if d.OwnerID != q.OwnerID || (!public && !q.IncludePrivate) {
				continue
			}
		case domain.FeedBookmarks:
			t, ok := m.bookmarks[pair{q.ViewerID, d.ID}]
			if !ok || (!public && d.OwnerID != q.ViewerID) {
				continue
			}
			at = &t
		default:
			continue
		}
		out = append(out, domain.FeedItem{
			ID: d.ID, Title: d.Title, DocType: d.DocType, Visibility: d.Visibility,
			CreatedAt: d.CreatedAt, Owner: domain.UserBrief{ID: d.OwnerID}, BookmarkedAt: at,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if q.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

// ---- UserSearchRepo ----

func (m *memRepo) SearchUsers(_ context.Context, q domain.UserSearchQuery) ([]domain.UserSearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(q.Query)
	matches := func(f *string) bool { return f != nil && strings.Contains(strings.ToLower(*f), needle) }

	var out []domain.UserSearchHit
	for id, p := range m.profiles {
		u := m.users[id]
		if !u.IsActive || id == q.Exclude {
			continue
		}
		if !matches(p.Name) && !matches(p.College) && !matches(p.Course) {
			continue
		}
		h := domain.UserSearchHit{ID: id, Name: p.Name, College: p.College, Course: p.Course, AvatarKey: p.AvatarKey}
		for f := range m.follows {
			if f.b == id {
				h.FollowersCount++
			}
			if f.a == id {
				h.FollowingCount++
			}
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// ---- Likes / Bookmarks / Follows ----

func insertPair(mu *sync.Mutex, set map[pair]time.Time, k pair) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := set[k]; ok {
		return domain.ErrConflict
	}
	set[k] = time.Now()
	return nil
}

func deletePair(mu *sync.Mutex, set map[pair]time.Time, k pair) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := set[k]
	delete(set, k)
	return ok
}

func (m *memRepo) InsertLike(_ context.Context, uid domain.UserID, doc domain.DocID) error {
	return insertPair(&m.mu, m.likes, pair{uid, doc})
}

func (m *memRepo) DeleteLike(_ context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	return deletePair(&m.mu, m.likes, pair{uid, doc}), nil
}

func (m *memRepo) LikeCount(ctx context.Context, doc domain.DocID) (int64, error) {
	n, _, err := m.DocCounters(ctx, doc)
	return n, err
}

func (m *memRepo) IsLiked(_ context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[pair{uid, doc}]
	return ok, nil
}

func (m *memRepo) LikedDocIDs(_ context.Context, uid domain.UserID) ([]domain.DocID, error) {
	return m.firstOf(m.likes, uid), nil
}

func (m *memRepo) Likers(_ context.Context, doc domain.DocID, limit, offset int) ([]domain.UserBrief, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.UserBrief
	for k := range m.likes {
		if k.b == doc {
			out = append(out, domain.UserBrief{ID: k.a})
		}
	}
	return page(out, limit, offset)
}

func (m *memRepo) InsertBookmark(_ context.Context, uid domain.UserID, doc domain.DocID) error {
	return insertPair(&m.mu, m.bookmarks, pair{uid, doc})
}

func (m *memRepo) DeleteBookmark(_ context.Context, uid domain.UserID, doc domain.DocID) (bool, error) {
	return deletePair(&m.mu, m.bookmarks, pair{uid, doc}), nil
}

func (m *memRepo) BookmarkedDocIDs(_ context.Context, uid domain.UserID) ([]domain.DocID, error) {
	return m.firstOf(m.bookmarks, uid), nil
}

func (m *memRepo) InsertFollow(_ context.Context, follower, following domain.UserID) error {
	return insertPair(&m.mu, m.follows, pair{follower, following})
}

func (m *memRepo) DeleteFollow(_ context.Context, follower, following domain.UserID) (bool, error) {
	return deletePair(&m.mu, m.follows, pair{follower, following}), nil
}

func (m *memRepo) IsFollowing(_ context.Context, follower, following domain.UserID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.follows[pair{follower, following}]
	return ok, nil
}

func (m *memRepo) FollowingIDs(_ context.Context, follower domain.UserID) ([]domain.UserID, error) {
	return m.firstOf(m.follows, follower), nil
}

func (m *memRepo) Followers(_ context.Context, uid domain.UserID, limit, offset int) ([]domain.UserBrief, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.UserBrief
	for k := range m.follows {
		if k.b == uid {
			out = append(out, domain.UserBrief{ID: k.a})
		}
	}
	return page(out, limit, offset)
}

func (m *memRepo) Following(_ context.Context, uid domain.UserID, limit, offset int) ([]domain.UserBrief, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.UserBrief
	for k := range m.follows {
		if k.a == uid {
			out = append(out, domain.UserBrief{ID: k.b})
		}
	}
	return page(out, limit, offset)
}

func (m *memRepo) firstOf(set map[pair]time.Time, a int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int64
	for k := range set {
		if k.a == a {
			out = append(out, k.b)
		}
	}
	return out
}

func page(items []domain.UserBrief, limit, offset int) ([]domain.UserBrief, int64, error) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	total := int64(len(items))
	if offset >= len(items) {
		return nil, total, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

// ---- CommentsRepo ----

func (m *memRepo) CreateComment(_ context.Context, c domain.Comment) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ParentID != nil {
		p, ok := m.comments[*c.ParentID]
		if !ok || p.DocumentID != c.DocumentID || p.IsDeleted {
			return domain.Comment{}, domain.ErrInvalidParent
		}
	}
	c.ID = m.next()
	c.CreatedAt = time.Now()
	m.comments[c.ID] = c
	return c, nil
}

func (m *memRepo) CommentByID(_ context.Context, id domain.CommentID) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return domain.Comment{}, domain.ErrCommentNotFound
	}
	return c, nil
}

func (m *memRepo) SoftDeleteComment(_ context.Context, id domain.CommentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok || c.IsDeleted {
		return domain.ErrCommentNotFound
	}
	c.IsDeleted = true
	c.Content = nil
	m.comments[id] = c
	return nil
}

func (m *memRepo) ListComments(_ context.Context, doc domain.DocID) ([]domain.FlatComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FlatComment
	for _, c := range m.comments {
		if c.DocumentID != doc {
			continue
		}
		out = append(out, domain.FlatComment{
			ID: c.ID, ParentID: c.ParentID, Content: c.Content, IsDeleted: c.IsDeleted,
			CreatedAt: c.CreatedAt, Author: domain.UserBrief{ID: c.UserID},
		})
	}
	// id растут вместе со временем создания
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- Объектное хранилище ----

type memStorage struct {
	mu      sync.Mutex
	objects map[string]domain.ObjectInfo
	deleted []string
	failURL bool
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string]domain.ObjectInfo{}}
}

func (s *memStorage) put(key, contentType string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = domain.ObjectInfo{Key: key, Size: size, ContentType: contentType}
}

func (s *memStorage) Upload(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.put(key, contentType, size)
	return "mem://" + key, nil
}

func (s *memStorage) SignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://upload/" + key, nil
}

func (s *memStorage) SignedDownloadURL(_ context.Context, key string, _ time.Duration, page int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failURL {
		return "", io.ErrUnexpectedEOF
	}
	u := "https://get/" + key
	if page > 0 {
		u += fmt.Sprintf("#page=%d", page)
	}
	return u, nil
}

func (s *memStorage) Stat(_ context.Context, key string) (domain.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	if !ok {
		return domain.ObjectInfo{}, domain.ErrNotFound
	}
	return o, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStorage) Ping(context.Context) error { return nil }

func (s *memStorage) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// ---- Сборка ----

type fixture struct {
	repo    *memRepo
	storage *memStorage
	mr      *miniredis.Miniredis
	kv      *redisx.Cache
	bg      *notify.Dispatcher
	deps    Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zerolog.Nop()
	repo := newMemRepo()
	st := newMemStorage()
	kv := redisx.NewFromClient(rdb, log)
	store := cache.NewStore(kv, time.Second, log)
	states := cache.NewUserStates(store, repo, time.Minute)
	urls := media.NewURLs(st, store, time.Hour, time.Second, log)
	bg := notify.NewDispatcher(time.Second, log)

	return &fixture{
		repo:    repo,
		storage: st,
		mr:      mr,
		kv:      kv,
		bg:      bg,
		deps: Deps{
			Users: repo, Profiles: repo, Docs: repo, Likes: repo,
			Bookmarks: repo, Follows: repo, Comments: repo, Search: repo,
			Storage: st,
			Store:   store,
			States:  states,
			Inv:     cache.NewInvalidator(store, log),
			URLs:    urls,
			Feed:    feed.NewAssembler(repo, store, states, urls, feed.Config{}, log),
			Bg:      bg,
			Paging:  Paging{DefaultLimit: 20, MaxLimit: 50},
			Log:     log,
		},
	}
}

// drain дожидается фоновых задач.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = f.bg.Wait(ctx)
}
