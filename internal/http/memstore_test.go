package http_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nartaykz/travellog/internal/domain"
	"github.com/nartaykz/travellog/internal/oauth"
	"github.com/nartaykz/travellog/internal/repo"
	"github.com/nartaykz/travellog/internal/session"
)

// memStore is an in-memory stand-in for *repo.Store, so handler tests
// run without Mongo. Semantics mirror the real repo methods.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by email
	posts  []*domain.Post          // insertion order = chronological
	photos map[primitive.ObjectID]string
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*domain.User),
		photos: make(map[primitive.ObjectID]string),
	}
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return repo.ErrEmailTaken
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	cp.Followers = append([]string(nil), u.Followers...)
	cp.Following = append([]string(nil), u.Following...)
	cp.Experiences = append([]string(nil), u.Experiences...)
	return &cp
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (m *memStore) findByID(id primitive.ObjectID) *domain.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *memStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.findByID(id); u != nil {
		return copyUser(u), nil
	}
	return nil, nil
}

func (m *memStore) FindUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, id := range ids {
		if u := m.findByID(id); u != nil {
			out = append(out, *copyUser(u))
		}
	}
	return out, nil
}

func (m *memStore) UpdateProfile(_ context.Context, email string, p domain.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repo.ErrNotFound
	}
	u.Name, u.Location, u.Website, u.Description, u.Picture =
		p.Name, p.Location, p.Website, p.Description, p.Picture
	return nil
}

func (m *memStore) UpdatePassword(_ context.Context, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memStore) SearchUsers(_ context.Context, name string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, *copyUser(u))
		}
	}
	return out, nil
}

func (m *memStore) RandomUsers(_ context.Context, excludeEmail string, n int) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.users {
		if u.Email == excludeEmail || len(out) >= n {
			continue
		}
		out = append(out, *copyUser(u))
	}
	return out, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func remove(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func (m *memStore) AddFollow(_ context.Context, follower, target primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.findByID(follower)
	t := m.findByID(target)
	if f == nil || t == nil {
		return false, errors.New("user missing")
	}
	if contains(f.Following, target.Hex()) {
		return false, nil
	}
	f.Following = append(f.Following, target.Hex())
	t.Followers = append(t.Followers, follower.Hex())
	return true, nil
}

func (m *memStore) RemoveFollow(_ context.Context, follower, target primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.findByID(follower)
	t := m.findByID(target)
	if f == nil || t == nil {
		return false, errors.New("user missing")
	}
	if !contains(f.Following, target.Hex()) {
		return false, nil
	}
	f.Following = remove(f.Following, target.Hex())
	t.Followers = remove(t.Followers, follower.Hex())
	return true, nil
}

func (m *memStore) AppendExperience(_ context.Context, email, postID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Experiences = append(u.Experiences, postID)
	return append([]string(nil), u.Experiences...), nil
}

func (m *memStore) RemoveExperience(_ context.Context, email, postID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Experiences = remove(u.Experiences, postID)
	return append([]string(nil), u.Experiences...), nil
}

func (m *memStore) InsertPost(_ context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, p)
	return nil
}

func (m *memStore) FindPostByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindPostsByAuthors(_ context.Context, emails []string, skip, limit int) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[e] = true
	}
	var out []domain.Post
	for i := len(m.posts) - 1; i >= 0 && len(out) < skip+limit; i-- {
		if want[m.posts[i].OwnerEmail()] {
			out = append(out, *m.posts[i])
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	return out[skip:], nil
}

func (m *memStore) InsertPhoto(_ context.Context, dataURI string) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.photos[id] = dataURI
	return id, nil
}

func (m *memStore) FindPhotoByID(_ context.Context, id primitive.ObjectID) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.photos[id]
	if !ok {
		return nil, nil
	}
	return &domain.Photo{ID: id, Image: img}, nil
}

// failingStore wraps memStore and forces errors on selected methods, for
// exercising the outage paths.
type failingStore struct {
	*memStore
	createUserErr error
	findByIDErr   error
}

func (f *failingStore) CreateUser(ctx context.Context, u *domain.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	return f.memStore.CreateUser(ctx, u)
}

func (f *failingStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	return f.memStore.FindUserByID(ctx, id)
}

// failingSessions fails every Resolve.
type failingSessions struct {
	session.Store
	resolveErr error
}

func (f failingSessions) Resolve(context.Context, string) (string, error) {
	return "", f.resolveErr
}

// fakeVerifier maps raw tokens to identities.
type fakeVerifier struct {
	tokens map[string]oauth.Identity
}

func (f *fakeVerifier) Verify(_ context.Context, raw string) (*oauth.Identity, error) {
	id, ok := f.tokens[raw]
	if !ok {
		return nil, oauth.ErrInvalidToken
	}
	return &id, nil
}
