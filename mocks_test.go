package fastauth_test

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-fastauth"
	"github.com/google/uuid"
)

var errStoreUnreachable = errors.New("store unreachable")

// memoryStore implements fastauth.UserStore in process. FailAll
// simulates the durable store becoming unreachable so tests can prove
// the cache-hit path never touches it
type memoryStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]fastauth.User
	FailAll bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[uuid.UUID]fastauth.User),
	}
}

func (s *memoryStore) FindByEmail(ctx context.Context, email string) (*fastauth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return nil, errStoreUnreachable
	}

	for _, u := range s.users {
		if u.Email == email {
			record := u
			return &record, nil
		}
	}

	return nil, fastauth.ErrUserNotFound
}

func (s *memoryStore) FindByID(ctx context.Context, id uuid.UUID) (*fastauth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return nil, errStoreUnreachable
	}

	if u, ok := s.users[id]; ok {
		record := u
		return &record, nil
	}

	return nil, fastauth.ErrUserNotFound
}

func (s *memoryStore) FindByIDAndToken(ctx context.Context, id uuid.UUID, token string) (*fastauth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return nil, errStoreUnreachable
	}

	if u, ok := s.users[id]; ok && u.AccessToken == token {
		record := u
		return &record, nil
	}

	return nil, fastauth.ErrUserNotFound
}

func (s *memoryStore) Create(ctx context.Context, record *fastauth.User) (*fastauth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return nil, errStoreUnreachable
	}

	for _, u := range s.users {
		if u.Email == record.Email {
			return nil, fastauth.ErrUserAlreadyExists
		}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	s.users[record.ID] = *record
	return record, nil
}

func (s *memoryStore) Update(ctx context.Context, record *fastauth.User) (*fastauth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return nil, errStoreUnreachable
	}

	if _, ok := s.users[record.ID]; !ok {
		return nil, fastauth.ErrUserNotFound
	}

	s.users[record.ID] = *record
	return record, nil
}

func (s *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		return errStoreUnreachable
	}

	if _, ok := s.users[id]; !ok {
		return fastauth.ErrUserNotFound
	}

	delete(s.users, id)
	return nil
}

func (s *memoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// silentLogger keeps test output clean
type silentLogger struct{}

func (silentLogger) Debug(format string, args ...any) {}
func (silentLogger) Info(format string, args ...any)  {}
func (silentLogger) Error(format string, args ...any) {}
