package fastauth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates registration, login, deletion, and token
// verification over a UserStore and a VerificationCache. Construct one
// per process and hand it to whatever transport binding needs it
type Service[T UserRecord] struct {
	store       UserStore[T]
	cache       VerificationCache
	newRecord   func() T
	events      *eventRegistry[T]
	logger      Logger
	hashCost    int
	rotateToken bool
}

// New returns a new authentication Service. newRecord builds an empty
// user record of the host's model type
func New[T UserRecord](store UserStore[T], cache VerificationCache, newRecord func() T) *Service[T] {
	return &Service[T]{
		store:     store,
		cache:     cache,
		newRecord: newRecord,
		events:    newEventRegistry[T](),
		logger:    defLogger{},
		hashCost:  passwordHashCost(),
	}
}

func (s *Service[T]) WithLogger(logger Logger) *Service[T] {
	s.logger = logger
	return s
}

// WithHashCost overrides the bcrypt work factor used for new passwords
func (s *Service[T]) WithHashCost(cost int) *Service[T] {
	s.hashCost = cost
	return s
}

// WithTokenRotationOnLogin mints a fresh access token on every login
// instead of reusing the one issued at registration
func (s *Service[T]) WithTokenRotationOnLogin(rotate bool) *Service[T] {
	s.rotateToken = rotate
	return s
}

// On registers handler for the given lifecycle event. One handler slot
// per event: a later registration silently replaces the earlier one.
// Registering a nil handler clears the slot
func (s *Service[T]) On(event Event, handler EventHandler[T]) error {
	return s.events.register(event, handler)
}

// Register creates a new user for email, mints its access token, and
// primes the verification cache. Fails with ErrUserAlreadyExists when
// the email is taken. The existence check is not atomic with the
// insert, the store's unique constraint on email is the last line of
// defense against concurrent registrations.
//
// The on_register handler runs after the store and cache writes, its
// error becomes the operation's error but the created user is not
// rolled back
func (s *Service[T]) Register(ctx context.Context, email, password string) (T, error) {
	var zero T

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return zero, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return zero, err
	}

	hash, err := hashPasswordWithCost(password, s.hashCost)
	if err != nil {
		return zero, err
	}

	token, err := GenerateAccessToken()
	if err != nil {
		return zero, err
	}

	user := s.newRecord()
	user.SetEmail(email)
	user.SetPasswordHash(hash)
	user.SetAccessToken(token)
	// registration implies an authenticated session
	user.SetAuthenticated(true)

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return zero, err
	}

	s.recache(ctx, created.GetID(), token, true)
	s.logger.Info("Registered user with email '%s'", email)

	if err := s.events.dispatch(ctx, EventRegister, created); err != nil {
		return zero, err
	}

	return created, nil
}

// Login verifies email and password and refreshes the verification
// cache. Unknown emails and wrong passwords both fail with
// ErrUnauthenticated, the caller cannot tell which
func (s *Service[T]) Login(ctx context.Context, email, password string) (T, error) {
	var zero T

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return zero, ErrUnauthenticated
		}
		return zero, err
	}

	if err := ComparePasswordAndHash(password, user.GetPasswordHash()); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return zero, ErrUnauthenticated
		}
		return zero, err
	}

	token := user.GetAccessToken()
	if s.rotateToken {
		if token, err = GenerateAccessToken(); err != nil {
			return zero, err
		}
		user.SetAccessToken(token)
	}

	user.SetAuthenticated(true)
	user.SetLastLogin(time.Now().UTC())

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return zero, err
	}

	s.recache(ctx, updated.GetID(), token, true)
	s.logger.Info("Logged in user with email '%s'", email)

	if err := s.events.dispatch(ctx, EventLogin, updated); err != nil {
		return zero, err
	}

	return updated, nil
}

// Delete removes the user from the store, then writes an
// unauthenticated tombstone entry to the cache so a verification racing
// the deletion observes "not authenticated" instead of falling through
// to the now absent record. Fails with ErrUserNotFound
func (s *Service[T]) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted user with ID '%s'", id)

	if err := s.events.dispatch(ctx, EventDelete, user); err != nil {
		return err
	}

	s.recache(ctx, id, user.GetAccessToken(), false)

	return nil
}

// IsAuthenticated checks whether id presented a live access token. The
// verification cache answers first, a fresh hit never touches the
// store. On a miss, or when the cache store errors, the durable store
// is consulted and the result written back to the cache (cache-aside
// repair), so lost or expired entries self-heal
func (s *Service[T]) IsAuthenticated(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	entry, err := s.cache.Lookup(ctx, id, token)
	if err != nil {
		// a failing cache is a miss, the durable store is the
		// source of truth
		s.logger.Error("Verification cache lookup failed: %s", err)
		entry = nil
	}

	if entry != nil {
		return entry.Authenticated, nil
	}

	authenticated := false
	if _, err := s.store.FindByIDAndToken(ctx, id, token); err == nil {
		authenticated = true
	} else if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	s.recache(ctx, id, token, authenticated)

	return authenticated, nil
}

// Recache writes a verification cache entry for id, resetting its
// expiry. Register, Login, Delete, and IsAuthenticated call this
// internally, it is exported for hosts that mutate tokens out of band
func (s *Service[T]) Recache(ctx context.Context, id uuid.UUID, token string, authenticated bool) (*CacheEntry, error) {
	entry, err := s.cache.Put(ctx, id, token, authenticated)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Recached user with ID '%s'", id)

	return entry, nil
}

// recache is the swallowing flavor used on write-through paths, cache
// failures are logged and reconciled later by TTL plus repair
func (s *Service[T]) recache(ctx context.Context, id uuid.UUID, token string, authenticated bool) {
	if _, err := s.Recache(ctx, id, token, authenticated); err != nil {
		s.logger.Error("Verification cache write failed for user '%s': %s", id, err)
	}
}
