package fastauth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// UserRecord is the capability contract a user model has to satisfy to
// be managed by the Service. Host applications embed the default User
// to extend it with their own fields
type UserRecord interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	GetEmail() string
	SetEmail(email string)
	GetPasswordHash() string
	SetPasswordHash(hash string)
	GetAccessToken() string
	SetAccessToken(token string)
	IsAuthenticated() bool
	SetAuthenticated(authenticated bool)
	SetLastLogin(at time.Time)
}

// UserStore is the durable record store the Service reads and mutates.
// Lookups that match nothing return ErrUserNotFound. Single record
// operations are atomic, that is the store's responsibility, the
// Service holds no locks of its own
type UserStore[T UserRecord] interface {
	FindByEmail(ctx context.Context, email string) (T, error)
	FindByID(ctx context.Context, id uuid.UUID) (T, error)
	FindByIDAndToken(ctx context.Context, id uuid.UUID, token string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VerificationCache is the volatile projection that fronts the
// UserStore on the token verification path. Lookup misses are
// (nil, nil), implementations surface transport errors so the Service
// can log them and downgrade to a miss
type VerificationCache interface {
	Put(ctx context.Context, id uuid.UUID, token string, authenticated bool) (*CacheEntry, error)
	Lookup(ctx context.Context, id uuid.UUID, token string) (*CacheEntry, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] FASTAUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] FASTAUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] FASTAUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
