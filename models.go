package fastauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the default user model. Hosts that need extra fields embed it
// and keep the UserRecord accessors for free
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	AccessToken   string     `bun:"access_token" json:"-"`
	Authenticated bool       `bun:"authenticated" json:"authenticated"`
	LastLoginAt   *time.Time `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

var _ UserRecord = (*User)(nil)

func (u *User) GetID() uuid.UUID { return u.ID }

func (u *User) SetID(id uuid.UUID) { u.ID = id }

func (u *User) GetEmail() string { return u.Email }

func (u *User) SetEmail(email string) { u.Email = email }

func (u *User) GetPasswordHash() string { return u.PasswordHash }

func (u *User) SetPasswordHash(hash string) { u.PasswordHash = hash }

func (u *User) GetAccessToken() string { return u.AccessToken }

func (u *User) SetAccessToken(token string) { u.AccessToken = token }

// IsAuthenticated reports the stored convenience flag. It is advisory,
// access control goes through Service.IsAuthenticated
func (u *User) IsAuthenticated() bool { return u.Authenticated }

func (u *User) SetAuthenticated(authenticated bool) { u.Authenticated = authenticated }

func (u *User) SetLastLogin(at time.Time) { u.LastLoginAt = &at }
