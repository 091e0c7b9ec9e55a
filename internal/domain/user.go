package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for coach account operations.
var (
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Coach represents a coach account that owns players, groups, and lessons.
// swagger:model Coach
type Coach struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCoach returns a new Coach with the given fields. ID is typically set by the repository on create.
func NewCoach(email, name string, createdAt, updatedAt time.Time) *Coach {
	return &Coach{
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CoachRepository defines storage operations for coach accounts.
type CoachRepository interface {
	Create(ctx context.Context, coach *Coach) error
	GetByEmail(ctx context.Context, email string) (*Coach, error)
	GetByID(ctx context.Context, id string) (*Coach, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated coach.
type TokenIssuer interface {
	Issue(coachID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the coach ID it was issued for.
type TokenVerifier interface {
	Verify(token string) (coachID string, err error)
}

// AuthService defines coach signup and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*Coach, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
