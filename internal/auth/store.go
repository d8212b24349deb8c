package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/db"
)

// User is a back-office account.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store provides database operations for admin users.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates an admin user Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// GetByEmail returns the user with the given email (case-insensitive).
func (s *Store) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.dbtx.QueryRow(ctx,
		`SELECT id, email, display_name, password_hash, role, created_at, updated_at
		FROM admin_users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Upsert creates the user or, when the email already exists, resets its
// password, name and role.
func (s *Store) Upsert(ctx context.Context, email, displayName, password, role string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	var u User
	err = s.dbtx.QueryRow(ctx,
		`INSERT INTO admin_users (email, display_name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role,
		    updated_at = now()
		RETURNING id, email, display_name, password_hash, role, created_at, updated_at`,
		email, displayName, hash, role,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, fmt.Errorf("upserting admin user: %w", err)
	}
	return u, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
