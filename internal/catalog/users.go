package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// User is an account owner.
type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser registers an account together with its settings row.
func (s *Store) CreateUser(ctx context.Context, email, password, name string) (User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, invalid("email", "email no es válido")
	}
	if len(password) < minPasswordLength {
		return User{}, invalid("password", "password debe tener al menos %d caracteres", minPasswordLength)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	user := User{ID: uuid.NewString(), Email: email, PasswordHash: hash}

	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email); err != nil {
			return fmt.Errorf("check user existence: %w", err)
		}
		if exists {
			return ErrEmailTaken
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
			user.ID, user.Email, user.PasswordHash); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		if name == "" {
			name = "Usuario"
		}
		return s.insertSettings(ctx, tx, Settings{
			UserID:        user.ID,
			UserName:      name,
			Currency:      s.opts.DefaultCurrency,
			TaxPercentage: s.opts.DefaultTaxPercent,
		})
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *Store) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrUnauthenticated
	}
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrUnauthenticated
	}
	return user, nil
}

// UserByEmail looks a user up by email, case-insensitively.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT id, email, password_hash FROM users WHERE email = ?`, normalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// UserByID looks a user up by id.
func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT id, email, password_hash FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
