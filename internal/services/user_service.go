package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/juliencrn/twitter-clone/internal/database"
	"github.com/juliencrn/twitter-clone/internal/models"
)

// ErrUserNotFound is returned by CredentialStore lookups when no
// account matches.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned by Create when a unique field (email or
// handle) collides with an existing account. It is the authoritative
// signal; pre-checks only exist to fail fast.
type ErrDuplicateUser struct {
	Field string // "email" or "handle"
}

func (e *ErrDuplicateUser) Error() string {
	return fmt.Sprintf("%s already taken", e.Field)
}

// CredentialStore persists account records. AuthService consumes it as
// an explicit collaborator so tests can swap in an in-memory fake.
type CredentialStore interface {
	FindByID(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	FindByHandle(handle string) (models.User, error)
	Create(user models.User) error
	Update(id, name, handle string) (models.User, error)
	Delete(id string) error
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CredentialStore
	GetAll() ([]models.User, error)
}

// UserService provides account persistence on top of database/sql.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, name, handle, email, password_hash, created_at"

func (s *UserService) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Handle, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByID retrieves a single user by their ID.
func (s *UserService) FindByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return s.scanUser(row)
}

// FindByEmail retrieves a single user by their email, including the
// password hash for credential verification.
func (s *UserService) FindByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return s.scanUser(row)
}

// FindByHandle retrieves a single user by their handle.
func (s *UserService) FindByHandle(handle string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE handle = ?", handle)
	return s.scanUser(row)
}

// GetAll retrieves every user.
func (s *UserService) GetAll() ([]models.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Handle, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Create inserts a new account. The UNIQUE constraints on email and
// handle resolve races between concurrent registrations; violations
// surface as *ErrDuplicateUser.
func (s *UserService) Create(user models.User) error {
	stmt, err := s.db.Prepare("INSERT INTO users(id, name, handle, email, password_hash) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Name, user.Handle, user.Email, user.PasswordHash)
	if database.IsUniqueViolation(err) {
		field := "email"
		if strings.Contains(err.Error(), "users.handle") {
			field = "handle"
		}
		return &ErrDuplicateUser{Field: field}
	}
	return err
}

// Update changes a user's non-sensitive profile fields.
func (s *UserService) Update(id, name, handle string) (models.User, error) {
	stmt, err := s.db.Prepare("UPDATE users SET name = ?, handle = ? WHERE id = ?")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(name, handle, id)
	if database.IsUniqueViolation(err) {
		return models.User{}, &ErrDuplicateUser{Field: "handle"}
	}
	if err != nil {
		return models.User{}, err
	}
	return s.FindByID(id)
}

// Delete removes an account. Tokens already issued to it stay valid
// until they expire; there is no revocation list.
func (s *UserService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
