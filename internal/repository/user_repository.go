package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/linkedup/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Username     sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the projection returned by List: id and email only,
// the password hash never leaves the database for listing queries.
type UserSummary struct {
	ID    uint64
	Email string
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")

// Create hashes the password, inserts the user and returns its ID.
// Emails are matched exactly as stored; only surrounding whitespace is
// trimmed. The UNIQUE key on email is the authoritative duplicate guard.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (uint64, error) {
	email = strings.TrimSpace(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns every user projected to id and email.
func (r *UserRepo) List(ctx context.Context) ([]UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,email FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,username,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile overwrites username and/or the password hash for the user
// with the given email. Nil fields are left untouched. Returns
// ErrUserNotFound when the email does not match any user.
func (r *UserRepo) UpdateProfile(ctx context.Context, email string, username, passwordHash *string) error {
	if username == nil && passwordHash == nil {
		return nil
	}
	if _, err := r.GetByEmail(ctx, email); err != nil {
		return err
	}
	set := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if username != nil {
		set = append(set, "username=?")
		args = append(args, *username)
	}
	if passwordHash != nil {
		set = append(set, "password_hash=?")
		args = append(args, *passwordHash)
	}
	args = append(args, strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ",")+" WHERE email=?", args...)
	return err
}
