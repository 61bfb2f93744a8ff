package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// User represents a player profile stored in the database.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository provides CRUD operations for users.
type UserRepository struct {
	db *sql.DB
}

// Users returns the user repository for this store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

// Create inserts a new user into the database.
func (r *UserRepository) Create(u *User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO users (id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(id string) (*User, error) {
	u := &User{}

	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// GetByName retrieves a user by name.
func (r *UserRepository) GetByName(name string) (*User, error) {
	u := &User{}

	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM users WHERE name = ?`,
		name,
	).Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// List retrieves all users from the database.
func (r *UserRepository) List() ([]*User, error) {
	rows, err := r.db.Query(
		`SELECT id, name, created_at, updated_at FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Rename changes a user's display name.
func (r *UserRepository) Rename(id, name string) error {
	result, err := r.db.Exec(
		`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a user from the database by its ID.
func (r *UserRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
