package db

import (
	"context"
	"errors"
	"time"

	"quickbids/models"
)

const userColumns = `id, username, password, first_name, last_name, email, is_staff, is_active, date_joined`

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}

	query := `
        INSERT INTO users
            (username, password, first_name, last_name, email, is_staff, is_active, date_joined)
        VALUES
            (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id`
	id, err := s.insert(ctx, query,
		u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.IsStaff, u.IsActive, u.DateJoined)
	if err != nil {
		return translate(err, "user", u.Username)
	}
	u.ID = id
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{}
	err := s.get(ctx, u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, translate(err, "user", id)
	}
	return u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := s.get(ctx, u, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, translate(err, "user", username)
	}
	return u, nil
}

// UpdateUser rewrites the profile columns. The password hash is not touched.
func (s *Storage) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	query := `
        UPDATE users
        SET username = ?, first_name = ?, last_name = ?, email = ?, is_staff = ?, is_active = ?
        WHERE id = ?`
	return s.execOne(ctx, "user", u.ID, query,
		u.Username, u.FirstName, u.LastName, u.Email, u.IsStaff, u.IsActive, u.ID)
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	return s.execOne(ctx, "user", id, `DELETE FROM users WHERE id = ?`, id)
}
