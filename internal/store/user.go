package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"optimanager/m/domain"
	"optimanager/m/internal/database"
)

// CreateUser stores u, whose Password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	id, err := s.insert(ctx, s.db, `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.Password, u.Role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, ErrDuplicate
		}
		return domain.User{}, err
	}
	u.ID = id
	u.Password = ""
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT id, name, email, password, role FROM users WHERE email = ?`),
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}
