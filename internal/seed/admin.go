package seed

import (
	"context"
	"errors"
	"log/slog"

	"optimanager/m/domain"
	"optimanager/m/internal/auth"
)

// Registrar creates user accounts.
type Registrar interface {
	Register(ctx context.Context, name, email, password, role string) (domain.User, error)
}

// EnsureAdmin creates an admin account unless a user with that email exists.
// An empty email or password is a no-op.
func EnsureAdmin(ctx context.Context, users Registrar, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if name == "" {
		name = "Administrator"
	}
	user, err := users.Register(ctx, name, email, password, domain.RoleAdmin)
	if errors.Is(err, auth.ErrEmailTaken) {
		slog.Debug("bootstrap admin already present", "email", email)
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("created bootstrap admin", "user_id", user.ID, "email", user.Email)
	return nil
}
