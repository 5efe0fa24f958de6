package client

import (
	"context"

	"optimanager/m/domain"
)

// Session is the identity returned by Login. It is carried explicitly in a
// context so that concurrent callers can act as different users.
type Session struct {
	Token string
	Name  string
	Role  string
}

func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx. ok is false when there is no
// session or it has been ended by Logout.
func SessionFrom(ctx context.Context) (s Session, ok bool) {
	s, ok = ctx.Value(sessionKey{}).(Session)
	return s, ok && s.Token != ""
}

// Logout ends the session carried by ctx. Tokens are stateless, so nothing is
// sent to the server.
func Logout(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, Session{})
}
