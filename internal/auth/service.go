package auth

import (
	"context"
	"errors"

	"optimanager/m/domain"
	"optimanager/m/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidRole        = errors.New("role must be one of: admin, employee")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

// Users is the user persistence the auth service depends on.
type Users interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Service struct {
	users  Users
	tokens *Tokens
}

func NewService(users Users, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Tokens() *Tokens {
	return s.tokens
}

// Login checks the credentials and returns a signed token for the user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if !CheckPassword(user.Password, password) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.User{}, err
	}
	user.Password = ""
	return token, user, nil
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (domain.User, error) {
	if !domain.ValidRole(role) {
		return domain.User{}, ErrInvalidRole
	}
	if len(password) > maxPasswordBytes {
		return domain.User{}, ErrPasswordTooLong
	}
	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.CreateUser(ctx, domain.User{Name: name, Email: email, Password: hashed, Role: role})
	if errors.Is(err, store.ErrDuplicate) {
		return domain.User{}, ErrEmailTaken
	}
	return user, err
}
