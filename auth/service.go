// Package auth verifies credentials, creates accounts and issues the signed
// session token carried in the session cookie.
package auth

import (
	"context"
	"strings"
	"time"

	"storefront/errs"
	"storefront/models"
	"storefront/store"
	"storefront/validation"
)

const invalidLogin = "Invalid email or password"

type SignupInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

type Service struct {
	users  store.UserStore
	tokens *TokenManager
	hasher Hasher
	admins map[string]struct{}
	// dummyHash keeps the unknown-user path as slow as a wrong password.
	dummyHash string
}

func NewService(users store.UserStore, tokens *TokenManager, hasher Hasher, adminEmails []string) (*Service, error) {
	dummy, err := hasher.Hash("storefront-dummy-password")
	if err != nil {
		return nil, err
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Service{users: users, tokens: tokens, hasher: hasher, admins: admins, dummyHash: dummy}, nil
}

func (s *Service) Tokens() *TokenManager { return s.tokens }

func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return models.User{}, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, errs.Internal(err, "Failed to register")
	}

	role := models.RoleCustomer
	if _, ok := s.admins[in.Email]; ok {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login returns NotFound for an unknown email and InvalidCredentials for a
// wrong password. Both carry the same client-facing message.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	if err := validation.Struct(in); err != nil {
		return Session{}, err
	}

	user, err := s.users.FindUserByEmail(ctx, in.Email)
	if errs.Is(err, errs.KindNotFound) {
		s.hasher.Matches(s.dummyHash, in.Password)
		return Session{}, errs.NotFound(invalidLogin)
	}
	if err != nil {
		return Session{}, err
	}

	if !s.hasher.Matches(user.Password, in.Password) {
		return Session{}, errs.InvalidCredentials(invalidLogin)
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, errs.Internal(err, "Failed to create session")
	}
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// Status never fails: a missing, malformed or expired token is simply
// unauthenticated.
func (s *Service) Status(token string) (*Claims, bool) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
