// Package auth implements the account boundary: signup, login, and token
// verification. Passwords are bcrypt-hashed and identity travels as a signed
// HS256 JWT carrying the user id, role, and display name.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/store"
)

type Authenticator struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
}

// Session is what signup and login hand back to the client.
type Session struct {
	Token string         `json:"token"`
	User  model.UserInfo `json:"user"`
}

type claims struct {
	Role model.Role `json:"role"`
	Name string     `json:"name"`
	jwt.RegisteredClaims
}

func New(st store.Store, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{store: st, secret: []byte(secret), ttl: ttl}
}

// Signup registers a new customer account. Emails are unique
// case-insensitively; the duplicate check runs inside the users collection's
// critical section so two concurrent signups cannot both claim an address.
func (a *Authenticator) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.New(apperr.Validation, "a valid email is required")
	}
	if len(password) < 6 {
		return nil, apperr.New(apperr.Validation, "password must be at least 6 characters")
	}

	user, err := a.createUser(ctx, name, email, password, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return a.session(user)
}

// Login verifies credentials and issues a fresh token. Unknown emails and
// wrong passwords produce the same failure so accounts cannot be probed.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := store.View[[]model.User](ctx, a.store, store.Users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return a.session(u)
		}
		break
	}
	return nil, apperr.New(apperr.Unauthenticated, "invalid email or password")
}

// Verify validates a token and returns the actor it identifies.
func (a *Authenticator) Verify(token string) (*model.Actor, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, apperr.New(apperr.Unauthenticated, "invalid or expired token")
	}
	return &model.Actor{ID: c.Subject, Role: c.Role, Name: c.Name}, nil
}

// EnsureStaff seeds a staff account at startup. It is a no-op when the
// email already belongs to a staff account, and fails when the email is
// taken by a non-staff account so a broken staff login cannot pass silently.
func (a *Authenticator) EnsureStaff(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := a.createUser(ctx, name, email, password, model.RoleStaff)
	if err == nil || apperr.KindOf(err) != apperr.Conflict {
		return err
	}
	users, viewErr := store.View[[]model.User](ctx, a.store, store.Users)
	if viewErr != nil {
		return viewErr
	}
	for _, u := range users {
		if u.Email == email {
			if u.Role != model.RoleStaff {
				return fmt.Errorf("staff email %s is already registered with role %s", email, u.Role)
			}
			return nil
		}
	}
	return err
}

func (a *Authenticator) createUser(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = store.Mutate(ctx, a.store, store.Users, func(users *[]model.User) error {
		for _, u := range *users {
			if u.Email == email {
				return apperr.New(apperr.Conflict, "email %s is already registered", email)
			}
		}
		*users = append(*users, user)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (a *Authenticator) session(u model.User) (*Session, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: u.Role,
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: signed, User: u.Info()}, nil
}
