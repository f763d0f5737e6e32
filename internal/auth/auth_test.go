package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/store"
)

func newAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return New(fs, "test-secret", time.Hour)
}

func TestSignupLoginVerify(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	session, err := a.Signup(ctx, "Ada", "Ada@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, model.RoleCustomer, session.User.Role)

	login, err := a.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	actor, err := a.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, actor.ID)
	assert.Equal(t, model.RoleCustomer, actor.Role)
	assert.Equal(t, "Ada", actor.Name)
}

func TestSignupDuplicateEmail(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	// Case-insensitive duplicate.
	_, err = a.Signup(ctx, "Other Ada", "ADA@example.com", "password")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestSignupValidation(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "", "ada@example.com", "hunter22")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = a.Signup(ctx, "Ada", "not-an-email", "hunter22")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = a.Signup(ctx, "Ada", "ada@example.com", "short")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestLoginWrongPassword(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, err = a.Login(ctx, "ada@example.com", "wrong")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = a.Login(ctx, "nobody@example.com", "hunter22")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Verify("not-a-token")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	other := New(fs, "other-secret", time.Hour)
	session, err := other.Signup(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	_, err = a.Verify(session.Token)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestEnsureStaffIdempotent(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	require.NoError(t, a.EnsureStaff(ctx, "Boss", "boss@example.com", "password1"))
	require.NoError(t, a.EnsureStaff(ctx, "Boss", "boss@example.com", "password1"))

	session, err := a.Login(ctx, "boss@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, session.User.Role)
}

func TestEnsureStaffRejectsCustomerEmail(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	_, err := a.Signup(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)

	// The address belongs to a customer; seeding must fail loudly instead
	// of reporting a staff account that cannot log in as staff.
	err = a.EnsureStaff(ctx, "Boss", "ada@example.com", "password1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role customer")
}
