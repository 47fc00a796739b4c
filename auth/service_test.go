package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/auth"
	"storefront/errs"
	"storefront/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T, admins ...string) (*auth.Service, *store.Memory) {
	t.Helper()
	users := store.NewMemory()
	svc, err := auth.NewService(users, auth.NewTokenManager([]byte("secret"), 32*24*time.Hour), auth.Hasher{Cost: bcrypt.MinCost}, admins)
	require.NoError(t, err)
	return svc, users
}

func signup(email string) auth.SignupInput {
	return auth.SignupInput{Name: "Ada", Email: email, Password: "correct-horse", ConfirmPassword: "correct-horse"}
}

func TestSignupStoresHashOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users := newService(t)

	user, err := svc.Signup(ctx, signup("  Ada@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "customer", user.Role)
	assert.False(t, user.Verified)

	stored, err := users.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))
}

func TestSignupMismatchedPasswords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users := newService(t)

	in := signup("ada@example.com")
	in.ConfirmPassword = "something-else"
	_, err := svc.Signup(ctx, in)

	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "confirmPassword")

	_, err = users.FindUserByEmail(ctx, "ada@example.com")
	assert.True(t, errs.Is(err, errs.KindNotFound), "no user is created")
}

func TestSignupMissingFields(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.Signup(context.Background(), auth.SignupInput{Email: "ada@example.com"})
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "password")
	assert.Contains(t, e.Fields, "confirmPassword")
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Signup(ctx, signup("ada@example.com"))
	require.NoError(t, err)
	_, err = svc.Signup(ctx, signup("ADA@example.com"))
	assert.True(t, errs.Is(err, errs.KindConflict))
}

func TestSignupAdminEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, "Root@Example.com")

	user, err := svc.Signup(context.Background(), signup("root@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)
	user, err := svc.Signup(ctx, signup("ada@example.com"))
	require.NoError(t, err)

	t.Run("success with different case", func(t *testing.T) {
		session, err := svc.Login(ctx, auth.LoginInput{Email: "ADA@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, user.ID, session.User.ID)

		claims, ok := svc.Status(session.Token)
		require.True(t, ok)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		session, err := svc.Login(ctx, auth.LoginInput{Email: "ada@example.com", Password: "wrong-password"})
		assert.True(t, errs.Is(err, errs.KindInvalidCredentials))
		assert.Empty(t, session.Token)
	})

	t.Run("unknown user has the same message", func(t *testing.T) {
		_, missing := svc.Login(ctx, auth.LoginInput{Email: "bob@example.com", Password: "whatever"})
		_, wrong := svc.Login(ctx, auth.LoginInput{Email: "ada@example.com", Password: "wrong-password"})
		assert.True(t, errs.Is(missing, errs.KindNotFound))

		missingMsg, _ := errs.Public(missing)
		wrongMsg, _ := errs.Public(wrong)
		assert.Equal(t, wrongMsg, missingMsg)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{})
		assert.True(t, errs.Is(err, errs.KindValidation))
	})
}

func TestStatusNeverFails(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		claims, ok := svc.Status(token)
		assert.False(t, ok)
		assert.Nil(t, claims)
	}
}
