package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/service/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *user.Service {
	t.Helper()
	return user.New(testdb.NewUoW(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func register(t *testing.T, svc *user.Service, email string) *domain.User {
	t.Helper()
	u, err := svc.Register(context.Background(), user.RegisterInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     email,
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	u := register(t, svc, "Ada@Example.com")
	assert.Equal(t, "ada@example.com", u.Email)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Firstname)

	_, err = svc.Register(ctx, user.RegisterInput{Firstname: "Ada", Email: "ada@example.com", Password: "another-pass"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Register(ctx, user.RegisterInput{Firstname: "Ada", Email: "nope", Password: "another-pass"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Get(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc, "ada@example.com")
	register(t, svc, "grace@example.com")

	last := "King"
	got, err := svc.Update(ctx, u.ID, user.UpdateInput{Lastname: &last})
	require.NoError(t, err)
	assert.Equal(t, "King", got.Lastname)
	assert.Equal(t, "Ada", got.Firstname)

	taken := "Grace@example.com"
	_, err = svc.Update(ctx, u.ID, user.UpdateInput{Email: &taken})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	empty := ""
	_, err = svc.Update(ctx, u.ID, user.UpdateInput{Firstname: &empty})
	require.ErrorIs(t, err, domain.ErrNameRequired)

	fresh := "countess@example.com"
	got, err = svc.Update(ctx, u.ID, user.UpdateInput{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, got.Email)
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc, "ada@example.com")

	err := svc.ChangePassword(ctx, u.ID, "wrong-pass", "brand-new-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, u.ID, "s3cret-pass", "short")
	require.ErrorIs(t, err, domain.ErrInvalidPassword)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "s3cret-pass", "brand-new-pass"))

	ok, err := svc.VerifyPassword(ctx, u.ID, "brand-new-pass")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.VerifyPassword(ctx, u.ID, "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc, "ada@example.com")

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err := svc.Get(ctx, u.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, u.ID), domain.ErrNotFound)
}
