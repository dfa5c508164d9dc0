package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/auth"
	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/session"
	"github.com/jhoicas/Siparis-api/internal/infrastructure/memory"
	"github.com/jhoicas/Siparis-api/pkg/jwt"
)

const secret = "test-secret"

type clock struct{ t time.Time }

func (c *clock) now() time.Time            { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setup(t *testing.T) (*auth.AuthUseCase, *memory.Store, *clock) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Sessions(),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"},
		session.Policy{InactivityLimit: 30 * time.Minute, WarningWindow: 2 * time.Minute},
	)
	c := &clock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	uc.SetClock(c.now)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "Ana@Example.com", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	return uc, store, c
}

func login(t *testing.T, uc *auth.AuthUseCase) *dto.LoginResponse {
	t.Helper()
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	return res
}

func TestRegister(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otro12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x", Password: "corta"})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bo@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, "bo@example.com", u.Name)
}

func TestLogin_TokenConSesion(t *testing.T) {
	uc, _, _ := setup(t)
	res := login(t, uc)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, id.SessionID)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_InactividadYAviso(t *testing.T) {
	uc, _, c := setup(t)
	ctx := context.Background()
	res := login(t, uc)

	c.advance(29 * time.Minute)
	st, err := uc.Status(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "warned", st.State)
	assert.Equal(t, int64(60), st.SecondsRemaining)

	// Una petición reinicia los plazos.
	_, err = uc.Validate(ctx, res.SessionID, true)
	require.NoError(t, err)
	st, err = uc.Status(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "active", st.State)
	assert.Equal(t, c.t.Add(28*time.Minute), st.WarnAt)

	// Consultar el estado no cuenta como actividad.
	c.advance(30 * time.Minute)
	_, err = uc.Status(ctx, res.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
	_, err = uc.Validate(ctx, res.SessionID, true)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestLogoutYPurga(t *testing.T) {
	uc, store, c := setup(t)
	ctx := context.Background()
	first := login(t, uc)
	require.NoError(t, uc.Logout(ctx, first.SessionID))
	_, err := uc.Validate(ctx, first.SessionID, true)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)

	second := login(t, uc)
	c.advance(31 * time.Minute)
	n, err := uc.PurgeIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	s, err := store.Sessions().GetByID(ctx, second.SessionID)
	require.NoError(t, err)
	assert.Nil(t, s)
}
