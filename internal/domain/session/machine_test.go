package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/domain/session"
)

var policy = session.Policy{InactivityLimit: 30 * time.Minute, WarningWindow: 5 * time.Minute}

func TestMachine_Transiciones(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m := session.NewMachine(policy, t0)

	assert.Equal(t, session.Active, m.Advance(t0.Add(24*time.Minute)))
	assert.Equal(t, session.Warned, m.Advance(t0.Add(25*time.Minute)))
	assert.Equal(t, session.Expired, m.Advance(t0.Add(30*time.Minute)))

	// Expired es terminal
	assert.Equal(t, session.Expired, m.Advance(t0))
	assert.False(t, m.Touch(t0.Add(31*time.Minute)))
}

func TestMachine_TouchDesdeWarnedVuelveAActive(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m := session.NewMachine(policy, t0)

	require.Equal(t, session.Warned, m.Advance(t0.Add(27*time.Minute)))
	require.True(t, m.Touch(t0.Add(27*time.Minute)))
	assert.Equal(t, session.Active, m.State())

	// los plazos se reinician desde el toque
	assert.Equal(t, session.Active, m.Advance(t0.Add(50*time.Minute)))
	assert.Equal(t, session.Expired, m.Advance(t0.Add(57*time.Minute)))
}

func TestMachine_RemainingYNextTransition(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m := session.NewMachine(policy, t0)

	assert.Equal(t, 20*time.Minute, m.Remaining(t0.Add(10*time.Minute)))
	next, ok := m.NextTransition(t0.Add(10 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, t0.Add(25*time.Minute), next)

	next, ok = m.NextTransition(t0.Add(26 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, t0.Add(30*time.Minute), next)

	_, ok = m.NextTransition(t0.Add(40 * time.Minute))
	assert.False(t, ok)
	assert.Equal(t, time.Duration(0), m.Remaining(t0.Add(40*time.Minute)))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, policy.Validate())
	assert.Error(t, session.Policy{InactivityLimit: time.Minute, WarningWindow: time.Minute}.Validate())
	assert.Error(t, session.Policy{}.Validate())
}
