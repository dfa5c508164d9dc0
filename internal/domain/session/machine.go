// Package session modela la expiración por inactividad como máquina de estados:
// Active → Warned → Expired. Cualquier interacción antes de expirar vuelve a Active.
package session

import (
	"errors"
	"time"
)

// State estado de la sesión.
type State int

const (
	Active State = iota
	Warned
	Expired
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Warned:
		return "warned"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Policy límites de inactividad. WarningWindow es el tramo final del límite en el que
// la sesión está advertida.
type Policy struct {
	InactivityLimit time.Duration
	WarningWindow   time.Duration
}

// Validate exige 0 <= WarningWindow < InactivityLimit.
func (p Policy) Validate() error {
	if p.InactivityLimit <= 0 {
		return errors.New("session: inactivity limit must be positive")
	}
	if p.WarningWindow < 0 || p.WarningWindow >= p.InactivityLimit {
		return errors.New("session: warning window must be in [0, inactivity limit)")
	}
	return nil
}

// Machine FSM de una sesión. No es segura para uso concurrente.
type Machine struct {
	policy       Policy
	state        State
	lastActivity time.Time
}

// NewMachine crea la máquina en Active con la última actividad indicada.
func NewMachine(p Policy, lastActivity time.Time) *Machine {
	return &Machine{policy: p, state: Active, lastActivity: lastActivity}
}

// State estado actual (sin avanzar el reloj).
func (m *Machine) State() State { return m.state }

// LastActivity momento de la última interacción aceptada.
func (m *Machine) LastActivity() time.Time { return m.lastActivity }

// Advance aplica las transiciones temporales hasta now y devuelve el estado resultante.
// Expired es terminal.
func (m *Machine) Advance(now time.Time) State {
	if m.state == Expired {
		return m.state
	}
	idle := now.Sub(m.lastActivity)
	switch {
	case idle >= m.policy.InactivityLimit:
		m.state = Expired
	case idle >= m.policy.InactivityLimit-m.policy.WarningWindow:
		m.state = Warned
	default:
		m.state = Active
	}
	return m.state
}

// Touch registra una interacción: desde Active o Warned vuelve a Active y reinicia
// los plazos. Devuelve false si la sesión ya expiró (incluido expirar justo ahora).
func (m *Machine) Touch(now time.Time) bool {
	if m.Advance(now) == Expired {
		return false
	}
	m.state = Active
	m.lastActivity = now
	return true
}

// Remaining tiempo hasta expirar desde now (0 si ya expiró).
func (m *Machine) Remaining(now time.Time) time.Duration {
	if m.Advance(now) == Expired {
		return 0
	}
	return m.policy.InactivityLimit - now.Sub(m.lastActivity)
}

// NextTransition momento del próximo cambio de estado si no hay interacción.
func (m *Machine) NextTransition(now time.Time) (time.Time, bool) {
	switch m.Advance(now) {
	case Active:
		return m.lastActivity.Add(m.policy.InactivityLimit - m.policy.WarningWindow), true
	case Warned:
		return m.lastActivity.Add(m.policy.InactivityLimit), true
	}
	return time.Time{}, false
}
