package logger

import (
	"sync"
	"time"
)

// Throttle limita la frecuencia de un mismo evento (por clave): Allow devuelve true
// como máximo una vez por intervalo. Seguro para uso concurrente.
type Throttle struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

// NewThrottle crea un throttle con el intervalo mínimo entre eventos de una misma clave.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval, now: time.Now, last: make(map[string]time.Time)}
}

// Allow registra el evento y devuelve si debe emitirse.
func (t *Throttle) Allow(key string) bool {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.last[key]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.last[key] = now
	return true
}
