package auth

import "time"

// SetClock reemplaza el reloj en tests.
func (uc *AuthUseCase) SetClock(now func() time.Time) { uc.now = now }
