package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de servidor.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteIdleSince elimina las sesiones sin actividad desde before y devuelve cuántas borró.
	DeleteIdleSince(ctx context.Context, before time.Time) (int64, error)
}
