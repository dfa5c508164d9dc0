package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones de servidor.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sessions (id, user_id, created_at, last_activity_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.UserID, s.CreatedAt, s.LastActivityAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	var s entity.Session
	err := r.q.QueryRow(ctx, `SELECT id, user_id, created_at, last_activity_at FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.LastActivityAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Touch registra actividad. Si la sesión ya no existe devuelve ErrSessionInvalid.
func (r *SessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sessions SET last_activity_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionInvalid
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepo) DeleteIdleSince(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE last_activity_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return cmd.RowsAffected(), nil
}
