package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// SessionRepo sesiones en memoria.
type SessionRepo struct{ s *Store }

func (r *SessionRepo) Create(ctx context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (r *SessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return domain.ErrSessionInvalid
	}
	sess.LastActivityAt = at
	r.s.sessions[id] = sess
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *SessionRepo) DeleteIdleSince(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sess := range r.s.sessions {
		if sess.LastActivityAt.Before(before) {
			delete(r.s.sessions, id)
			n++
		}
	}
	return n, nil
}
