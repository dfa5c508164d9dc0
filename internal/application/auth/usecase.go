package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/internal/domain/repository"
	"github.com/jhoicas/Siparis-api/internal/domain/session"
	"github.com/jhoicas/Siparis-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y sesiones de servidor
// con expiración por inactividad.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	policy      session.Policy
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, policy session.Policy) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, policy: policy, now: time.Now}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, abre una sesión de servidor y genera el JWT que la referencia.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	sess := &entity.Session{ID: uuid.New().String(), UserID: user.ID, CreatedAt: now, LastActivityAt: now}
	if err := uc.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: user.ID, Role: user.Role, SessionID: sess.ID}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		User:      *toUserResponse(user),
	}, nil
}

// Logout cierra la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// Validate avanza la máquina de la sesión. Expirada: se borra y devuelve ErrSessionInvalid.
// Con touch=true la petición cuenta como actividad y reinicia los plazos.
func (uc *AuthUseCase) Validate(ctx context.Context, sessionID string, touch bool) (*entity.Session, error) {
	sess, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionInvalid
	}
	now := uc.now()
	m := session.NewMachine(uc.policy, sess.LastActivityAt)
	if m.Advance(now) == session.Expired {
		if err := uc.sessionRepo.Delete(ctx, sess.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionInvalid
	}
	if !touch {
		return sess, nil
	}
	m.Touch(now)
	if err := uc.sessionRepo.Touch(ctx, sess.ID, m.LastActivity()); err != nil {
		return nil, err
	}
	sess.LastActivityAt = m.LastActivity()
	return sess, nil
}

// Status estado de la sesión sin contarlo como actividad.
func (uc *AuthUseCase) Status(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, err := uc.Validate(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	m := session.NewMachine(uc.policy, sess.LastActivityAt)
	state := m.Advance(now)
	out := &dto.SessionResponse{
		SessionID:        sess.ID,
		State:            state.String(),
		LastActivityAt:   sess.LastActivityAt,
		SecondsRemaining: int64(m.Remaining(now) / time.Second),
		ExpiresAt:        sess.LastActivityAt.Add(uc.policy.InactivityLimit),
	}
	if state == session.Active {
		out.WarnAt = sess.LastActivityAt.Add(uc.policy.InactivityLimit - uc.policy.WarningWindow)
	}
	return out, nil
}

// PurgeIdle borra las sesiones inactivas más allá del límite. Lo ejecuta un janitor periódico.
func (uc *AuthUseCase) PurgeIdle(ctx context.Context) (int64, error) {
	return uc.sessionRepo.DeleteIdleSince(ctx, uc.now().Add(-uc.policy.InactivityLimit))
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(u), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
