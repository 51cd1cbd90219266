package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
	"github.com/tu-usuario/planta-pro/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: login, refresh, me y registro.
type AuthUseCase struct {
	userRepo repository.UserRepository
	logRepo  repository.SystemLogRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. logRepo puede ser nil (sin bitácora).
func NewAuthUseCase(userRepo repository.UserRepository, logRepo repository.SystemLogRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, logRepo: logRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera access + refresh tokens y retorna la
// proyección del usuario sin password. Cuenta inactiva -> ErrForbidden.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.audit(entity.LogLevelWarn, "login_failed", "email no registrado", in.Email)
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.audit(entity.LogLevelWarn, "login_failed", "password incorrecto", in.Email)
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return nil, err
	}
	uc.audit(entity.LogLevelInfo, "login", "inicio de sesión", user.Email)
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *toUserResponse(user),
	}, nil
}

// Refresh valida un refresh token y emite un nuevo access token. El usuario se
// re-resuelve en DB: si fue borrado o desactivado, el refresh deja de servir.
func (uc *AuthUseCase) Refresh(in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, in.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrUserNotFound
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// Me re-resuelve el usuario del token en DB. Usuario borrado -> ErrUserNotFound.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Department:   in.Department,
		Phone:        in.Phone,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// audit registra el evento en system_logs si hay repo configurado; el error de
// bitácora nunca tumba el flujo de auth.
func (uc *AuthUseCase) audit(level, action, detail, actor string) {
	if uc.logRepo == nil {
		return
	}
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:        uuid.New().String(),
		Level:     level,
		Action:    action,
		Detail:    detail,
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		Phone:      u.Phone,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
