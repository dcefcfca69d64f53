package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sntsa.mx/becas/internal/middleware"
	"sntsa.mx/becas/internal/model"
	"sntsa.mx/becas/internal/modules/user/dto"
	"sntsa.mx/becas/internal/modules/user/repository"
	"sntsa.mx/becas/pkg/apperror"
	"sntsa.mx/becas/pkg/validator"
)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error)
	Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error)
	Signout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	repo     repository.UsuarioRepository
	rdb      *redis.Client
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UsuarioRepository, rdb *redis.Client, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		rdb:      rdb,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	if !validator.CURPPattern.MatchString(input.CURP) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "Formato de CURP inválido")
	}

	if input.Password != input.PasswordConfirm {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "Las contraseñas no coinciden")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		CURP:         input.CURP,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, usuario); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrDuplicate, "El usuario ya existe")
		}
		return nil, err
	}

	return s.buildAuthResponse(usuario)
}

func (s *authService) Signin(ctx context.Context, input dto.SigninInput) (*dto.AuthResponse, error) {
	usuario, err := s.repo.FindByCURP(ctx, input.CURP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrUnauthorized, "Usuario o contraseña inválidos")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "Usuario o contraseña inválidos")
	}

	return s.buildAuthResponse(usuario)
}

// Signout parks the token id in the redis denylist until the token would have
// expired on its own.
func (s *authService) Signout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil || jti == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.rdb.Set(ctx, middleware.DenylistKey(jti), "1", ttl).Err()
}

func (s *authService) buildAuthResponse(usuario *model.Usuario) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(usuario)
	if err != nil {
		return nil, err
	}

	usuario.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		Usuario:     usuario,
	}, nil
}

func (s *authService) generateToken(usuario *model.Usuario) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   usuario.ID.String(),
		ID:        uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
