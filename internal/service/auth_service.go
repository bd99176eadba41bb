package service

import (
	"errors"
	"time"

	"go-toko-admin/internal/repository"
	"go-toko-admin/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	// Login validates the credentials and returns a signed session token.
	Login(username, password string) (string, error)
	// Logout rotates the admin's token version so outstanding session
	// cookies stop validating.
	Logout(adminID uint) error
}

type authService struct {
	adminRepo  repository.AdminRepository
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, secret []byte, sessionTTL time.Duration) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Login(username, password string) (string, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !admin.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}

	// Single session per admin: a fresh version invalidates older cookies.
	version := uuid.New().String()
	if err := s.adminRepo.UpdateTokenVersion(admin.ID, version); err != nil {
		return "", err
	}

	return jwt.GenerateToken(s.secret, admin.ID, admin.Username, version, s.sessionTTL)
}

func (s *authService) Logout(adminID uint) error {
	return s.adminRepo.UpdateTokenVersion(adminID, uuid.New().String())
}
