package services

import (
	"context"
	"errors"

	"github.com/masilo/registra/internal/app/models"
	"github.com/masilo/registra/internal/app/models/dto"
	"github.com/masilo/registra/internal/app/repositories"
	"github.com/masilo/registra/internal/pkg/apperrors"
	"github.com/masilo/registra/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// loginMessage is the legacy success text older clients display verbatim.
const loginMessage = "Loging in. please wait..."

// AuthService handles authentication operations
type AuthService struct {
	adminRepo   repositories.IAdminRepository
	studentRepo repositories.IStudentRepository
	sessionRepo repositories.ISessionRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	adminRepo repositories.IAdminRepository,
	studentRepo repositories.IStudentRepository,
	sessionRepo repositories.ISessionRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		studentRepo: studentRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login verifies credentials against admins first, then students. The role in
// the response is resolved from the table the credentials matched; the role
// flag a client may send is never consulted.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if admin, err := s.adminRepo.GetByEmail(ctx, req.Email); err == nil {
		if auth.CheckPassword(admin.Password, req.Password) {
			return s.issueSession(ctx, admin.ID, admin.Email, admin.FullName, models.RoleAdmin, "")
		}
	} else if !errors.Is(err, apperrors.ErrAdminNotFound) {
		return nil, err
	}

	student, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(ctx, student.ID, student.Email, student.FullName, models.RoleStudent, student.StudentNo)
}

func (s *AuthService) issueSession(ctx context.Context, userID int64, email, fullName, role, studentNo string) (*dto.LoginResponse, error) {
	accessToken, sessionID, expiresIn, err := s.jwtService.GenerateAccessToken(userID, email, role, studentNo)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to generate access token")
		return nil, err
	}

	if err := s.sessionRepo.Create(ctx, sessionID, userID, role, s.jwtService.GetSessionExpiry()); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create session record")
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", role).Msg("User logged in")

	return &dto.LoginResponse{
		Message:   loginMessage,
		Role:      role,
		FullName:  fullName,
		Email:     email,
		StudentNo: studentNo,
		Token:     accessToken,
		ExpiresIn: expiresIn,
	}, nil
}

// RegisterAdmin creates a new admin account with a bcrypt-hashed password
func (s *AuthService) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) error {
	exists, err := s.adminRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrAdminEmailExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash admin password")
		return err
	}

	admin := &models.Admin{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashed,
	}

	id, err := s.adminRepo.Create(ctx, admin)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("adminID", id).Str("email", req.Email).Msg("Admin registered")
	return nil
}

// Logout revokes the session backing the given access token. Revoking an
// already-dead session is not an error.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		// An expired or garbled token has nothing left to revoke.
		return nil
	}

	if err := s.sessionRepo.Revoke(ctx, claims.ID); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info().Int64("userID", claims.UserID).Str("role", claims.Role).Msg("User logged out")
	return nil
}

// VerifySession checks that the session backing the token is still live
func (s *AuthService) VerifySession(ctx context.Context, sessionToken string) error {
	_, err := s.sessionRepo.GetByToken(ctx, sessionToken)
	return err
}
