package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/auth"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*AuthResponse, error)
	RegisterPsychologist(ctx context.Context, req *RegisterPsychologistRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, userID uint) (*models.User, error)
}

type RegisterStudentRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	University      string `json:"university" validate:"required"`
	Course          string `json:"course" validate:"required"`
	Semester        string `json:"semester" validate:"required"`
	ConsentAccepted bool   `json:"consent_accepted"`
}

type RegisterPsychologistRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=255"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	LicenseID       string   `json:"license_id" validate:"required"`
	Specialties     []string `json:"specialties" validate:"required,min=1"`
	Modalities      []string `json:"modalities" validate:"required,min=1,dive,modality"`
	ConsentAccepted bool     `json:"consent_accepted"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User   *models.User    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, validator *utils.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*AuthResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.ConsentAccepted {
		return nil, ErrConsentRequired
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Role:            models.RoleStudent,
		University:      &req.University,
		Course:          &req.Course,
		Semester:        &req.Semester,
		ConsentAccepted: true,
	}
	return s.register(ctx, user, req.Password)
}

func (s *authService) RegisterPsychologist(ctx context.Context, req *RegisterPsychologistRequest) (*AuthResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.ConsentAccepted {
		return nil, ErrConsentRequired
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Role:            models.RolePsychologist,
		LicenseID:       &req.LicenseID,
		Specialties:     datatypes.NewJSONType(req.Specialties),
		Modalities:      datatypes.NewJSONType(req.Modalities),
		ConsentAccepted: true,
	}
	return s.register(ctx, user, req.Password)
}

func (s *authService) register(ctx context.Context, user *models.User, password string) (*AuthResponse, error) {
	taken, err := s.repo.Users().ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.Active = true
	now := time.Now()
	user.ConsentAt = &now

	if err := s.repo.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokens.IssueTokenPair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return &AuthResponse{User: user, Tokens: pair}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.Active || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssueTokenPair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &AuthResponse{User: user, Tokens: pair}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(ctx, refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.Users().GetByID(ctx, claims.UserID)
	if err != nil || !user.Active {
		return nil, ErrInvalidToken
	}

	// Rotate the refresh token so a leaked one stops working after use.
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		s.logger.Warn("failed to revoke refresh token", "error", err)
	}
	return s.tokens.IssueTokenPair(user.ID)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.Verify(ctx, accessToken, auth.TokenTypeAccess)
	if err != nil {
		return ErrInvalidToken
	}
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
