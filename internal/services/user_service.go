package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService manages profiles and the psychologist directory.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
	ListPsychologists(ctx context.Context) ([]*models.User, error)
	GetPsychologist(ctx context.Context, id uint) (*models.User, error)
}

// UpdateProfileRequest carries the editable profile fields. Role-specific
// fields are applied only when the user holds the matching role; the role
// itself is immutable.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`

	// Student fields
	University *string `json:"university,omitempty"`
	Course     *string `json:"course,omitempty"`
	Semester   *string `json:"semester,omitempty"`

	// Psychologist fields
	LicenseID    *string                   `json:"license_id,omitempty"`
	Specialties  []string                  `json:"specialties,omitempty"`
	Modalities   []string                  `json:"modalities,omitempty" validate:"omitempty,dive,modality"`
	Availability models.WeeklyAvailability `json:"availability,omitempty"`
}

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.repo.Users().ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if user.Role == models.RoleStudent {
		if req.University != nil {
			user.University = req.University
		}
		if req.Course != nil {
			user.Course = req.Course
		}
		if req.Semester != nil {
			user.Semester = req.Semester
		}
	}

	if user.IsPsychologist() {
		if req.LicenseID != nil {
			user.LicenseID = req.LicenseID
		}
		if req.Specialties != nil {
			user.Specialties = datatypes.NewJSONType(req.Specialties)
		}
		if req.Modalities != nil {
			user.Modalities = datatypes.NewJSONType(req.Modalities)
		}
		if req.Availability != nil {
			user.Availability = datatypes.NewJSONType(req.Availability)
		}
	}

	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.logger.Info("profile updated", "user_id", user.ID)
	return user, nil
}

// DeleteAccount removes the user and everything they own.
func (s *userService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.Users().Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.logger.Info("account deleted", "user_id", userID)
	return nil
}

func (s *userService) ListPsychologists(ctx context.Context) ([]*models.User, error) {
	return s.repo.Users().ListPsychologists(ctx)
}

func (s *userService) GetPsychologist(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPsychologistNotFound
		}
		return nil, fmt.Errorf("failed to load psychologist: %w", err)
	}
	if !user.IsPsychologist() || !user.Active {
		return nil, ErrPsychologistNotFound
	}
	return user, nil
}
