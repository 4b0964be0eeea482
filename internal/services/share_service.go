package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/events"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"gorm.io/gorm"
)

// ShareService links assessments to psychologists.
type ShareService interface {
	Create(ctx context.Context, studentID uint, req *CreateShareRequest) (*models.Share, error)
	ListSent(ctx context.Context, studentID uint) ([]*models.Share, error)
	ListReceived(ctx context.Context, psychologistID uint) ([]*models.Share, error)
	MarkViewed(ctx context.Context, psychologistID, shareID uint) (*models.Share, error)
	UpdateObservations(ctx context.Context, psychologistID, shareID uint, observations string) (*models.Share, error)
}

type CreateShareRequest struct {
	AssessmentID   uint `json:"assessment_id" validate:"required"`
	PsychologistID uint `json:"psychologist_id" validate:"required"`
}

type shareService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewShareService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) ShareService {
	return &shareService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *shareService) Create(ctx context.Context, studentID uint, req *CreateShareRequest) (*models.Share, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	assessment, err := s.repo.Assessments().GetByID(ctx, req.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment.UserID != studentID {
		return nil, ErrAssessmentAccessDenied
	}

	psychologist, err := s.repo.Users().GetByID(ctx, req.PsychologistID)
	if err != nil || !psychologist.IsPsychologist() || !psychologist.Active {
		return nil, ErrPsychologistNotFound
	}

	exists, err := s.repo.Shares().Exists(ctx, req.AssessmentID, req.PsychologistID)
	if err != nil {
		return nil, fmt.Errorf("failed to check share: %w", err)
	}
	if exists {
		return nil, ErrShareAlreadyExists
	}

	share := &models.Share{
		AssessmentID:   req.AssessmentID,
		StudentID:      studentID,
		PsychologistID: req.PsychologistID,
	}
	if err := s.repo.Shares().Create(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	if !assessment.Shared {
		assessment.Shared = true
		if err := s.repo.Assessments().Update(ctx, assessment); err != nil {
			s.logger.Warn("failed to flag assessment as shared", "assessment_id", assessment.ID, "error", err)
		}
	}

	s.publishShared(ctx, share, assessment)
	s.logger.Info("assessment shared",
		"share_id", share.ID,
		"assessment_id", share.AssessmentID,
		"psychologist_id", share.PsychologistID)
	return share, nil
}

func (s *shareService) ListSent(ctx context.Context, studentID uint) ([]*models.Share, error) {
	return s.repo.Shares().ListByStudent(ctx, studentID)
}

func (s *shareService) ListReceived(ctx context.Context, psychologistID uint) ([]*models.Share, error) {
	return s.repo.Shares().ListByPsychologist(ctx, psychologistID)
}

func (s *shareService) MarkViewed(ctx context.Context, psychologistID, shareID uint) (*models.Share, error) {
	share, err := s.getForPsychologist(ctx, psychologistID, shareID)
	if err != nil {
		return nil, err
	}
	if !share.Viewed {
		share.MarkViewed(time.Now())
		if err := s.repo.Shares().Update(ctx, share); err != nil {
			return nil, fmt.Errorf("failed to mark share viewed: %w", err)
		}
	}
	return share, nil
}

func (s *shareService) UpdateObservations(ctx context.Context, psychologistID, shareID uint, observations string) (*models.Share, error) {
	share, err := s.getForPsychologist(ctx, psychologistID, shareID)
	if err != nil {
		return nil, err
	}
	share.Observations = &observations
	if err := s.repo.Shares().Update(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to update observations: %w", err)
	}
	return share, nil
}

func (s *shareService) getForPsychologist(ctx context.Context, psychologistID, shareID uint) (*models.Share, error) {
	share, err := s.repo.Shares().GetByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to load share: %w", err)
	}
	if share.PsychologistID != psychologistID {
		return nil, ErrShareAccessDenied
	}
	return share, nil
}

func (s *shareService) publishShared(ctx context.Context, share *models.Share, assessment *models.Assessment) {
	if s.publisher == nil {
		return
	}
	event := events.NewNotificationEvent(events.EventAssessmentShared, events.AssessmentSharedEvent{
		ShareID:        share.ID,
		AssessmentID:   share.AssessmentID,
		StudentID:      share.StudentID,
		PsychologistID: share.PsychologistID,
		RiskTier:       assessment.RiskTier,
	})
	if err := s.publisher.PublishNotificationEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish share event", "share_id", share.ID, "error", err)
	}
}
