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

// AssessmentService scores and stores self-assessments.
type AssessmentService interface {
	Submit(ctx context.Context, userID uint, req *SubmitAssessmentRequest) (*models.Assessment, error)
	ListMine(ctx context.Context, userID uint) ([]*models.Assessment, error)
	Get(ctx context.Context, requesterID, assessmentID uint) (*models.Assessment, error)
}

type SubmitAssessmentRequest struct {
	Answers models.AnswerSet `json:"answers" validate:"required"`
}

type assessmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAssessmentService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Submit validates the answers, scores them once and persists the result.
// Assessments never get rescored after creation.
func (s *assessmentService) Submit(ctx context.Context, userID uint, req *SubmitAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := ValidateAnswers(req.Answers); err != nil {
		return nil, err
	}

	result := Score(req.Answers)
	assessment := &models.Assessment{
		UserID:            userID,
		Answers:           datatypes.NewJSONType(req.Answers),
		TotalScore:        result.TotalScore,
		RiskTier:          result.RiskTier,
		CategoryBreakdown: datatypes.NewJSONType(result.CategoryBreakdown),
		Recommendations:   datatypes.NewJSONType(result.Recommendations),
	}
	if err := s.repo.Assessments().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}

	s.logger.Info("assessment submitted",
		"user_id", userID,
		"assessment_id", assessment.ID,
		"total_score", result.TotalScore,
		"risk_tier", result.RiskTier)
	return assessment, nil
}

func (s *assessmentService) ListMine(ctx context.Context, userID uint) ([]*models.Assessment, error) {
	return s.repo.Assessments().ListByUser(ctx, userID)
}

// Get returns an assessment to its owner, or to a psychologist holding a
// share for it.
func (s *assessmentService) Get(ctx context.Context, requesterID, assessmentID uint) (*models.Assessment, error) {
	assessment, err := s.repo.Assessments().GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment.UserID == requesterID {
		return assessment, nil
	}

	shared, err := s.repo.Shares().Exists(ctx, assessmentID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check share: %w", err)
	}
	if !shared {
		return nil, ErrAssessmentAccessDenied
	}
	return assessment, nil
}
