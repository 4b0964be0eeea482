package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssessmentServiceForTest(repo *mockRepository) AssessmentService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAssessmentService(repo, logger, utils.NewValidator())
}

func TestAssessmentService_Submit_ScoresAndStores(t *testing.T) {
	repo := newMockRepository()
	svc := newAssessmentServiceForTest(repo)

	var stored *models.Assessment
	repo.assessments.On("Create", mock.Anything, mock.AnythingOfType("*models.Assessment")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Assessment)
		}).
		Return(nil)

	answers := models.AnswerSet{1: 5, 2: 5, 3: 4, 4: 4, 5: 5, 6: 2, 7: 3, 8: 2}
	assessment, err := svc.Submit(context.Background(), 1, &SubmitAssessmentRequest{Answers: answers})

	require.NoError(t, err)
	assert.Equal(t, 30, assessment.TotalScore)
	assert.Equal(t, models.RiskHigh, assessment.RiskTier)
	assert.Equal(t, answers, assessment.Answers.Data())

	breakdown := assessment.CategoryBreakdown.Data()
	assert.Equal(t, 5, breakdown["academic_stress"])
	assert.Equal(t, 5, breakdown["sleep_rest"])
	assert.Equal(t, 2, breakdown["general_wellbeing"])

	// Tier block plus the tips for academic stress, sleep and anxiety.
	recommendations := assessment.Recommendations.Data()
	assert.Len(t, recommendations, 7)

	require.NotNil(t, stored)
	assert.Same(t, stored, assessment)
}

func TestAssessmentService_Submit_IncompleteAnswers(t *testing.T) {
	repo := newMockRepository()
	svc := newAssessmentServiceForTest(repo)

	_, err := svc.Submit(context.Background(), 1, &SubmitAssessmentRequest{
		Answers: models.AnswerSet{1: 3, 2: 3},
	})

	assert.ErrorIs(t, err, ErrIncompleteAnswers)
	repo.assessments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssessmentService_Submit_AnswerOutOfRange(t *testing.T) {
	repo := newMockRepository()
	svc := newAssessmentServiceForTest(repo)

	_, err := svc.Submit(context.Background(), 1, &SubmitAssessmentRequest{
		Answers: models.AnswerSet{1: 6, 2: 3, 3: 3, 4: 3, 5: 3, 6: 3, 7: 3, 8: 3},
	})

	assert.ErrorIs(t, err, ErrAnswerOutOfRange)
}

func TestAssessmentService_Get_OwnerAndSharedAccess(t *testing.T) {
	repo := newMockRepository()
	svc := newAssessmentServiceForTest(repo)

	assessment := &models.Assessment{ID: 7, UserID: 1}
	repo.assessments.On("GetByID", mock.Anything, uint(7)).Return(assessment, nil)

	got, err := svc.Get(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)

	// A psychologist holding a share may read it.
	repo.shares.On("Exists", mock.Anything, uint(7), uint(2)).Return(true, nil)
	got, err = svc.Get(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)

	// Anyone else is denied.
	repo.shares.On("Exists", mock.Anything, uint(7), uint(99)).Return(false, nil)
	_, err = svc.Get(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrAssessmentAccessDenied)
}
