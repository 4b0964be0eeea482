package services

import (
	"context"
	"time"

	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListPsychologists(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockAssessmentRepository is a mock implementation of AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Assessment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Assessment), args.Error(1)
}

// MockMoodRepository is a mock implementation of MoodRepository
type MockMoodRepository struct {
	mock.Mock
}

func (m *MockMoodRepository) Create(ctx context.Context, entry *models.MoodEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMoodRepository) GetByID(ctx context.Context, id uint) (*models.MoodEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MoodEntry), args.Error(1)
}

func (m *MockMoodRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.MoodEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]*models.MoodEntry), args.Error(1)
}

func (m *MockMoodRepository) ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]*models.MoodEntry, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).([]*models.MoodEntry), args.Error(1)
}

func (m *MockMoodRepository) GetLatestByUser(ctx context.Context, userID uint) (*models.MoodEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MoodEntry), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateWithSlotLock(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.Appointment, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Appointment, error) {
	args := m.Called(ctx, psychologistID)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListActiveByPsychologistFrom(ctx context.Context, psychologistID uint, from time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, psychologistID, from)
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) HasActiveAtSlot(ctx context.Context, psychologistID uint, date time.Time, timeOfDay string) (bool, error) {
	args := m.Called(ctx, psychologistID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) StudentHasActiveAtSlot(ctx context.Context, studentID uint, date time.Time, timeOfDay string) (bool, error) {
	args := m.Called(ctx, studentID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

// MockShareRepository is a mock implementation of ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, share *models.Share) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) GetByID(ctx context.Context, id uint) (*models.Share, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Share), args.Error(1)
}

func (m *MockShareRepository) Update(ctx context.Context, share *models.Share) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.Share, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]*models.Share), args.Error(1)
}

func (m *MockShareRepository) ListByPsychologist(ctx context.Context, psychologistID uint) ([]*models.Share, error) {
	args := m.Called(ctx, psychologistID)
	return args.Get(0).([]*models.Share), args.Error(1)
}

func (m *MockShareRepository) Exists(ctx context.Context, assessmentID, psychologistID uint) (bool, error) {
	args := m.Called(ctx, assessmentID, psychologistID)
	return args.Bool(0), args.Error(1)
}

// mockRepository bundles the entity mocks behind the aggregate interface
type mockRepository struct {
	users        *MockUserRepository
	assessments  *MockAssessmentRepository
	moods        *MockMoodRepository
	appointments *MockAppointmentRepository
	shares       *MockShareRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:        new(MockUserRepository),
		assessments:  new(MockAssessmentRepository),
		moods:        new(MockMoodRepository),
		appointments: new(MockAppointmentRepository),
		shares:       new(MockShareRepository),
	}
}

func (m *mockRepository) Users() repositories.UserRepository               { return m.users }
func (m *mockRepository) Assessments() repositories.AssessmentRepository   { return m.assessments }
func (m *mockRepository) Moods() repositories.MoodRepository               { return m.moods }
func (m *mockRepository) Appointments() repositories.AppointmentRepository { return m.appointments }
func (m *mockRepository) Shares() repositories.ShareRepository             { return m.shares }
