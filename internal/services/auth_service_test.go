package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/mente-leve/wellbeing-service/internal/auth"
	"github.com/mente-leve/wellbeing-service/internal/cache"
	"github.com/mente-leve/wellbeing-service/internal/models"
	"github.com/mente-leve/wellbeing-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthServiceForTest(repo *mockRepository) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tokens := auth.NewTokenManager("test-secret", cache.NewMemoryCache())
	return NewAuthService(repo, tokens, logger, utils.NewValidator())
}

func validStudentRegistration() *RegisterStudentRequest {
	return &RegisterStudentRequest{
		Name:            "Ana Silva",
		Email:           "ana@university.edu",
		Password:        "s3cret-pass",
		University:      "Federal University",
		Course:          "Computer Science",
		Semester:        "4",
		ConsentAccepted: true,
	}
}

func TestAuthService_RegisterStudent(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("ExistsByEmail", mock.Anything, "ana@university.edu").Return(false, nil)
	repo.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).
		Return(nil)

	resp, err := svc.RegisterStudent(context.Background(), validStudentRegistration())

	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.True(t, resp.User.Active)
	assert.True(t, resp.User.ConsentAccepted)
	require.NotNil(t, resp.User.ConsentAt)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	// The raw password never reaches storage.
	assert.NotEqual(t, "s3cret-pass", resp.User.PasswordHash)
	assert.True(t, auth.CheckPassword(resp.User.PasswordHash, "s3cret-pass"))
}

func TestAuthService_RegisterStudent_EmailTaken(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("ExistsByEmail", mock.Anything, "ana@university.edu").Return(true, nil)

	_, err := svc.RegisterStudent(context.Background(), validStudentRegistration())

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterStudent_ConsentRequired(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	req := validStudentRegistration()
	req.ConsentAccepted = false

	_, err := svc.RegisterStudent(context.Background(), req)

	assert.ErrorIs(t, err, ErrConsentRequired)
}

func TestAuthService_RegisterPsychologist(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("ExistsByEmail", mock.Anything, "costa@clinic.com").Return(false, nil)
	repo.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 2
		}).
		Return(nil)

	resp, err := svc.RegisterPsychologist(context.Background(), &RegisterPsychologistRequest{
		Name:            "Dr. Costa",
		Email:           "costa@clinic.com",
		Password:        "s3cret-pass",
		LicenseID:       "CRP-12345",
		Specialties:     []string{"anxiety"},
		Modalities:      []string{"online"},
		ConsentAccepted: true,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RolePsychologist, resp.User.Role)
	assert.Equal(t, []string{"online"}, resp.User.Modalities.Data())
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &models.User{ID: 1, Email: "ana@university.edu", PasswordHash: hash, Role: models.RoleStudent, Active: true}
	repo.users.On("GetByEmail", mock.Anything, "ana@university.edu").Return(user, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "ana@university.edu", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "ana@university.edu", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailAndInactive(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("GetByEmail", mock.Anything, "nobody@university.edu").Return(nil, gorm.ErrRecordNotFound)
	_, err := svc.Login(context.Background(), &LoginRequest{Email: "nobody@university.edu", Password: "whatever-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	inactive := &models.User{ID: 3, Email: "gone@university.edu", PasswordHash: hash, Active: false}
	repo.users.On("GetByEmail", mock.Anything, "gone@university.edu").Return(inactive, nil)
	_, err = svc.Login(context.Background(), &LoginRequest{Email: "gone@university.edu", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("ExistsByEmail", mock.Anything, "ana@university.edu").Return(false, nil)
	repo.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).
		Return(nil)
	repo.users.On("GetByID", mock.Anything, uint(1)).Return(testStudent(1), nil)

	resp, err := svc.RegisterStudent(context.Background(), validStudentRegistration())
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), resp.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, resp.Tokens.RefreshToken, pair.RefreshToken)

	// The used refresh token is revoked and cannot be replayed.
	_, err = svc.Refresh(context.Background(), resp.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout_RevokesAccessToken(t *testing.T) {
	repo := newMockRepository()
	svc := newAuthServiceForTest(repo)

	repo.users.On("ExistsByEmail", mock.Anything, "ana@university.edu").Return(false, nil)
	repo.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).
		Return(nil)

	resp, err := svc.RegisterStudent(context.Background(), validStudentRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Tokens.AccessToken))

	// A second logout with the same token fails verification.
	err = svc.Logout(context.Background(), resp.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
