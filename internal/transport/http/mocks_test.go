package http

import (
	"context"
	"io"
	"time"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *AuthServiceMock) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *AuthServiceMock) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *AuthServiceMock) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string) (*domain.User, error) {
	args := m.Called(ctx, userID, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *UserServiceMock) UploadProfilePicture(ctx context.Context, userID uuid.UUID, filename string, content io.Reader) (*domain.User, error) {
	args := m.Called(ctx, userID, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) CreateUser(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, email, password, fullName, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *UserServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CycleServiceMock struct {
	mock.Mock
}

var _ service.CycleService = (*CycleServiceMock)(nil)

func (m *CycleServiceMock) ListCycles(ctx context.Context) ([]domain.Cycle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cycle), args.Error(1)
}

func (m *CycleServiceMock) GetCycle(ctx context.Context, id int) (*domain.Cycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleServiceMock) CreateCycle(ctx context.Context, name string, start, end time.Time, description *string) (*domain.Cycle, error) {
	args := m.Called(ctx, name, start, end, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleServiceMock) UpdateCycle(ctx context.Context, id int, patch domain.CyclePatch) (*domain.Cycle, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleServiceMock) DeleteCycle(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CycleServiceMock) ActivateCycle(ctx context.Context, id int) (*domain.Cycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cycle), args.Error(1)
}

type ApplicationServiceMock struct {
	mock.Mock
}

var _ service.ApplicationService = (*ApplicationServiceMock)(nil)

func (m *ApplicationServiceMock) CreateApplication(ctx context.Context, applicantID uuid.UUID, form service.ApplicationForm) (*domain.Application, error) {
	args := m.Called(ctx, applicantID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) GetOwnApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, userID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) GetOwnStatus(ctx context.Context, userID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) UpdateOwnApplication(ctx context.Context, userID, appID uuid.UUID, patch domain.ApplicationPatch) (*domain.Application, error) {
	args := m.Called(ctx, userID, appID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) DeleteOwnApplication(ctx context.Context, userID, appID uuid.UUID) error {
	args := m.Called(ctx, userID, appID)
	return args.Error(0)
}

func (m *ApplicationServiceMock) SubmitApplication(ctx context.Context, userID, appID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, userID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) ListApplications(ctx context.Context, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ApplicationWithNames), args.Int(1), args.Error(2)
}

func (m *ApplicationServiceMock) GetApplicationWithReview(ctx context.Context, appID uuid.UUID) (*service.ApplicationWithReview, error) {
	args := m.Called(ctx, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationWithReview), args.Error(1)
}

func (m *ApplicationServiceMock) AssignReviewer(ctx context.Context, appID, reviewerID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, appID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationServiceMock) AvailableReviewers(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *ApplicationServiceMock) DecideApplication(ctx context.Context, appID uuid.UUID, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	args := m.Called(ctx, appID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) ListAssigned(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationWithNames), args.Error(1)
}

func (m *ReviewServiceMock) GetAssigned(ctx context.Context, reviewerID, appID uuid.UUID) (*service.ApplicationWithReview, error) {
	args := m.Called(ctx, reviewerID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationWithReview), args.Error(1)
}

func (m *ReviewServiceMock) SaveReview(ctx context.Context, reviewerID, appID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	args := m.Called(ctx, reviewerID, appID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
