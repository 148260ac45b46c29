package service

import (
	"context"
	"database/sql"
	"io"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/a2sv-g68/admissions-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *UserRepositoryMock) ListByRole(ctx context.Context, role domain.Role, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, role, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *UserRepositoryMock) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CycleRepositoryMock struct {
	mock.Mock
}

var _ repository.CycleRepository = (*CycleRepositoryMock)(nil)

func (m *CycleRepositoryMock) Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error) {
	args := m.Called(ctx, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleRepositoryMock) GetByID(ctx context.Context, id int) (*domain.Cycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleRepositoryMock) GetActive(ctx context.Context) (*domain.Cycle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleRepositoryMock) List(ctx context.Context) ([]domain.Cycle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Cycle), args.Error(1)
}

func (m *CycleRepositoryMock) Update(ctx context.Context, id int, patch domain.CyclePatch) (*domain.Cycle, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Cycle), args.Error(1)
}

func (m *CycleRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CycleRepositoryMock) Activate(ctx context.Context, id int) (*domain.Cycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Cycle), args.Error(1)
}

type ApplicationRepositoryMock struct {
	mock.Mock
}

var _ repository.ApplicationRepository = (*ApplicationRepositoryMock)(nil)

func (m *ApplicationRepositoryMock) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepositoryMock) GetByApplicantID(ctx context.Context, applicantID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepositoryMock) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepositoryMock) Update(ctx context.Context, ext sqlx.ExtContext, app *domain.Application) (*domain.Application, error) {
	args := m.Called(ctx, ext, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApplicationRepositoryMock) ListByCycle(ctx context.Context, cycleID int, status *domain.ApplicationStatus, offset, limit int) ([]domain.ApplicationWithNames, int, error) {
	args := m.Called(ctx, cycleID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]domain.ApplicationWithNames), args.Int(1), args.Error(2)
}

func (m *ApplicationRepositoryMock) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ApplicationWithNames, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ApplicationWithNames), args.Error(1)
}

func (m *ApplicationRepositoryMock) GetWithNames(ctx context.Context, id uuid.UUID) (*domain.ApplicationWithNames, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ApplicationWithNames), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) Upsert(ctx context.Context, applicationID, reviewerID uuid.UUID, patch domain.ReviewPatch) (*domain.Review, error) {
	args := m.Called(ctx, applicationID, reviewerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type UploaderMock struct {
	mock.Mock
}

func (m *UploaderMock) Upload(filename string, content io.Reader) (string, error) {
	args := m.Called(filename, content)
	return args.String(0), args.Error(1)
}

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}
