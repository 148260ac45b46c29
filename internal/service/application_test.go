package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/a2sv-g68/admissions-service/internal/apperrors"
	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplicationServiceImpl_CreateApplication(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	applicantID := uuid.New()
	activeCycle := &domain.Cycle{ID: 7, Name: "G68", IsActive: true}

	testCases := []struct {
		name            string
		form            ApplicationForm
		setupMocks      func(apps *ApplicationRepositoryMock, cycles *CycleRepositoryMock, uploader *UploaderMock)
		expectedErrorIs error
	}{
		{
			name: "Success with resume",
			form: ApplicationForm{
				School:         "AAU",
				ResumeFilename: "resume.pdf",
				Resume:         strings.NewReader("%PDF"),
			},
			setupMocks: func(apps *ApplicationRepositoryMock, cycles *CycleRepositoryMock, uploader *UploaderMock) {
				cycles.On("GetActive", ctx).Return(activeCycle, nil).Once()
				uploader.On("Upload", "resume.pdf", mock.Anything).Return("/static/abc_resume.pdf", nil).Once()
				apps.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.ApplicantID == applicantID &&
						a.CycleID == 7 &&
						a.Status == domain.StatusInProgress &&
						a.ResumeURL == "/static/abc_resume.pdf"
				})).Return(&domain.Application{ID: uuid.New(), Status: domain.StatusInProgress}, nil).Once()
			},
		},
		{
			name: "Failure - no active cycle",
			form: ApplicationForm{School: "AAU"},
			setupMocks: func(apps *ApplicationRepositoryMock, cycles *CycleRepositoryMock, uploader *UploaderMock) {
				cycles.On("GetActive", ctx).Return(nil, apperrors.ErrNoActiveCycle).Once()
			},
			expectedErrorIs: apperrors.ErrNoActiveCycle,
		},
		{
			name: "Failure - applicant already applied",
			form: ApplicationForm{School: "AAU"},
			setupMocks: func(apps *ApplicationRepositoryMock, cycles *CycleRepositoryMock, uploader *UploaderMock) {
				cycles.On("GetActive", ctx).Return(activeCycle, nil).Once()
				apps.On("Create", ctx, mock.Anything).
					Return(nil, &apperrors.ApplicationExistsError{ApplicantID: applicantID.String()}).Once()
			},
			expectedErrorIs: apperrors.ErrAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appsMock := new(ApplicationRepositoryMock)
			cyclesMock := new(CycleRepositoryMock)
			uploaderMock := new(UploaderMock)
			tc.setupMocks(appsMock, cyclesMock, uploaderMock)

			service := NewApplicationService(NewBaseService(nil, logger), appsMock, cyclesMock, nil, nil, uploaderMock)
			app, err := service.CreateApplication(ctx, applicantID, tc.form)

			if tc.expectedErrorIs != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErrorIs)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				assert.Equal(t, domain.StatusInProgress, app.Status)
			}

			appsMock.AssertExpectations(t)
			cyclesMock.AssertExpectations(t)
			uploaderMock.AssertExpectations(t)
		})
	}
}

func TestApplicationServiceImpl_SubmitApplication(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ownerID := uuid.New()
	appID := uuid.New()

	draft := func() *domain.Application {
		return &domain.Application{ID: appID, ApplicantID: ownerID, Status: domain.StatusInProgress}
	}

	testCases := []struct {
		name            string
		caller          uuid.UUID
		setupMocks      func(transactor *TransactorMock, apps *ApplicationRepositoryMock)
		expectedErrorIs error
	}{
		{
			name:   "Success - stamps submitted_at",
			caller: ownerID,
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectCommit()

				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).Return(draft(), nil).Once()
				apps.On("Update", ctx, mockedTx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.Status == domain.StatusSubmitted && a.SubmittedAt != nil
				})).Return(&domain.Application{
					ID:          appID,
					Status:      domain.StatusSubmitted,
					SubmittedAt: &time.Time{},
				}, nil).Once()
			},
		},
		{
			name:   "Failure - not the owner",
			caller: uuid.New(),
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectRollback()

				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).Return(draft(), nil).Once()
			},
			expectedErrorIs: apperrors.ErrNotOwner,
		},
		{
			name:   "Failure - already submitted",
			caller: ownerID,
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectRollback()

				submitted := draft()
				submitted.Status = domain.StatusSubmitted

				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).Return(submitted, nil).Once()
			},
			expectedErrorIs: apperrors.ErrConflict,
		},
		{
			name:   "Failure - application missing",
			caller: ownerID,
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectRollback()

				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).Return(nil, apperrors.ErrNotFound).Once()
			},
			expectedErrorIs: apperrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transactorMock := new(TransactorMock)
			appsMock := new(ApplicationRepositoryMock)
			tc.setupMocks(transactorMock, appsMock)

			service := NewApplicationService(NewBaseService(transactorMock, logger), appsMock, nil, nil, nil, nil)
			app, err := service.SubmitApplication(ctx, tc.caller, appID)

			if tc.expectedErrorIs != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErrorIs)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				assert.Equal(t, domain.StatusSubmitted, app.Status)
			}

			transactorMock.AssertExpectations(t)
			appsMock.AssertExpectations(t)
		})
	}
}

func TestApplicationServiceImpl_UpdateOwnApplication(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ownerID := uuid.New()
	appID := uuid.New()
	newSchool := "ASTU"

	testCases := []struct {
		name            string
		status          domain.ApplicationStatus
		expectedErrorIs error
	}{
		{
			name:   "Success - draft is editable",
			status: domain.StatusInProgress,
		},
		{
			name:            "Failure - submitted is frozen",
			status:          domain.StatusSubmitted,
			expectedErrorIs: apperrors.ErrConflict,
		},
		{
			name:            "Failure - decided is frozen",
			status:          domain.StatusAccepted,
			expectedErrorIs: apperrors.ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mockedTx, smock := newMockDBAndTx(t)

			transactorMock := new(TransactorMock)
			appsMock := new(ApplicationRepositoryMock)

			transactorMock.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
			appsMock.On("GetByIDWithLock", ctx, mockedTx, appID).
				Return(&domain.Application{ID: appID, ApplicantID: ownerID, Status: tc.status}, nil).Once()

			if tc.expectedErrorIs == nil {
				smock.ExpectCommit()
				appsMock.On("Update", ctx, mockedTx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.School == newSchool && a.Status == domain.StatusInProgress
				})).Return(&domain.Application{ID: appID, School: newSchool}, nil).Once()
			} else {
				smock.ExpectRollback()
			}

			service := NewApplicationService(NewBaseService(transactorMock, logger), appsMock, nil, nil, nil, nil)
			app, err := service.UpdateOwnApplication(ctx, ownerID, appID, domain.ApplicationPatch{School: &newSchool})

			if tc.expectedErrorIs != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErrorIs)

				var transition *apperrors.IllegalTransitionError
				assert.ErrorAs(t, err, &transition)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				assert.Equal(t, newSchool, app.School)
			}

			transactorMock.AssertExpectations(t)
			appsMock.AssertExpectations(t)
		})
	}
}

func TestApplicationServiceImpl_AssignReviewer(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	appID := uuid.New()
	reviewerID := uuid.New()

	reviewer := &domain.User{ID: reviewerID, Role: domain.RoleReviewer, IsActive: true}

	testCases := []struct {
		name            string
		setupMocks      func(transactor *TransactorMock, apps *ApplicationRepositoryMock, users *UserRepositoryMock)
		expectedErrorIs error
	}{
		{
			name: "Success - submitted moves to pending_review",
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock, users *UserRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectCommit()

				users.On("GetByID", ctx, reviewerID).Return(reviewer, nil).Once()
				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).
					Return(&domain.Application{ID: appID, Status: domain.StatusSubmitted}, nil).Once()
				apps.On("Update", ctx, mockedTx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.Status == domain.StatusPendingReview &&
						a.AssignedReviewerID != nil && *a.AssignedReviewerID == reviewerID
				})).Return(&domain.Application{
					ID:                 appID,
					Status:             domain.StatusPendingReview,
					AssignedReviewerID: &reviewerID,
				}, nil).Once()
			},
		},
		{
			name: "Failure - assignee is not a reviewer",
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock, users *UserRepositoryMock) {
				users.On("GetByID", ctx, reviewerID).
					Return(&domain.User{ID: reviewerID, Role: domain.RoleApplicant}, nil).Once()
			},
			expectedErrorIs: apperrors.ErrValidation,
		},
		{
			name: "Failure - reviewer does not exist",
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock, users *UserRepositoryMock) {
				users.On("GetByID", ctx, reviewerID).Return(nil, apperrors.ErrNotFound).Once()
			},
			expectedErrorIs: apperrors.ErrNotFound,
		},
		{
			name: "Success - assigning a draft is allowed",
			setupMocks: func(transactor *TransactorMock, apps *ApplicationRepositoryMock, users *UserRepositoryMock) {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectCommit()

				users.On("GetByID", ctx, reviewerID).Return(reviewer, nil).Once()
				transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				apps.On("GetByIDWithLock", ctx, mockedTx, appID).
					Return(&domain.Application{ID: appID, Status: domain.StatusInProgress}, nil).Once()
				apps.On("Update", ctx, mockedTx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.Status == domain.StatusPendingReview &&
						a.AssignedReviewerID != nil && *a.AssignedReviewerID == reviewerID
				})).Return(&domain.Application{
					ID:                 appID,
					Status:             domain.StatusPendingReview,
					AssignedReviewerID: &reviewerID,
				}, nil).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transactorMock := new(TransactorMock)
			appsMock := new(ApplicationRepositoryMock)
			usersMock := new(UserRepositoryMock)
			tc.setupMocks(transactorMock, appsMock, usersMock)

			service := NewApplicationService(NewBaseService(transactorMock, logger), appsMock, nil, usersMock, nil, nil)
			app, err := service.AssignReviewer(ctx, appID, reviewerID)

			if tc.expectedErrorIs != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErrorIs)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				assert.Equal(t, domain.StatusPendingReview, app.Status)
			}

			transactorMock.AssertExpectations(t)
			appsMock.AssertExpectations(t)
			usersMock.AssertExpectations(t)
		})
	}
}

func TestApplicationServiceImpl_DecideApplication(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	appID := uuid.New()
	notes := "strong performance across all rounds"

	testCases := []struct {
		name            string
		decision        domain.ApplicationStatus
		currentStatus   domain.ApplicationStatus
		expectedErrorIs error
	}{
		{
			name:          "Success - accept",
			decision:      domain.StatusAccepted,
			currentStatus: domain.StatusPendingReview,
		},
		{
			name:          "Success - reject",
			decision:      domain.StatusRejected,
			currentStatus: domain.StatusPendingReview,
		},
		{
			name:          "Success - deciding a submitted application is allowed",
			decision:      domain.StatusAccepted,
			currentStatus: domain.StatusSubmitted,
		},
		{
			name:            "Failure - arbitrary status is not a decision",
			decision:        domain.StatusInProgress,
			expectedErrorIs: apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transactorMock := new(TransactorMock)
			appsMock := new(ApplicationRepositoryMock)

			if tc.expectedErrorIs == nil {
				_, mockedTx, smock := newMockDBAndTx(t)
				smock.ExpectCommit()

				transactorMock.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(mockedTx, nil).Once()
				appsMock.On("GetByIDWithLock", ctx, mockedTx, appID).
					Return(&domain.Application{ID: appID, Status: tc.currentStatus}, nil).Once()
				appsMock.On("Update", ctx, mockedTx, mock.MatchedBy(func(a *domain.Application) bool {
					return a.Status == tc.decision && a.DecisionNotes != nil && *a.DecisionNotes == notes
				})).Return(&domain.Application{ID: appID, Status: tc.decision, DecisionNotes: &notes}, nil).Once()
			}

			service := NewApplicationService(NewBaseService(transactorMock, logger), appsMock, nil, nil, nil, nil)
			app, err := service.DecideApplication(ctx, appID, tc.decision, &notes)

			if tc.expectedErrorIs != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErrorIs)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, app)
				assert.Equal(t, tc.decision, app.Status)
			}

			transactorMock.AssertExpectations(t)
			appsMock.AssertExpectations(t)
		})
	}
}

func TestApplicationServiceImpl_ListApplications(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	activeCycle := &domain.Cycle{ID: 3, IsActive: true}
	pending := domain.StatusPendingReview

	t.Run("Success - scoped to the active cycle", func(t *testing.T) {
		appsMock := new(ApplicationRepositoryMock)
		cyclesMock := new(CycleRepositoryMock)

		cyclesMock.On("GetActive", ctx).Return(activeCycle, nil).Once()
		appsMock.On("ListByCycle", ctx, 3, &pending, 20, 10).
			Return([]domain.ApplicationWithNames{{ApplicantName: "Abel"}}, 41, nil).Once()

		service := NewApplicationService(NewBaseService(nil, logger), appsMock, cyclesMock, nil, nil, nil)
		apps, total, err := service.ListApplications(ctx, &pending, 20, 10)

		require.NoError(t, err)
		assert.Equal(t, 41, total)
		require.Len(t, apps, 1)
		assert.Equal(t, "Abel", apps[0].ApplicantName)

		appsMock.AssertExpectations(t)
		cyclesMock.AssertExpectations(t)
	})

	t.Run("Success - no active cycle lists nothing", func(t *testing.T) {
		cyclesMock := new(CycleRepositoryMock)
		cyclesMock.On("GetActive", ctx).Return(nil, apperrors.ErrNoActiveCycle).Once()

		service := NewApplicationService(NewBaseService(nil, logger), nil, cyclesMock, nil, nil, nil)
		apps, total, err := service.ListApplications(ctx, nil, 0, 10)

		require.NoError(t, err)
		assert.Empty(t, apps)
		assert.Zero(t, total)
		cyclesMock.AssertExpectations(t)
	})
}

func TestApplicationServiceImpl_GetOwnApplication(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ownerID := uuid.New()
	appID := uuid.New()

	appsMock := new(ApplicationRepositoryMock)
	appsMock.On("GetByID", ctx, appID).
		Return(&domain.Application{ID: appID, ApplicantID: ownerID}, nil).Twice()

	service := NewApplicationService(NewBaseService(nil, logger), appsMock, nil, nil, nil, nil)

	app, err := service.GetOwnApplication(ctx, ownerID, appID)
	require.NoError(t, err)
	assert.Equal(t, appID, app.ID)

	_, err = service.GetOwnApplication(ctx, uuid.New(), appID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	appsMock.AssertExpectations(t)
}

func TestApplicationServiceImpl_GetApplicationWithReview(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	appID := uuid.New()
	appWithNames := &domain.ApplicationWithNames{
		Application:   domain.Application{ID: appID, Status: domain.StatusPendingReview},
		ApplicantName: "Abel",
	}

	t.Run("Success - review missing is not an error", func(t *testing.T) {
		appsMock := new(ApplicationRepositoryMock)
		reviewsMock := new(ReviewRepositoryMock)

		appsMock.On("GetWithNames", ctx, appID).Return(appWithNames, nil).Once()
		reviewsMock.On("GetByApplicationID", ctx, appID).Return(nil, apperrors.ErrNotFound).Once()

		service := NewApplicationService(NewBaseService(nil, logger), appsMock, nil, nil, reviewsMock, nil)
		result, err := service.GetApplicationWithReview(ctx, appID)

		require.NoError(t, err)
		assert.Equal(t, "Abel", result.Application.ApplicantName)
		assert.Nil(t, result.Review)
	})

	t.Run("Failure - other review errors propagate", func(t *testing.T) {
		appsMock := new(ApplicationRepositoryMock)
		reviewsMock := new(ReviewRepositoryMock)

		appsMock.On("GetWithNames", ctx, appID).Return(appWithNames, nil).Once()
		reviewsMock.On("GetByApplicationID", ctx, appID).Return(nil, errors.New("db down")).Once()

		service := NewApplicationService(NewBaseService(nil, logger), appsMock, nil, nil, reviewsMock, nil)
		_, err := service.GetApplicationWithReview(ctx, appID)

		assert.Error(t, err)
	})
}
