package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AppointmentServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAppointmentRepository
	service  portssvc.AppointmentSvcFacade
	ctx      context.Context
}

func (suite *AppointmentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAppointmentRepository)
	suite.service = services.NewAppointmentService(suite.mockRepo, services.WithClock(func() time.Time { return fixedNow }))
	suite.ctx = context.Background()
}

func tuning() domain.Appointment {
	return domain.Appointment{
		Client:          "Ana",
		Service:         "Tuning",
		Date:            time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Time:            "10:30",
		DurationMinutes: 90,
		Amount:          decimal.NewFromInt(80),
		Reminder:        "1 day before",
		Location:        "Downtown",
		PianoType:       domain.Upright,
	}
}

func (suite *AppointmentServiceTestSuite) TestCreateAppointment_DefaultsStatus() {
	suite.mockRepo.On("SaveAppointment", suite.ctx, mock.MatchedBy(func(a domain.Appointment) bool {
		return a.Status == domain.StatusPending && a.AppointmentID != "" && a.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	created, err := suite.service.CreateAppointment(suite.ctx, tuning())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, created.Status)
	suite.Equal(created.CreatedAt, created.UpdatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AppointmentServiceTestSuite) TestCreateAppointment_BadPianoType() {
	a := tuning()
	a.PianoType = "harpsichord"

	created, err := suite.service.CreateAppointment(suite.ctx, a)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAppointment", mock.Anything, mock.Anything)
}

func (suite *AppointmentServiceTestSuite) TestGetAppointmentByID_InvalidID() {
	_, err := suite.service.GetAppointmentByID(suite.ctx, "123")

	suite.ErrorIs(err, apperrors.ErrInvalidID)
}

func (suite *AppointmentServiceTestSuite) TestUpdateAppointment_ReplacesWithPathID() {
	id := uuid.NewString()
	stored := &domain.Appointment{AppointmentID: id}
	suite.mockRepo.On("ReplaceAppointment", suite.ctx, mock.MatchedBy(func(a domain.Appointment) bool {
		return a.AppointmentID == id && a.UpdatedAt.Equal(fixedNow) && a.Status == domain.StatusPending
	})).Return(stored, nil).Once()

	updated, err := suite.service.UpdateAppointment(suite.ctx, id, tuning())

	suite.Require().NoError(err)
	suite.Equal(stored, updated)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AppointmentServiceTestSuite) TestUpdateAppointment_NotFound() {
	id := uuid.NewString()
	suite.mockRepo.On("ReplaceAppointment", suite.ctx, mock.AnythingOfType("domain.Appointment")).
		Return(nil, apperrors.NewNotFoundError("appointment not found")).Once()

	_, err := suite.service.UpdateAppointment(suite.ctx, id, tuning())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AppointmentServiceTestSuite) TestDeleteAppointment() {
	id := uuid.NewString()
	suite.mockRepo.On("DeleteAppointment", suite.ctx, id).Return(nil).Once()

	suite.NoError(suite.service.DeleteAppointment(suite.ctx, id))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AppointmentServiceTestSuite) TestListAppointments_RepoError() {
	suite.mockRepo.On("ListAppointments", suite.ctx).Return(nil, assert.AnError).Once()

	appointments, err := suite.service.ListAppointments(suite.ctx)

	suite.Nil(appointments)
	suite.ErrorIs(err, assert.AnError)
}

func TestAppointmentService(t *testing.T) {
	suite.Run(t, new(AppointmentServiceTestSuite))
}

func TestHealthService(t *testing.T) {
	ctx := context.Background()
	checker := new(MockHealthChecker)
	checker.On("Ping", ctx).Return(nil).Once()
	checker.On("Ping", ctx).Return(errors.New("connection refused")).Once()

	svc := services.NewHealthService(checker)

	assert.NoError(t, svc.CheckHealth(ctx))
	assert.Error(t, svc.CheckHealth(ctx))
	checker.AssertExpectations(t)
}
