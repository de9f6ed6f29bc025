package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/auth"
	"github.com/Domenick1991/airtickets/internal/domain"
	"github.com/Domenick1991/airtickets/internal/mail"
	"github.com/Domenick1991/airtickets/internal/repository"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) CreateWithSeats(ctx context.Context, flight *domain.Flight, seats []domain.Seat) (int64, error) {
	args := m.Called(ctx, flight, seats)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightRepository) LatestID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(name string, data any) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, msg mail.Message) (*mail.Receipt, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.Receipt), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func userClaims() *auth.Claims {
	return &auth.Claims{UserID: "42", Email: "ann@example.com", Username: "ann", Role: "user"}
}

func validDetails() BookingDetails {
	return BookingDetails{FlightID: 7, Date: "2026-09-15", PriceCents: 10000, SeatNumber: 12, SeatClass: domain.SeatClassEconomy}
}

func TestTicketService_Confirm_Success(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	mockProducer := &MockProducer{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, mockProducer, "notifications", zap.NewNop())

	ctx := context.Background()
	flight := &domain.Flight{ID: 7, From: "SVO", To: "LED"}
	receipt := &mail.Receipt{ID: "r-1", To: "ann@example.com", SentAt: time.Now()}

	mockFlights.On("GetByID", ctx, int64(7)).Return(flight, nil).Once()
	mockRenderer.On("Render", "ticket.html", mock.Anything).Return("<html>ticket</html>", nil).Once()
	mockMailer.On("Send", ctx, mock.MatchedBy(func(m mail.Message) bool {
		return m.To == "ann@example.com" && m.Subject == "Ticket Confirmation" && m.HTML == "<html>ticket</html>"
	})).Return(receipt, nil).Once()
	mockProducer.On("Publish", ctx, "notifications", "r-1", mock.Anything).Return(nil).Once()

	result, err := service.Confirm(ctx, userClaims(), validDetails())

	require.NoError(t, err)
	assert.Equal(t, receipt, result.Receipt)
	mockFlights.AssertExpectations(t)
	mockRenderer.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestTicketService_Confirm_NilClaims(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, nil, "", zap.NewNop())

	_, err := service.Confirm(context.Background(), nil, validDetails())

	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	mockFlights.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRenderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestTicketService_Confirm_InvalidDetails(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	service := NewTicketService(mockFlights, &MockRenderer{}, &MockDispatcher{}, nil, "", zap.NewNop())

	details := validDetails()
	details.SeatClass = "FirstClass"
	_, err := service.Confirm(context.Background(), userClaims(), details)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	mockFlights.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTicketService_Confirm_FlightNotFound(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, nil, "", zap.NewNop())

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(7)).Return(nil, repository.ErrNotFound).Once()

	_, err := service.Confirm(ctx, userClaims(), validDetails())

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "flight not found", apperr.Message(err))
	mockRenderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestTicketService_Confirm_RenderError(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, nil, "", zap.NewNop())

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	mockRenderer.On("Render", "ticket.html", mock.Anything).Return("", errors.New("bad template")).Once()

	_, err := service.Confirm(ctx, userClaims(), validDetails())

	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
	assert.Equal(t, "render error", apperr.Message(err))
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestTicketService_Confirm_MailError(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	mockProducer := &MockProducer{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, mockProducer, "notifications", zap.NewNop())

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	mockRenderer.On("Render", "ticket.html", mock.Anything).Return("<html></html>", nil).Once()
	mockMailer.On("Send", ctx, mock.Anything).Return(nil, errors.New("relay refused")).Once()

	_, err := service.Confirm(ctx, userClaims(), validDetails())

	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
	assert.Equal(t, "email send error", apperr.Message(err))
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketService_Confirm_PublishFailureIsNotFatal(t *testing.T) {
	mockFlights := &MockFlightRepository{}
	mockRenderer := &MockRenderer{}
	mockMailer := &MockDispatcher{}
	mockProducer := &MockProducer{}
	service := NewTicketService(mockFlights, mockRenderer, mockMailer, mockProducer, "notifications", zap.NewNop())

	ctx := context.Background()
	receipt := &mail.Receipt{ID: "r-2", To: "ann@example.com"}
	mockFlights.On("GetByID", ctx, int64(7)).Return(&domain.Flight{ID: 7}, nil).Once()
	mockRenderer.On("Render", "ticket.html", mock.Anything).Return("<html></html>", nil).Once()
	mockMailer.On("Send", ctx, mock.Anything).Return(receipt, nil).Once()
	mockProducer.On("Publish", ctx, "notifications", "r-2", mock.Anything).Return(errors.New("broker down")).Once()

	result, err := service.Confirm(ctx, userClaims(), validDetails())

	require.NoError(t, err)
	assert.Equal(t, receipt, result.Receipt)
}
