package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/domain"
	"github.com/Domenick1991/airtickets/internal/service/flights"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.CreateFlightInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightUseCase) LatestID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightUseCase) ProvisionSeats(ctx context.Context, flightID int64) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

func flightRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewFlightHandler(service).Register(r.Group("/flights"))
	return r
}

func TestFlightHandler_List(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	result := []domain.Flight{{ID: 1, From: "SVO", To: "LED", PriceCents: 5000}}
	mockService.On("List", mock.Anything).Return(result, nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/flights/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SVO")
	mockService.AssertExpectations(t)
}

func TestFlightHandler_List_Search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mockService.On("Search", mock.Anything, "SVO", "LED", date).Return([]domain.Flight{}, nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/flights/?from=SVO&to=LED&date=2026-09-15", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_Get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	mockService.On("Get", mock.Anything, int64(99)).
		Return(nil, apperr.New(apperr.KindNotFound, "flight not found")).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/flights/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "flight not found")
}

func TestFlightHandler_Create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	mockService.On("Create", mock.Anything, flights.CreateFlightInput{
		From: "SVO", To: "LED", Date: "2026-09-15", Duration: "1h30m", PriceCents: 500000,
	}).Return(int64(7), nil).Once()

	body := bytes.NewBufferString(`{"from":"SVO","to":"LED","date":"2026-09-15","duration":"1h30m","price_cents":500000}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/flights/", body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"flight_id":7`)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_ProvisionSeats_Duplicate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	mockService.On("ProvisionSeats", mock.Anything, int64(7)).
		Return(apperr.New(apperr.KindValidation, "seats already provisioned")).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/flights/7/seats", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "seats already provisioned")
}

func TestFlightHandler_LatestID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	r := flightRouter(mockService)

	mockService.On("LatestID", mock.Anything).Return(int64(12), nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/flights/latest-id", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"flight_id":12`)
}
