package flights

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/airtickets/config"
	"github.com/Domenick1991/airtickets/internal/apperr"
	"github.com/Domenick1991/airtickets/internal/domain"
	"github.com/Domenick1991/airtickets/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (int64, error)
	LatestID(ctx context.Context) (int64, error)
	ProvisionSeats(ctx context.Context, flightID int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	Duration   string `json:"duration"`
	PriceCents int64  `json:"price_cents"`
}

type FlightService struct {
	flights  repository.FlightRepository
	seats    repository.SeatRepository
	cache    Cache
	seatPlan []config.SeatClassPlan
	log      *zap.Logger
}

func NewFlightService(flightsRepo repository.FlightRepository, seatsRepo repository.SeatRepository, cache Cache, seatPlan []config.SeatClassPlan, log *zap.Logger) *FlightService {
	return &FlightService{flights: flightsRepo, seats: seatsRepo, cache: cache, seatPlan: seatPlan, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, apperr.Dependency("database", "database error", err)
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flight list cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error) {
	flights, err := s.flights.Search(ctx, from, to, date)
	if err != nil {
		return nil, apperr.Dependency("database", "database error", err)
	}
	return flights, nil
}

func (s *FlightService) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlight(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "flight not found")
		}
		return nil, apperr.Dependency("database", "database error", err)
	}
	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.log.Warn("flight cache write failed", zap.Int64("flight_id", id), zap.Error(err))
		}
	}
	return flight, nil
}

// Create inserts the flight and seeds its full seat inventory atomically.
// The returned id is the one the seats belong to, also under concurrent
// creation.
func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (int64, error) {
	if input.From == "" || input.To == "" {
		return 0, apperr.New(apperr.KindValidation, "from and to are required")
	}
	if input.PriceCents <= 0 {
		return 0, apperr.New(apperr.KindValidation, "price must be positive")
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return 0, apperr.New(apperr.KindValidation, "date must be YYYY-MM-DD")
	}

	flight := &domain.Flight{
		From:       input.From,
		To:         input.To,
		Date:       date,
		Duration:   input.Duration,
		PriceCents: input.PriceCents,
		Status:     domain.FlightStatusAvailable,
	}

	id, err := s.flights.CreateWithSeats(ctx, flight, SeatsFromPlan(s.seatPlan))
	if err != nil {
		return 0, apperr.Dependency("database", "database error", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("flight list cache invalidation failed", zap.Error(err))
		}
	}
	s.log.Info("flight created", zap.Int64("flight_id", id), zap.String("from", input.From), zap.String("to", input.To))
	return id, nil
}

func (s *FlightService) LatestID(ctx context.Context) (int64, error) {
	id, err := s.flights.LatestID(ctx)
	if err != nil {
		return 0, apperr.Dependency("database", "database error", err)
	}
	return id, nil
}

// ProvisionSeats seeds the seat inventory for a flight created without one.
// Seeding the same flight twice is rejected.
func (s *FlightService) ProvisionSeats(ctx context.Context, flightID int64) error {
	if _, err := s.Get(ctx, flightID); err != nil {
		return err
	}

	if err := s.seats.InsertBatch(ctx, flightID, SeatsFromPlan(s.seatPlan)); err != nil {
		if errors.Is(err, repository.ErrSeatsExist) {
			return apperr.New(apperr.KindValidation, "seats already provisioned")
		}
		return apperr.Dependency("database", "database error", err)
	}
	s.log.Info("seats provisioned", zap.Int64("flight_id", flightID))
	return nil
}

// SeatsFromPlan expands the configured class blocks into concrete seats,
// numbered consecutively across blocks. Every seeded seat starts available.
func SeatsFromPlan(plan []config.SeatClassPlan) []domain.Seat {
	var seats []domain.Seat
	number := 1
	for _, block := range plan {
		for i := 0; i < block.Count; i++ {
			seats = append(seats, domain.Seat{
				Number:     number,
				Class:      block.Class,
				Status:     domain.SeatStatusAvailable,
				PriceCents: block.PriceCents,
			})
			number++
		}
	}
	return seats
}

var _ FlightUseCase = (*FlightService)(nil)
