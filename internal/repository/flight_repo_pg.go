package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airtickets/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	CreateWithSeats(ctx context.Context, flight *domain.Flight, seats []domain.Seat) (int64, error)
	LatestID(ctx context.Context) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, from_city, to_city, date, duration, price_cents, status, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.From, &f.To, &f.Date, &f.Duration, &f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, from, to string, date time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE from_city=$1 AND to_city=$2 AND date=$3 ORDER BY date`, from, to, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// CreateWithSeats inserts the flight and its full seat inventory in one
// transaction. The generated id comes back from the insert itself, so seats
// can never attach to a concurrently created flight.
func (r *PGFlightRepository) CreateWithSeats(ctx context.Context, flight *domain.Flight, seats []domain.Seat) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (from_city, to_city, date, duration, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		flight.From, flight.To, flight.Date, flight.Duration, flight.PriceCents, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return 0, err
	}

	if err := insertSeats(ctx, tx, flight.ID, seats); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return flight.ID, nil
}

func (r *PGFlightRepository) LatestID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM flights`).Scan(&id)
	return id, err
}

func insertSeats(ctx context.Context, tx pgx.Tx, flightID int64, seats []domain.Seat) error {
	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(`INSERT INTO seats (flight_id, seat_number, class, status, price_cents) VALUES ($1, $2, $3, $4, $5)`,
			flightID, s.Number, s.Class, s.Status, s.PriceCents)
	}
	return tx.SendBatch(ctx, batch).Close()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
