package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airtickets/internal/domain"
)

type SeatRepository interface {
	InsertBatch(ctx context.Context, flightID int64, seats []domain.Seat) error
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
	CountByFlight(ctx context.Context, flightID int64) (int, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

// InsertBatch provisions the seat inventory for a flight. The guard inside
// the transaction keeps the invariant that a flight's seat set is created
// exactly once; a second call fails with ErrSeatsExist.
func (r *PGSeatRepository) InsertBatch(ctx context.Context, flightID int64, seats []domain.Seat) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var existing int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE flight_id=$1`, flightID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return ErrSeatsExist
	}

	if err := insertSeats(ctx, tx, flightID, seats); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, seat_number, class, status, price_cents FROM seats WHERE flight_id=$1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.FlightID, &s.Number, &s.Class, &s.Status, &s.PriceCents); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) CountByFlight(ctx context.Context, flightID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM seats WHERE flight_id=$1`, flightID).Scan(&count)
	return count, err
}

var _ SeatRepository = (*PGSeatRepository)(nil)
