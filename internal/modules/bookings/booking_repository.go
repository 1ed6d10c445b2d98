package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charge-finder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for booking storage.
type RepositoryInterface interface {
	Create(ctx context.Context, userID, stationID string, duration time.Duration) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create reserves a station inside a single transaction: the station row is
// locked, checked for availability, the booking is inserted, and the station
// flips to occupied. Concurrent bookings for the same station serialize on
// the row lock, so only one can win.
func (r *Repository) Create(ctx context.Context, userID, stationID string, duration time.Duration) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateBooking.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var status, stationName, stationAddress string
	err = tx.QueryRow(ctx, `SELECT status, name, address FROM stations WHERE id = $1 FOR UPDATE`, stationID).
		Scan(&status, &stationName, &stationAddress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CreateBooking.LockStation: %w", err)
	}
	if status != models.StationStatusAvailable {
		return nil, models.ErrStationUnavailable
	}

	startTime := time.Now()
	endTime := startTime.Add(duration)

	booking := &models.Booking{}
	err = tx.QueryRow(ctx, `
        INSERT INTO bookings (user_id, station_id, start_time, end_time, status)
        VALUES ($1, $2, $3, $4, 'active')
        RETURNING id, user_id, station_id, start_time, end_time, status, cancelled_at, created_at`,
		userID, stationID, startTime, endTime,
	).Scan(
		&booking.ID, &booking.UserID, &booking.StationID, &booking.StartTime,
		&booking.EndTime, &booking.Status, &booking.CancelledAt, &booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateBooking.Insert: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE stations SET status = 'occupied', updated_at = NOW() WHERE id = $1`, stationID)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateBooking.UpdateStation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateBooking.Commit: %w", err)
	}

	booking.StationName = stationName
	booking.StationAddress = stationAddress
	return booking, nil
}

// ListByUser returns the caller's bookings joined with station display
// fields, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
        SELECT b.id, b.user_id, b.station_id, b.start_time, b.end_time, b.status, b.cancelled_at, b.created_at,
               s.name, s.address
        FROM bookings b
        JOIN stations s ON s.id = b.station_id
        WHERE b.user_id = $1
        ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByUser.Query: %w", err)
	}
	defer rows.Close()

	var bookingList []models.Booking
	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.StationID, &booking.StartTime,
			&booking.EndTime, &booking.Status, &booking.CancelledAt, &booking.CreatedAt,
			&booking.StationName, &booking.StationAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("repository.ListByUser.Scan: %w", err)
		}
		bookingList = append(bookingList, booking)
	}
	return bookingList, rows.Err()
}

// Cancel marks an active booking cancelled and frees its station, both
// inside one transaction. The user filter doubles as the ownership check:
// a booking owned by someone else scans as no rows, which surfaces as
// ErrNotFound and leaves the station untouched.
func (r *Repository) Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CancelBooking.Begin: %w", err)
	}
	defer tx.Rollback(ctx)

	booking := &models.Booking{}
	err = tx.QueryRow(ctx, `
        UPDATE bookings
        SET status = 'cancelled', cancelled_at = NOW()
        WHERE id = $1 AND user_id = $2 AND status = 'active'
        RETURNING id, user_id, station_id, start_time, end_time, status, cancelled_at, created_at`,
		bookingID, userID,
	).Scan(
		&booking.ID, &booking.UserID, &booking.StationID, &booking.StartTime,
		&booking.EndTime, &booking.Status, &booking.CancelledAt, &booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.CancelBooking.Update: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE stations SET status = 'available', updated_at = NOW() WHERE id = $1`, booking.StationID)
	if err != nil {
		return nil, fmt.Errorf("repository.CancelBooking.UpdateStation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CancelBooking.Commit: %w", err)
	}
	return booking, nil
}
