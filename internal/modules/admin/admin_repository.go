package admin

import (
	"context"
	"fmt"

	"charge-finder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the admin-only storage queries.
type RepositoryInterface interface {
	GetStats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListBookings(ctx context.Context, page, limit int) ([]models.Booking, int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) GetStats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}
	query := `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM stations),
            (SELECT COUNT(*) FROM bookings),
            (SELECT COUNT(*) FROM bookings WHERE status = 'active')`
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalStations, &stats.TotalBookings, &stats.ActiveBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.GetStats: %w", err)
	}
	return stats, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, email, phone, is_admin, created_at, updated_at FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListUsers.Query: %w", err)
	}
	defer rows.Close()

	var userList []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository.ListUsers.Scan: %w", err)
		}
		userList = append(userList, user)
	}
	return userList, rows.Err()
}

func (r *Repository) ListBookings(ctx context.Context, page, limit int) ([]models.Booking, int, error) {
	offset := (page - 1) * limit
	query := `
        SELECT b.id, b.user_id, b.station_id, b.start_time, b.end_time, b.status, b.cancelled_at, b.created_at,
               s.name, s.address
        FROM bookings b
        JOIN stations s ON s.id = b.station_id
        ORDER BY b.created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListBookings.Query: %w", err)
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
			return nil, 0, fmt.Errorf("repository.ListBookings.Scan: %w", err)
		}
		bookingList = append(bookingList, booking)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListBookings.Count: %w", err)
	}

	return bookingList, total, nil
}
