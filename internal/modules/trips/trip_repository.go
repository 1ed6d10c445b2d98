package trips

import (
	"context"
	"errors"
	"fmt"

	"charge-finder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for trip storage.
type RepositoryInterface interface {
	Create(ctx context.Context, userID string, req models.PlanTripRequest) (*models.Trip, error)
	UpdateProgress(ctx context.Context, tripID, userID string, batteryPct float64) (*models.Trip, error)
	FindActiveByUser(ctx context.Context, userID string) (*models.Trip, error)
	AddWaypoint(ctx context.Context, waypoint *models.TripWaypoint) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const tripColumns = `id, user_id, vehicle_id, start_latitude, start_longitude, dest_latitude, dest_longitude, battery_start_pct, battery_current_pct, status, created_at, updated_at`

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var trip models.Trip
	err := row.Scan(
		&trip.ID, &trip.UserID, &trip.VehicleID,
		&trip.StartLatitude, &trip.StartLongitude, &trip.DestLatitude, &trip.DestLongitude,
		&trip.BatteryStartPct, &trip.BatteryCurrentPct, &trip.Status,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan trip: %w", err)
	}
	return &trip, nil
}

func (r *Repository) Create(ctx context.Context, userID string, req models.PlanTripRequest) (*models.Trip, error) {
	query := fmt.Sprintf(`
        INSERT INTO trips (user_id, vehicle_id, start_latitude, start_longitude, dest_latitude, dest_longitude, battery_start_pct, battery_current_pct, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7, 'active')
        RETURNING %s`, tripColumns)
	trip, err := scanTrip(r.db.QueryRow(ctx, query,
		userID, req.VehicleID,
		req.StartLatitude, req.StartLongitude, req.DestLatitude, req.DestLongitude,
		req.BatteryStartPct,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateTrip: %w", err)
	}
	return trip, nil
}

// UpdateProgress writes the current battery level. The user filter is the
// ownership check; trips owned by someone else scan as no rows.
func (r *Repository) UpdateProgress(ctx context.Context, tripID, userID string, batteryPct float64) (*models.Trip, error) {
	query := fmt.Sprintf(`
        UPDATE trips
        SET battery_current_pct = $1, updated_at = NOW()
        WHERE id = $2 AND user_id = $3 AND status = 'active'
        RETURNING %s`, tripColumns)
	trip, err := scanTrip(r.db.QueryRow(ctx, query, batteryPct, tripID, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateProgress: %w", err)
	}
	return trip, nil
}

func (r *Repository) FindActiveByUser(ctx context.Context, userID string) (*models.Trip, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM trips
        WHERE user_id = $1 AND status = 'active'
        ORDER BY created_at DESC
        LIMIT 1`, tripColumns)
	trip, err := scanTrip(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.FindActiveByUser: %w", err)
	}
	return trip, nil
}

func (r *Repository) AddWaypoint(ctx context.Context, waypoint *models.TripWaypoint) error {
	query := `
        INSERT INTO trip_waypoints (trip_id, station_id, waypoint_type, message, charge_duration_minutes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		waypoint.TripID, waypoint.StationID, waypoint.WaypointType,
		waypoint.Message, waypoint.ChargeDurationMinutes,
	).Scan(&waypoint.ID, &waypoint.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.AddWaypoint: %w", err)
	}
	return nil
}
