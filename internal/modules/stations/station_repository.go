package stations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charge-finder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxSearchResults caps the primary geo query.
const maxSearchResults = 50

// RepositoryInterface defines the contract for station storage.
type RepositoryInterface interface {
	ListActive(ctx context.Context) ([]models.Station, error)
	FindByID(ctx context.Context, stationID string) (*models.Station, error)
	SearchByDistance(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error)
	Create(ctx context.Context, req models.CreateStationRequest) (*models.Station, error)
	Update(ctx context.Context, stationID string, req models.UpdateStationRequest) (*models.Station, error)
	Delete(ctx context.Context, stationID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const stationColumns = `id, name, address, latitude, longitude, status, connector_type, power_output_kw, price_per_kwh, rating, review_count, created_at, updated_at`

func scanStation(row pgx.Row) (*models.Station, error) {
	var station models.Station
	err := row.Scan(
		&station.ID, &station.Name, &station.Address, &station.Latitude, &station.Longitude,
		&station.Status, &station.ConnectorType, &station.PowerOutputKW, &station.PricePerKWh,
		&station.Rating, &station.ReviewCount, &station.CreatedAt, &station.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan station: %w", err)
	}
	return &station, nil
}

// ListActive returns every station that is not inactive, in name order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Station, error) {
	query := fmt.Sprintf(`SELECT %s FROM stations WHERE status <> 'inactive' ORDER BY name`, stationColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListActive.Query: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListActive.Scan: %w", err)
		}
		stations = append(stations, *station)
	}
	return stations, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, stationID string) (*models.Station, error) {
	query := fmt.Sprintf(`SELECT %s FROM stations WHERE id = $1`, stationColumns)
	station, err := scanStation(r.db.QueryRow(ctx, query, stationID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return station, nil
}

// SearchByDistance runs the primary geo query: spherical law of cosines
// against every non-inactive station, filtered to radiusKM, ordered by
// distance ascending, capped at maxSearchResults. The acos argument is
// clamped to [-1, 1] to protect against floating point drift when the query
// point coincides with a station.
func (r *Repository) SearchByDistance(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error) {
	query := fmt.Sprintf(`
        SELECT %s, distance_km FROM (
            SELECT %s,
                6371 * acos(LEAST(1.0, GREATEST(-1.0,
                    cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) +
                    sin(radians($1)) * sin(radians(latitude))
                ))) AS distance_km
            FROM stations
            WHERE status <> 'inactive'
        ) nearby
        WHERE distance_km <= $3
        ORDER BY distance_km ASC
        LIMIT %d`, stationColumns, stationColumns, maxSearchResults)

	rows, err := r.db.Query(ctx, query, lat, lng, radiusKM)
	if err != nil {
		return nil, fmt.Errorf("repository.SearchByDistance.Query: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var station models.Station
		var distance float64
		err := rows.Scan(
			&station.ID, &station.Name, &station.Address, &station.Latitude, &station.Longitude,
			&station.Status, &station.ConnectorType, &station.PowerOutputKW, &station.PricePerKWh,
			&station.Rating, &station.ReviewCount, &station.CreatedAt, &station.UpdatedAt,
			&distance,
		)
		if err != nil {
			return nil, fmt.Errorf("repository.SearchByDistance.Scan: %w", err)
		}
		station.DistanceKM = &distance
		stations = append(stations, station)
	}
	return stations, rows.Err()
}

func (r *Repository) Create(ctx context.Context, req models.CreateStationRequest) (*models.Station, error) {
	status := req.Status
	if status == "" {
		status = models.StationStatusAvailable
	}
	query := fmt.Sprintf(`
        INSERT INTO stations (name, address, latitude, longitude, status, connector_type, power_output_kw, price_per_kwh)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING %s`, stationColumns)
	station, err := scanStation(r.db.QueryRow(ctx, query,
		req.Name, req.Address, req.Latitude, req.Longitude, status,
		req.ConnectorType, req.PowerOutputKW, req.PricePerKWh,
	))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateStation: %w", err)
	}
	return station, nil
}

func (r *Repository) Update(ctx context.Context, stationID string, req models.UpdateStationRequest) (*models.Station, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		addClause("name", *req.Name)
	}
	if req.Address != nil {
		addClause("address", *req.Address)
	}
	if req.Latitude != nil {
		addClause("latitude", *req.Latitude)
	}
	if req.Longitude != nil {
		addClause("longitude", *req.Longitude)
	}
	if req.Status != nil {
		addClause("status", *req.Status)
	}
	if req.ConnectorType != nil {
		addClause("connector_type", *req.ConnectorType)
	}
	if req.PowerOutputKW != nil {
		addClause("power_output_kw", *req.PowerOutputKW)
	}
	if req.PricePerKWh != nil {
		addClause("price_per_kwh", *req.PricePerKWh)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, stationID)
	}

	addClause("updated_at", time.Now())
	args = append(args, stationID)

	query := fmt.Sprintf(`UPDATE stations SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, stationColumns)

	station, err := scanStation(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateStation: %w", err)
	}
	return station, nil
}

// Delete refuses to remove a station that still has active bookings.
func (r *Repository) Delete(ctx context.Context, stationID string) error {
	var activeBookings int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE station_id = $1 AND status = 'active'`, stationID,
	).Scan(&activeBookings)
	if err != nil {
		return fmt.Errorf("repository.DeleteStation.CountBookings: %w", err)
	}
	if activeBookings > 0 {
		return models.ErrStationHasActiveBookings
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM stations WHERE id = $1`, stationID)
	if err != nil {
		return fmt.Errorf("repository.DeleteStation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
