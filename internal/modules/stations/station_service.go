package stations

import (
	"context"
	"fmt"
	"strings"

	"charge-finder/internal/models"

	"go.uber.org/zap"
)

const (
	// DefaultSearchRadiusKM is used when the search request omits a radius.
	DefaultSearchRadiusKM = 10

	// fallbackThreshold: external discovery kicks in when the primary query
	// returns fewer results than this.
	fallbackThreshold = 5
)

// DiscoveryInterface is the external places provider. Implementations absorb
// their own failures and return an empty slice instead of an error.
type DiscoveryInterface interface {
	Search(ctx context.Context, lat, lng, radiusKM float64) []models.Station
}

// ServiceInterface defines the contract for station business logic.
type ServiceInterface interface {
	List(ctx context.Context) ([]models.Station, error)
	Get(ctx context.Context, stationID string) (*models.Station, error)
	Search(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error)
}

type Service struct {
	repo      RepositoryInterface
	discovery DiscoveryInterface
	logger    *zap.Logger
}

func NewService(repo RepositoryInterface, discovery DiscoveryInterface, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		discovery: discovery,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Station, error) {
	stations, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	return stations, nil
}

func (s *Service) Get(ctx context.Context, stationID string) (*models.Station, error) {
	return s.repo.FindByID(ctx, stationID)
}

// Search runs the primary distance query and, when it comes back thin,
// pads the result with externally discovered stations. External entries are
// appended after the distance-ordered persisted results and are dropped when
// a persisted result already carries the same name (case-insensitive). A
// discovery failure never fails the search.
func (s *Service) Search(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error) {
	if radiusKM <= 0 {
		radiusKM = DefaultSearchRadiusKM
	}

	primary, err := s.repo.SearchByDistance(ctx, lat, lng, radiusKM)
	if err != nil {
		return nil, fmt.Errorf("service.Search: %w", err)
	}

	if len(primary) >= fallbackThreshold {
		return primary, nil
	}

	external := s.discovery.Search(ctx, lat, lng, radiusKM)
	if len(external) == 0 {
		return primary, nil
	}

	seen := make(map[string]struct{}, len(primary))
	for _, station := range primary {
		seen[strings.ToLower(station.Name)] = struct{}{}
	}

	merged := primary
	for _, station := range external {
		if _, dup := seen[strings.ToLower(station.Name)]; dup {
			continue
		}
		merged = append(merged, station)
	}

	s.logger.Debug("station search padded with external results",
		zap.Int("primary", len(primary)),
		zap.Int("merged", len(merged)),
	)

	return merged, nil
}
