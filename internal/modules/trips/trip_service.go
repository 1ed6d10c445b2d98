package trips

import (
	"context"
	"fmt"

	"charge-finder/internal/models"

	"go.uber.org/zap"
)

// ServiceInterface defines the contract for trip business logic.
type ServiceInterface interface {
	Plan(ctx context.Context, userID string, req models.PlanTripRequest) (*models.Trip, error)
	UpdateProgress(ctx context.Context, tripID, userID string, req models.UpdateTripRequest) (*models.UpdateTripResponse, error)
	GetActive(ctx context.Context, userID string) (*models.Trip, error)
}

type Service struct {
	repo      RepositoryInterface
	evaluator *SuggestionEvaluator
	logger    *zap.Logger
}

func NewService(repo RepositoryInterface, evaluator *SuggestionEvaluator, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		evaluator: evaluator,
		logger:    logger,
	}
}

func (s *Service) Plan(ctx context.Context, userID string, req models.PlanTripRequest) (*models.Trip, error) {
	trip, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("service.Plan: %w", err)
	}
	return trip, nil
}

// UpdateProgress stores the reported battery level, runs the stop
// evaluator against the reported position, and persists a suggested_stop
// waypoint when the evaluator proposes one. External stations are never
// persisted, so their waypoints carry no station id.
func (s *Service) UpdateProgress(ctx context.Context, tripID, userID string, req models.UpdateTripRequest) (*models.UpdateTripResponse, error) {
	trip, err := s.repo.UpdateProgress(ctx, tripID, userID, req.BatteryPercentage)
	if err != nil {
		return nil, err
	}

	suggestion := s.evaluator.Evaluate(ctx, trip, req.Latitude, req.Longitude, req.BatteryPercentage)
	if suggestion != nil {
		waypoint := &models.TripWaypoint{
			TripID:                trip.ID,
			WaypointType:          models.WaypointTypeSuggestedStop,
			Message:               suggestion.Message,
			ChargeDurationMinutes: suggestion.ChargeDurationMinutes,
		}
		if !suggestion.Station.IsExternal {
			stationID := suggestion.Station.ID
			waypoint.StationID = &stationID
		}
		if err := s.repo.AddWaypoint(ctx, waypoint); err != nil {
			// The suggestion is still worth returning; only the record failed.
			s.logger.Warn("failed to persist suggested stop", zap.String("trip_id", trip.ID), zap.Error(err))
		}
	}

	return &models.UpdateTripResponse{
		Trip:       trip,
		Suggestion: suggestion,
	}, nil
}

func (s *Service) GetActive(ctx context.Context, userID string) (*models.Trip, error) {
	return s.repo.FindActiveByUser(ctx, userID)
}
