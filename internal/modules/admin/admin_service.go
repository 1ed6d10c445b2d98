package admin

import (
	"context"
	"fmt"

	"charge-finder/internal/models"
	"charge-finder/internal/modules/stations"
)

// ServiceInterface defines admin business logic: platform stats, user and
// booking oversight, and station CRUD.
type ServiceInterface interface {
	GetStats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListBookings(ctx context.Context, page, limit int) ([]models.Booking, int, error)

	CreateStation(ctx context.Context, req models.CreateStationRequest) (*models.Station, error)
	UpdateStation(ctx context.Context, stationID string, req models.UpdateStationRequest) (*models.Station, error)
	DeleteStation(ctx context.Context, stationID string) error
}

type Service struct {
	repo        RepositoryInterface
	stationRepo stations.RepositoryInterface
}

func NewService(repo RepositoryInterface, stationRepo stations.RepositoryInterface) *Service {
	return &Service{
		repo:        repo,
		stationRepo: stationRepo,
	}
}

func (s *Service) GetStats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GetStats: %w", err)
	}
	return stats, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	userList, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListUsers: %w", err)
	}
	return userList, nil
}

func (s *Service) ListBookings(ctx context.Context, page, limit int) ([]models.Booking, int, error) {
	return s.repo.ListBookings(ctx, page, limit)
}

func (s *Service) CreateStation(ctx context.Context, req models.CreateStationRequest) (*models.Station, error) {
	return s.stationRepo.Create(ctx, req)
}

func (s *Service) UpdateStation(ctx context.Context, stationID string, req models.UpdateStationRequest) (*models.Station, error) {
	return s.stationRepo.Update(ctx, stationID, req)
}

func (s *Service) DeleteStation(ctx context.Context, stationID string) error {
	return s.stationRepo.Delete(ctx, stationID)
}
