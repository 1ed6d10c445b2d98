package bookings

import (
	"context"
	"fmt"
	"time"

	"charge-finder/internal/models"
	emailSvc "charge-finder/pkg/email"

	"go.uber.org/zap"
)

// defaultBookingDuration applies when the request omits duration_minutes.
const defaultBookingDuration = 60 * time.Minute

// UserLookup provides the recipient details for the confirmation email.
type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// ServiceInterface defines the contract for booking business logic.
type ServiceInterface interface {
	Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

type Service struct {
	repo            RepositoryInterface
	users           UserLookup
	emailer         emailSvc.ServiceInterface
	templateManager *emailSvc.TemplateManager
	logger          *zap.Logger
}

func NewService(
	repo RepositoryInterface,
	users UserLookup,
	emailer emailSvc.ServiceInterface,
	tm *emailSvc.TemplateManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:            repo,
		users:           users,
		emailer:         emailer,
		templateManager: tm,
		logger:          logger,
	}
}

func (s *Service) Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error) {
	duration := defaultBookingDuration
	if req.DurationMinutes > 0 {
		duration = time.Duration(req.DurationMinutes) * time.Minute
	}

	booking, err := s.repo.Create(ctx, userID, req.StationID, duration)
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(ctx, booking, int(duration.Minutes()))

	return booking, nil
}

// sendConfirmationEmail delivers the booking confirmation in the background.
// Failures are logged, never surfaced: the booking already committed.
func (s *Service) sendConfirmationEmail(ctx context.Context, booking *models.Booking, durationMinutes int) {
	if s.emailer == nil || s.templateManager == nil {
		return
	}

	user, err := s.users.FindByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Warn("booking confirmation: user lookup failed", zap.String("user_id", booking.UserID), zap.Error(err))
		return
	}

	htmlContent, err := s.templateManager.GenerateBookingConfirmationHTML(emailSvc.BookingData{
		Name:            user.Name,
		StationName:     booking.StationName,
		StationAddress:  booking.StationAddress,
		StartTime:       booking.StartTime.Format(time.RFC1123),
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		s.logger.Warn("booking confirmation: template failed", zap.Error(err))
		return
	}

	subject := "Your charging slot is confirmed"
	plainText := fmt.Sprintf("Hi %s, your booking starting %s is confirmed for %d minutes.",
		user.Name, booking.StartTime.Format(time.RFC1123), durationMinutes)

	go func() {
		if err := s.emailer.SendEmail(context.Background(), user.Email, subject, plainText, htmlContent); err != nil {
			s.logger.Warn("booking confirmation: send failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	bookingList, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ListForUser: %w", err)
	}
	return bookingList, nil
}

func (s *Service) Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	return s.repo.Cancel(ctx, bookingID, userID)
}
