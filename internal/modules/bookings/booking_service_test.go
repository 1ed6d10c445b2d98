package bookings

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"charge-finder/internal/models"

	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	stationStatus map[string]string
	bookings      map[string]*models.Booking
	nextID        int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		stationStatus: make(map[string]string),
		bookings:      make(map[string]*models.Booking),
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, userID, stationID string, duration time.Duration) (*models.Booking, error) {
	status, ok := f.stationStatus[stationID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if status != models.StationStatusAvailable {
		return nil, models.ErrStationUnavailable
	}

	f.nextID++
	start := time.Now()
	end := start.Add(duration)
	booking := &models.Booking{
		ID:        "booking-" + strconv.Itoa(f.nextID),
		UserID:    userID,
		StationID: stationID,
		StartTime: start,
		EndTime:   &end,
		Status:    models.BookingStatusActive,
	}
	f.bookings[booking.ID] = booking
	f.stationStatus[stationID] = models.StationStatusOccupied
	return booking, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	booking, ok := f.bookings[bookingID]
	if !ok || booking.UserID != userID || booking.Status != models.BookingStatusActive {
		return nil, models.ErrNotFound
	}
	now := time.Now()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	f.stationStatus[booking.StationID] = models.StationStatusAvailable
	return booking, nil
}

func newBookingService(repo RepositoryInterface) *Service {
	return NewService(repo, nil, nil, nil, zap.NewNop())
}

func TestCreateBookingOccupiesStation(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.stationStatus["st-1"] = models.StationStatusAvailable
	svc := newBookingService(repo)

	booking, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "st-1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if booking.Status != models.BookingStatusActive {
		t.Errorf("expected active booking, got %q", booking.Status)
	}
	if repo.stationStatus["st-1"] != models.StationStatusOccupied {
		t.Errorf("station should be occupied after booking, got %q", repo.stationStatus["st-1"])
	}

	// Default duration is one hour.
	got := booking.EndTime.Sub(booking.StartTime)
	if got != time.Hour {
		t.Errorf("expected 1h default duration, got %v", got)
	}
}

func TestCreateBookingCustomDuration(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.stationStatus["st-1"] = models.StationStatusAvailable
	svc := newBookingService(repo)

	booking, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "st-1", DurationMinutes: 90})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := booking.EndTime.Sub(booking.StartTime); got != 90*time.Minute {
		t.Errorf("expected 90m duration, got %v", got)
	}
}

func TestCreateBookingStationNotFound(t *testing.T) {
	svc := newBookingService(newFakeBookingRepo())

	_, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "missing"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingStationNotAvailable(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newBookingService(repo)

	for _, status := range []string{models.StationStatusOccupied, models.StationStatusMaintenance, models.StationStatusInactive} {
		repo.stationStatus["st-1"] = status
		_, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "st-1"})
		if !errors.Is(err, models.ErrStationUnavailable) {
			t.Errorf("status %q: expected ErrStationUnavailable, got %v", status, err)
		}
	}
}

func TestCancelBookingFreesStation(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.stationStatus["st-1"] = models.StationStatusAvailable
	svc := newBookingService(repo)

	booking, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "st-1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), booking.ID, "user-1")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("expected cancelled status, got %q", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("expected cancellation timestamp")
	}
	if repo.stationStatus["st-1"] != models.StationStatusAvailable {
		t.Errorf("station should be available after cancel, got %q", repo.stationStatus["st-1"])
	}
}

func TestCancelUnownedBookingLeavesStationUntouched(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.stationStatus["st-1"] = models.StationStatusAvailable
	svc := newBookingService(repo)

	booking, err := svc.Create(context.Background(), "user-1", models.CreateBookingRequest{StationID: "st-1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Cancel(context.Background(), booking.ID, "intruder")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unowned booking, got %v", err)
	}
	if repo.stationStatus["st-1"] != models.StationStatusOccupied {
		t.Errorf("station status must not change on failed cancel, got %q", repo.stationStatus["st-1"])
	}
}
