package trips

import (
	"context"
	"strings"
	"testing"
	"time"

	"charge-finder/internal/models"
)

type fakeDiscovery struct {
	stations []models.Station
	calls    int
	lastLat  float64
	lastLng  float64
	lastRad  float64
}

func (f *fakeDiscovery) Search(ctx context.Context, lat, lng, radiusKM float64) []models.Station {
	f.calls++
	f.lastLat = lat
	f.lastLng = lng
	f.lastRad = radiusKM
	return f.stations
}

func evaluatorAtHour(hour int, discovery *fakeDiscovery) *SuggestionEvaluator {
	e := NewSuggestionEvaluator(discovery)
	e.now = func() time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}
	return e
}

func externalStation(name string, powerKW float64) models.Station {
	return models.Station{
		ID:            models.ExternalStationIDPrefix + name,
		Name:          name,
		PowerOutputKW: powerKW,
		IsExternal:    true,
	}
}

func TestEvaluateOutsideMealWindows(t *testing.T) {
	discovery := &fakeDiscovery{stations: []models.Station{externalStation("FastCharge", 150)}}

	for _, hour := range []int{0, 3, 7, 10, 11, 15, 16, 17, 18, 22, 23} {
		e := evaluatorAtHour(hour, discovery)
		if got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 10); got != nil {
			t.Errorf("hour %d: expected nil suggestion, got %+v", hour, got)
		}
	}

	if discovery.calls != 0 {
		t.Errorf("discovery should not be queried outside meal windows, got %d calls", discovery.calls)
	}
}

func TestEvaluateBatteryTooHigh(t *testing.T) {
	discovery := &fakeDiscovery{stations: []models.Station{externalStation("FastCharge", 150)}}
	e := evaluatorAtHour(12, discovery)

	for _, battery := range []float64{60, 61, 80, 100} {
		if got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, battery); got != nil {
			t.Errorf("battery %.0f: expected nil suggestion, got %+v", battery, got)
		}
	}

	if discovery.calls != 0 {
		t.Errorf("discovery should not be queried when battery is high, got %d calls", discovery.calls)
	}
}

func TestEvaluateMealWindowBounds(t *testing.T) {
	tests := []struct {
		hour int
		meal string
	}{
		{8, "breakfast"}, {9, "breakfast"},
		{12, "lunch"}, {13, "lunch"}, {14, "lunch"},
		{19, "dinner"}, {20, "dinner"}, {21, "dinner"},
	}

	for _, tc := range tests {
		discovery := &fakeDiscovery{stations: []models.Station{externalStation("FastCharge", 150)}}
		e := evaluatorAtHour(tc.hour, discovery)
		got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 40)
		if got == nil {
			t.Fatalf("hour %d: expected a suggestion", tc.hour)
		}
		if got.MealType != tc.meal {
			t.Errorf("hour %d: expected meal %q, got %q", tc.hour, tc.meal, got.MealType)
		}
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	discovery := &fakeDiscovery{stations: []models.Station{
		externalStation("Slow Plaza", 11),
		externalStation("Rapid Hub", 50),
		externalStation("Ultra Park", 350),
	}}
	e := evaluatorAtHour(13, discovery)

	got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 40)
	if got == nil {
		t.Fatal("expected a suggestion")
	}
	if got.ChargeDurationMinutes != 40 {
		t.Errorf("expected fixed 40 minute duration, got %d", got.ChargeDurationMinutes)
	}
	// First fast charger in provider order wins, not the most powerful.
	if got.Station.Name != "Rapid Hub" {
		t.Errorf("expected first qualifying station 'Rapid Hub', got %q", got.Station.Name)
	}
	if !strings.Contains(got.Message, "lunch") || !strings.Contains(got.Message, "Rapid Hub") || !strings.Contains(got.Message, "40") {
		t.Errorf("message should mention meal, station and duration: %q", got.Message)
	}
	if discovery.lastRad != suggestionRadiusKM {
		t.Errorf("expected fixed discovery radius %d, got %.1f", suggestionRadiusKM, discovery.lastRad)
	}
}

func TestEvaluateNoCandidates(t *testing.T) {
	e := evaluatorAtHour(13, &fakeDiscovery{})
	if got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 40); got != nil {
		t.Errorf("expected nil when discovery returns nothing, got %+v", got)
	}
}

func TestEvaluateOnlySlowChargers(t *testing.T) {
	discovery := &fakeDiscovery{stations: []models.Station{
		externalStation("Slow One", 11),
		externalStation("Slow Two", 22),
		externalStation("Almost", 29.9),
	}}
	e := evaluatorAtHour(20, discovery)

	if got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 40); got != nil {
		t.Errorf("expected nil when no fast charger qualifies, got %+v", got)
	}
}

func TestEvaluateThirtyKWBoundary(t *testing.T) {
	discovery := &fakeDiscovery{stations: []models.Station{externalStation("Exactly Thirty", 30)}}
	e := evaluatorAtHour(8, discovery)

	got := e.Evaluate(context.Background(), &models.Trip{}, 52.5, 13.4, 59.9)
	if got == nil {
		t.Fatal("a 30 kW station qualifies as a fast charger")
	}
	if got.Station.Name != "Exactly Thirty" {
		t.Errorf("unexpected station %q", got.Station.Name)
	}
}
