package stations

import (
	"context"
	"strings"
	"testing"

	"charge-finder/internal/models"

	"go.uber.org/zap"
)

type fakeStationRepo struct {
	RepositoryInterface
	results []models.Station
	lastRad float64
}

func (f *fakeStationRepo) SearchByDistance(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error) {
	f.lastRad = radiusKM
	return f.results, nil
}

type fakeDiscovery struct {
	stations []models.Station
	calls    int
}

func (f *fakeDiscovery) Search(ctx context.Context, lat, lng, radiusKM float64) []models.Station {
	f.calls++
	return f.stations
}

func persisted(name string, distanceKM float64) models.Station {
	d := distanceKM
	return models.Station{
		ID:         name + "-id",
		Name:       name,
		Status:     models.StationStatusAvailable,
		DistanceKM: &d,
	}
}

func external(name string) models.Station {
	return models.Station{
		ID:         models.ExternalStationIDPrefix + name,
		Name:       name,
		IsExternal: true,
	}
}

func TestSearchNoFallbackWhenEnoughResults(t *testing.T) {
	repo := &fakeStationRepo{results: []models.Station{
		persisted("A", 1), persisted("B", 2), persisted("C", 3), persisted("D", 4), persisted("E", 5),
	}}
	discovery := &fakeDiscovery{stations: []models.Station{external("X")}}
	svc := NewService(repo, discovery, zap.NewNop())

	got, err := svc.Search(context.Background(), 52.5, 13.4, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 results, got %d", len(got))
	}
	if discovery.calls != 0 {
		t.Errorf("fallback must not run with >= 5 primary results, got %d calls", discovery.calls)
	}
}

func TestSearchFallbackBelowThreshold(t *testing.T) {
	repo := &fakeStationRepo{results: []models.Station{
		persisted("A", 1), persisted("B", 2), persisted("C", 3), persisted("D", 4),
	}}
	discovery := &fakeDiscovery{stations: []models.Station{external("X"), external("Y")}}
	svc := NewService(repo, discovery, zap.NewNop())

	got, err := svc.Search(context.Background(), 52.5, 13.4, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if discovery.calls != 1 {
		t.Fatalf("fallback must run with 4 primary results, got %d calls", discovery.calls)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 merged results, got %d", len(got))
	}

	// Externals come after the distance-ordered persisted block.
	for i, station := range got {
		if i < 4 && station.IsExternal {
			t.Errorf("position %d: external station before persisted results", i)
		}
		if i >= 4 && !station.IsExternal {
			t.Errorf("position %d: persisted station after external block", i)
		}
	}

	// Persisted block stays non-decreasing in distance.
	for i := 1; i < 4; i++ {
		if *got[i].DistanceKM < *got[i-1].DistanceKM {
			t.Errorf("distance order violated at %d", i)
		}
	}
}

func TestSearchDedupesCaseInsensitiveNames(t *testing.T) {
	repo := &fakeStationRepo{results: []models.Station{persisted("City Charge Hub", 1)}}
	discovery := &fakeDiscovery{stations: []models.Station{
		external("CITY CHARGE HUB"),
		external("city charge hub"),
		external("Other Plaza"),
	}}
	svc := NewService(repo, discovery, zap.NewNop())

	got, err := svc.Search(context.Background(), 52.5, 13.4, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results after dedupe, got %d", len(got))
	}

	seen := make(map[string]int)
	for _, station := range got {
		seen[strings.ToLower(station.Name)]++
	}
	for name, count := range seen {
		if count > 1 {
			t.Errorf("duplicate name %q in merged results", name)
		}
	}
	if got[1].Name != "Other Plaza" {
		t.Errorf("expected 'Other Plaza' to survive the merge, got %q", got[1].Name)
	}
}

func TestSearchProviderFailureKeepsPrimary(t *testing.T) {
	repo := &fakeStationRepo{results: []models.Station{persisted("A", 1)}}
	// Absorbed provider failures surface as an empty slice.
	discovery := &fakeDiscovery{}
	svc := NewService(repo, discovery, zap.NewNop())

	got, err := svc.Search(context.Background(), 52.5, 13.4, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("expected primary results to survive provider failure, got %+v", got)
	}
}

func TestSearchDefaultRadius(t *testing.T) {
	repo := &fakeStationRepo{}
	discovery := &fakeDiscovery{}
	svc := NewService(repo, discovery, zap.NewNop())

	if _, err := svc.Search(context.Background(), 52.5, 13.4, 0); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if repo.lastRad != DefaultSearchRadiusKM {
		t.Errorf("expected default radius %d, got %.1f", DefaultSearchRadiusKM, repo.lastRad)
	}
}
