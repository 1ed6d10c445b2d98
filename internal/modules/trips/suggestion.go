package trips

import (
	"context"
	"fmt"
	"time"

	"charge-finder/internal/models"
)

const (
	// suggestionRadiusKM is the fixed discovery radius around the trip's
	// current position.
	suggestionRadiusKM = 5

	// batterySuggestionThreshold: no stop is suggested at or above this
	// charge level, meal window or not.
	batterySuggestionThreshold = 60

	// suggestedChargeMinutes is a fixed constant, not derived from battery
	// deficit or vehicle profile.
	suggestedChargeMinutes = 40
)

// DiscoveryInterface is the external places provider used to find candidate
// stops. Implementations absorb failures and return an empty slice.
type DiscoveryInterface interface {
	Search(ctx context.Context, lat, lng, radiusKM float64) []models.Station
}

// SuggestionEvaluator decides whether an in-progress trip should stop for a
// meal-window charge. It is pure apart from the provider call and the
// injected clock.
type SuggestionEvaluator struct {
	discovery DiscoveryInterface
	now       func() time.Time
}

func NewSuggestionEvaluator(discovery DiscoveryInterface) *SuggestionEvaluator {
	return &SuggestionEvaluator{
		discovery: discovery,
		now:       time.Now,
	}
}

// mealWindow maps the current hour onto one of three fixed windows,
// inclusive at both bounds. Outside all windows it returns "".
func mealWindow(hour int) string {
	switch {
	case hour >= 8 && hour <= 9:
		return "breakfast"
	case hour >= 12 && hour <= 14:
		return "lunch"
	case hour >= 19 && hour <= 21:
		return "dinner"
	default:
		return ""
	}
}

// Evaluate returns a stop suggestion or nil. Guards are checked in a fixed
// order and short-circuit on the first failure:
//  1. the current hour must fall in a meal window;
//  2. battery must be strictly below the threshold;
//  3. discovery must return at least one candidate within the fixed radius;
//  4. at least one candidate must be a fast charger (>= 30 kW).
//
// The first fast charger in provider order wins; the provider's ordering is
// authoritative and not re-ranked.
func (e *SuggestionEvaluator) Evaluate(ctx context.Context, trip *models.Trip, lat, lng, batteryPct float64) *models.StopSuggestion {
	meal := mealWindow(e.now().Hour())
	if meal == "" {
		return nil
	}

	if batteryPct >= batterySuggestionThreshold {
		return nil
	}

	candidates := e.discovery.Search(ctx, lat, lng, suggestionRadiusKM)
	if len(candidates) == 0 {
		return nil
	}

	var chosen *models.Station
	for i := range candidates {
		if candidates[i].IsFastCharger() {
			chosen = &candidates[i]
			break
		}
	}
	if chosen == nil {
		return nil
	}

	message := fmt.Sprintf("Time for %s! %s is nearby with fast charging - a %d minute stop should top up your battery.",
		meal, chosen.Name, suggestedChargeMinutes)

	return &models.StopSuggestion{
		MealType:              meal,
		Station:               *chosen,
		Message:               message,
		ChargeDurationMinutes: suggestedChargeMinutes,
	}
}
