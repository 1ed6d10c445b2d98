package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"charge-finder/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	searchQuery = "EV charging station"

	// Placeholder values for fields the places provider does not expose.
	defaultConnectorType = "Type 2"
	defaultPricePerKWh   = 0.35
	defaultPowerOutputKW = 50
)

// Client queries a places-style text search API and normalizes results into
// the Station shape. It never returns an error: any failure (missing key,
// transport, bad status, decode) degrades to an empty result and a log line,
// so callers can treat discovery as best-effort.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a places client. The radius passed to Search is advisory
// only; the provider biases results toward the location but does not filter
// strictly.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithHTTP creates a places client with a custom HTTP client,
// mainly for tests.
func NewClientWithHTTP(baseURL, apiKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// textSearchResponse is the minimal slice of the provider response we care about.
type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Search returns externally discovered stations near the given point.
// radiusKM is a bias hint, not a hard filter.
func (c *Client) Search(ctx context.Context, lat, lng, radiusKM float64) []models.Station {
	if c.apiKey == "" {
		c.logger.Debug("places: no API key configured, skipping external search")
		return nil
	}

	params := url.Values{}
	params.Set("query", searchQuery)
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", int(radiusKM*1000)))
	params.Set("key", c.apiKey)

	requestURL := c.baseURL + "/textsearch/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Warn("places: building request failed", zap.Error(err))
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("places: search request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("places: unexpected response status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("places: decoding response failed", zap.Error(err))
		return nil
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		c.logger.Warn("places: provider returned error status", zap.String("provider_status", payload.Status))
		return nil
	}

	stations := make([]models.Station, 0, len(payload.Results))
	for _, result := range payload.Results {
		station := models.Station{
			ID:            models.ExternalStationIDPrefix + uuid.New().String(),
			Name:          result.Name,
			Address:       result.FormattedAddress,
			Latitude:      result.Geometry.Location.Lat,
			Longitude:     result.Geometry.Location.Lng,
			Status:        models.StationStatusAvailable,
			ConnectorType: defaultConnectorType,
			PowerOutputKW: defaultPowerOutputKW,
			PricePerKWh:   defaultPricePerKWh,
			IsExternal:    true,
		}
		if result.Rating > 0 {
			rating := result.Rating
			station.Rating = &rating
		}
		if result.UserRatingsTotal > 0 {
			reviews := result.UserRatingsTotal
			station.ReviewCount = &reviews
		}
		stations = append(stations, station)
	}

	return stations
}
