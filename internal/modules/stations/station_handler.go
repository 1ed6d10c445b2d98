package stations

import (
	"errors"
	"net/http"

	"charge-finder/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new station handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ListStations(c echo.Context) error {
	stations, err := h.service.List(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListStations: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve stations"})
	}
	if stations == nil {
		stations = []models.Station{}
	}
	return c.JSON(http.StatusOK, stations)
}

func (h *Handler) GetStation(c echo.Context) error {
	stationID := c.Param("id")

	station, err := h.service.Get(c.Request().Context(), stationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Station not found"})
		}
		c.Logger().Error("Handler.GetStation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve station"})
	}
	return c.JSON(http.StatusOK, station)
}

func (h *Handler) SearchStations(c echo.Context) error {
	var req models.StationSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid query parameters"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	stations, err := h.service.Search(c.Request().Context(), req.Latitude, req.Longitude, req.Radius)
	if err != nil {
		c.Logger().Error("Handler.SearchStations: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to search stations"})
	}
	if stations == nil {
		stations = []models.Station{}
	}
	return c.JSON(http.StatusOK, stations)
}
