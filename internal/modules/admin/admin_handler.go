package admin

import (
	"errors"
	"net/http"
	"strconv"

	"charge-finder/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new admin handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.service.GetStats(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetStats: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListUsers(c echo.Context) error {
	userList, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListUsers: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve users"})
	}
	if userList == nil {
		userList = []models.User{}
	}
	return c.JSON(http.StatusOK, userList)
}

func (h *Handler) ListBookings(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	bookingList, total, err := h.service.ListBookings(c.Request().Context(), page, limit)
	if err != nil {
		c.Logger().Error("Handler.ListBookings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve bookings"})
	}
	if bookingList == nil {
		bookingList = []models.Booking{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": bookingList, "total": total})
}

func (h *Handler) CreateStation(c echo.Context) error {
	var req models.CreateStationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	station, err := h.service.CreateStation(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateStation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create station"})
	}
	return c.JSON(http.StatusCreated, station)
}

func (h *Handler) UpdateStation(c echo.Context) error {
	stationID := c.Param("id")

	var req models.UpdateStationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	station, err := h.service.UpdateStation(c.Request().Context(), stationID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Station not found"})
		}
		c.Logger().Error("Handler.UpdateStation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update station"})
	}
	return c.JSON(http.StatusOK, station)
}

func (h *Handler) DeleteStation(c echo.Context) error {
	stationID := c.Param("id")

	if err := h.service.DeleteStation(c.Request().Context(), stationID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Station not found"})
		}
		if errors.Is(err, models.ErrStationHasActiveBookings) {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Station has active bookings"})
		}
		c.Logger().Error("Handler.DeleteStation: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete station"})
	}
	return c.NoContent(http.StatusNoContent)
}
