package bookings

import (
	"errors"
	"net/http"

	"charge-finder/internal/models"
	"charge-finder/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

// NewHandler creates a new booking handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) CreateBooking(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	booking, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Station not found"})
		}
		if errors.Is(err, models.ErrStationUnavailable) {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Station is not available for booking"})
		}
		c.Logger().Error("Handler.CreateBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create booking"})
	}

	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) ListMyBookings(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	bookingList, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListMyBookings: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve bookings"})
	}
	if bookingList == nil {
		bookingList = []models.Booking{}
	}
	return c.JSON(http.StatusOK, bookingList)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}
	bookingID := c.Param("id")

	booking, err := h.service.Cancel(c.Request().Context(), bookingID, userID)
	if err != nil {
		// Not-owned bookings surface as not found: never reveal that the id
		// exists under another account.
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Booking not found"})
		}
		c.Logger().Error("Handler.CancelBooking: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to cancel booking"})
	}

	return c.JSON(http.StatusOK, booking)
}
