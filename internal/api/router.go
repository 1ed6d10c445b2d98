package api

import (
	"net/http"

	"charge-finder/internal/api/middleware"
	"charge-finder/internal/models"
	"charge-finder/internal/modules/admin"
	"charge-finder/internal/modules/bookings"
	"charge-finder/internal/modules/stations"
	"charge-finder/internal/modules/trips"
	"charge-finder/internal/modules/users"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	userHandler *users.Handler,
	stationHandler *stations.Handler,
	bookingHandler *bookings.Handler,
	tripHandler *trips.Handler,
	adminHandler *admin.Handler,
	healthCheck echo.HandlerFunc,
) {
	// Initialize the JWT authentication middleware
	authMiddleware := middleware.JWTAuth(jwtSecret)
	// Initialize an Admin role authorization middleware
	adminRequired := middleware.AdminRequired()

	// Unmatched routes get the JSON envelope, not echo's default page.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Route not found"})
	})

	e.GET("/health", healthCheck)

	// --- Public Routes ---
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/logout", userHandler.Logout, authMiddleware)
	}

	// Station reads are public so the map works without an account.
	stationGroup := e.Group("/stations")
	{
		stationGroup.GET("", stationHandler.ListStations)
		stationGroup.GET("/search", stationHandler.SearchStations)
		stationGroup.GET("/:id", stationHandler.GetStation)
	}

	// --- User Routes ---
	userGroup := e.Group("/users", authMiddleware)
	{
		userGroup.GET("/profile", userHandler.GetProfile)
		userGroup.PUT("/profile", userHandler.UpdateProfile)
		userGroup.GET("/preferences", userHandler.GetPreferences)
		userGroup.PUT("/preferences", userHandler.UpdatePreferences)
	}

	// --- Booking Routes ---
	bookingGroup := e.Group("/bookings", authMiddleware)
	{
		bookingGroup.POST("", bookingHandler.CreateBooking)
		bookingGroup.GET("", bookingHandler.ListMyBookings)
		bookingGroup.DELETE("/:id", bookingHandler.CancelBooking)
	}

	// --- Trip Routes ---
	tripGroup := e.Group("/trips", authMiddleware)
	{
		tripGroup.POST("/plan", tripHandler.PlanTrip)
		tripGroup.POST("/:id/update", tripHandler.UpdateTrip)
		tripGroup.GET("/active", tripHandler.GetActiveTrip)
	}

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		adminGroup.GET("/stats", adminHandler.GetStats)
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.GET("/bookings", adminHandler.ListBookings)

		// Station Management
		adminGroup.POST("/stations", adminHandler.CreateStation)
		adminGroup.PUT("/stations/:id", adminHandler.UpdateStation)
		adminGroup.DELETE("/stations/:id", adminHandler.DeleteStation)
	}
}

// NewHTTPErrorHandler returns echo's fallback error handler with the JSON
// error envelope. Outside production the underlying error text is included.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"
		if httpErr, ok := err.(*echo.HTTPError); ok {
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		resp := models.ErrorResponse{Message: message}
		if !production {
			resp.Detail = err.Error()
		}
		if jsonErr := c.JSON(code, resp); jsonErr != nil {
			c.Logger().Error(jsonErr)
		}
	}
}
