package models

// AdminStats is the aggregate view served at /admin/stats.
type AdminStats struct {
	TotalUsers     int `json:"total_users"`
	TotalStations  int `json:"total_stations"`
	TotalBookings  int `json:"total_bookings"`
	ActiveBookings int `json:"active_bookings"`
}
