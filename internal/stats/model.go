package stats

import "time"

// Overview is the admin dashboard headline card data. Revenue counts
// confirmed bookings only; TotalUsers counts customer accounts, not admins.
type Overview struct {
	TotalBookings    int64   `json:"totalBookings"`
	UpcomingBookings int64   `json:"upcomingBookings"` // confirmed, today or later
	TotalGrounds     int64   `json:"totalGrounds"`
	TotalUsers       int64   `json:"totalUsers"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// RecentBooking is one row of the dashboard's latest-activity feed.
type RecentBooking struct {
	ID         string    `json:"_id"`
	UserName   string    `json:"userName"`
	GroundName string    `json:"groundName"`
	Date       time.Time `json:"date"`
	SlotCount  int       `json:"slotCount"`
	Total      float64   `json:"totalAmount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DayPoint is one day of the booking/revenue trend chart.
type DayPoint struct {
	Day      time.Time `json:"day"`
	Bookings int64     `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

// GroundRevenue ranks a ground by confirmed revenue.
type GroundRevenue struct {
	GroundID   string  `json:"groundId"`
	GroundName string  `json:"groundName"`
	Bookings   int64   `json:"bookings"`
	Revenue    float64 `json:"revenue"`
}

// Analytics bundles the trend chart with the ground leaderboard and the
// customer sign-up count over the same window.
type Analytics struct {
	Trend      []DayPoint      `json:"trend"`
	TopGrounds []GroundRevenue `json:"topGrounds"`
	NewUsers   int64           `json:"newUsers"`
}
