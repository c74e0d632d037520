package notify

// BookingConfirmedEvent is published when a booking is successfully created.
// It carries enough information for downstream consumers to notify the user
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   string   `json:"booking_id"`
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name"`
	UserEmail   string   `json:"user_email"`
	GroundID    string   `json:"ground_id"`
	GroundName  string   `json:"ground_name"`
	Date        string   `json:"date"` // YYYY-MM-DD
	TimeSlots   []string `json:"time_slots"`
	TotalAmount float64  `json:"total_amount"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// RoutingKeyBookingConfirmed is the routing key used on the events exchange.
const RoutingKeyBookingConfirmed = "booking.confirmed"
