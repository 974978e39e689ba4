package models

// BalanceReminderPayload is queued for deposit bookings and fires ahead of the event.
type BalanceReminderPayload struct {
	BookingReference string  `json:"bookingReference"`
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	EventDate        string  `json:"eventDate"`
	Balance          float64 `json:"balance"`
}
