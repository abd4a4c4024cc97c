package request

// CreateBookingRequest carries the form as typed. Missing or empty fields are
// reported per field by the booking validation, not by binding.
type CreateBookingRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    string `json:"guests"`
	EventType string `json:"eventType"`
	Message   string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
