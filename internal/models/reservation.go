package models

// ReservationForm carries a booking request through validation. It is
// transient; nothing is persisted after submission.
type ReservationForm struct {
	CustomerName    string `json:"customerName" validate:"notblank"`
	Phone           string `json:"phone" validate:"notblank,ngphone"`
	Email           string `json:"email" validate:"notblank,looseemail"`
	Date            string `json:"date" validate:"required,futuredate"` // calendar date, 2006-01-02
	Time            string `json:"time" validate:"required,timeslot"`
	Guests          int    `json:"guests" validate:"min=1,max=20"`
	Location        string `json:"location" validate:"required,venue"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}
