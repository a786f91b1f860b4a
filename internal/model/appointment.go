package model

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// Appointment as stored by the backend. OfficeName, ServiceName,
// DentistName and ServicePrice are denormalized display snapshots
// captured at booking time; they are never re-synced if the source
// entity later changes.
type Appointment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	OfficeID      string            `json:"officeId"`
	ServiceID     string            `json:"serviceId"`
	DentistID     string            `json:"dentistId"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	OfficeName    string            `json:"officeName,omitempty"`
	ServiceName   string            `json:"serviceName,omitempty"`
	DentistName   string            `json:"dentistName,omitempty"`
	ServicePrice  float64           `json:"servicePrice,omitempty"`
	Location      Coordinate        `json:"location,omitempty"`
}

// CreateAppointmentRequest is the POST /appointments body.
type CreateAppointmentRequest struct {
	UserID        string            `json:"userId" binding:"required"`
	OfficeID      string            `json:"officeId" binding:"required"`
	ServiceID     string            `json:"serviceId" binding:"required"`
	DentistID     string            `json:"dentistId" binding:"required"`
	Date          string            `json:"date" binding:"required"`
	Time          string            `json:"time" binding:"required"`
	Status        AppointmentStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	OfficeName    string            `json:"officeName"`
	ServiceName   string            `json:"serviceName"`
	DentistName   string            `json:"dentistName"`
	ServicePrice  float64           `json:"servicePrice"`
	Location      Coordinate        `json:"location"`
}

// RescheduleRequest is the PUT /appointments/reschedule/{id} body.
type RescheduleRequest struct {
	NewDate   string `json:"newDate" binding:"required"`
	NewTime   string `json:"newTime" binding:"required"`
	ServiceID string `json:"serviceId"`
	OfficeID  string `json:"officeId"`
	DentistID string `json:"dentistId"`
}
