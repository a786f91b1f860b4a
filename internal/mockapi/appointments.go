package mockapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentabook/booking-client/internal/model"
)

func (s *Server) createAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offices[req.OfficeID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown office"})
		return
	}
	dentist, ok := s.dentists[req.DentistID]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown dentist"})
		return
	}
	if !dentist.SupportsService(req.ServiceID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dentist does not offer this service"})
		return
	}
	for _, existing := range s.appointments {
		if existing.DentistID == req.DentistID && existing.Date == req.Date &&
			existing.Time == req.Time && existing.Status != model.AppointmentStatusCancelled {
			c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
			return
		}
	}

	status := req.Status
	if status == "" {
		status = model.AppointmentStatusConfirmed
	}
	payment := req.PaymentStatus
	if payment == "" {
		payment = model.PaymentStatusPending
	}

	appt := model.Appointment{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		OfficeID:      req.OfficeID,
		ServiceID:     req.ServiceID,
		DentistID:     req.DentistID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        status,
		PaymentStatus: payment,
		OfficeName:    req.OfficeName,
		ServiceName:   req.ServiceName,
		DentistName:   req.DentistName,
		ServicePrice:  req.ServicePrice,
		Location:      req.Location,
	}
	s.appointments[appt.ID] = appt
	s.log.Info("appointment created", "id", appt.ID, "dentist", appt.DentistID)
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) listUserAppointments(c *gin.Context) {
	userID := c.Param("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Appointment, 0)
	for _, appt := range s.appointments {
		if appt.UserID == userID {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	c.JSON(http.StatusOK, out)
}

func (s *Server) cancelAppointment(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	// Repeat cancels are a no-op success, the contract is idempotent.
	appt.Status = model.AppointmentStatusCancelled
	s.appointments[id] = appt
	c.JSON(http.StatusOK, appt)
}

func (s *Server) rescheduleAppointment(c *gin.Context) {
	id := c.Param("id")

	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reschedule payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if appt.Status == model.AppointmentStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot reschedule a cancelled appointment"})
		return
	}

	appt.Date = req.NewDate
	appt.Time = req.NewTime
	if req.ServiceID != "" {
		appt.ServiceID = req.ServiceID
	}
	if req.OfficeID != "" {
		appt.OfficeID = req.OfficeID
	}
	if req.DentistID != "" {
		appt.DentistID = req.DentistID
	}
	s.appointments[id] = appt
	s.log.Info("appointment rescheduled", "id", id, "date", appt.Date, "time", appt.Time)
	c.JSON(http.StatusOK, appt)
}
