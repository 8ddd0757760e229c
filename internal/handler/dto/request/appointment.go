package request

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	CustomerID uuid.UUID   `json:"customer_id" binding:"required"`
	StaffID    uuid.UUID   `json:"staff_id" binding:"required"`
	Date       string      `json:"date" binding:"required" example:"2025-07-14"`
	StartTime  string      `json:"start_time" binding:"required" example:"10:30"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	Notes      string      `json:"notes"`
}

func (r CreateAppointmentRequest) ParseDate() (time.Time, error) {
	return ParseDate(r.Date)
}

func (r CreateAppointmentRequest) ParseStartTime() (schedule.TimeOfDay, error) {
	return schedule.ParseTimeOfDay(r.StartTime)
}

func (r CreateAppointmentRequest) TrimmedNotes() string {
	return strings.TrimSpace(r.Notes)
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required" example:"2025-07-15"`
	StartTime string `json:"start_time" binding:"required" example:"14:00"`
	Reason    string `json:"reason"`
}

func (r RescheduleAppointmentRequest) ParseDate() (time.Time, error) {
	return ParseDate(r.Date)
}

func (r RescheduleAppointmentRequest) ParseStartTime() (schedule.TimeOfDay, error) {
	return schedule.ParseTimeOfDay(r.StartTime)
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type UpdateAppointmentStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=confirm check-in complete no-show"`
}

type CreateRecurringRequest struct {
	CreateAppointmentRequest
	Occurrences int `json:"occurrences" binding:"required,min=1"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form, pinned to UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
