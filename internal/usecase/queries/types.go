package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type AppointmentView struct {
	ID                uuid.UUID         `json:"id"`
	SalonID           uuid.UUID         `json:"salon_id"`
	CustomerID        uuid.UUID         `json:"customer_id"`
	CustomerName      string            `json:"customer_name"`
	StaffID           uuid.UUID         `json:"staff_id"`
	StaffName         string            `json:"staff_name"`
	Date              time.Time         `json:"date"`
	StartTime         string            `json:"start_time"`
	EndTime           string            `json:"end_time"`
	Services          []ServiceLineView `json:"services"`
	Status            string            `json:"status"`
	Notes             string            `json:"notes,omitempty"`
	CancelReason      string            `json:"cancel_reason,omitempty"`
	RescheduleHistory []RescheduleView  `json:"reschedule_history,omitempty"`
	ActualStartTime   *time.Time        `json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time        `json:"actual_end_time,omitempty"`
	TotalDurationMin  int               `json:"total_duration_min"`
	TotalPriceCents   int64             `json:"total_price_cents"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type ServiceLineView struct {
	ServiceID   uuid.UUID `json:"service_id"`
	Name        string    `json:"name"`
	DurationMin int       `json:"duration_min"`
	PriceCents  int64     `json:"price_cents"`
}

type RescheduleView struct {
	OriginalDate time.Time `json:"original_date"`
	OriginalTime string    `json:"original_time"`
	NewDate      time.Time `json:"new_date"`
	NewTime      string    `json:"new_time"`
	Reason       string    `json:"reason,omitempty"`
	At           time.Time `json:"at"`
}

type TimeSlotView struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DayScheduleView struct {
	StaffID      uuid.UUID   `json:"staff_id"`
	Date         time.Time   `json:"date"`
	IsDayOff     bool        `json:"is_day_off"`
	WorkStart    string      `json:"work_start"`
	WorkEnd      string      `json:"work_end"`
	Breaks       []BreakView `json:"breaks,omitempty"`
	SlotDuration int         `json:"slot_duration"`
	MaxBookings  int         `json:"max_bookings"`
	IsDefault    bool        `json:"is_default"`
}

type BreakView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	SalonID   *uuid.UUID `json:"salon_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
