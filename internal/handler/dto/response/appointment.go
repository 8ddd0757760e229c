package response

import (
	"time"

	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID                uuid.UUID                 `json:"id"`
	SalonID           uuid.UUID                 `json:"salonId"`
	CustomerID        uuid.UUID                 `json:"customerId"`
	CustomerName      string                    `json:"customerName"`
	StaffID           uuid.UUID                 `json:"staffId"`
	StaffName         string                    `json:"staffName"`
	Date              string                    `json:"date"`
	StartTime         string                    `json:"startTime"`
	EndTime           string                    `json:"endTime"`
	Services          []ServiceLineResponse     `json:"services"`
	Status            string                    `json:"status"`
	Notes             string                    `json:"notes,omitempty"`
	CancelReason      string                    `json:"cancelReason,omitempty"`
	RescheduleHistory []RescheduleEntryResponse `json:"rescheduleHistory,omitempty"`
	ActualStartTime   *time.Time                `json:"actualStartTime,omitempty"`
	ActualEndTime     *time.Time                `json:"actualEndTime,omitempty"`
	TotalDurationMin  int                       `json:"totalDurationMin"`
	TotalPriceCents   int64                     `json:"totalPriceCents"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

type ServiceLineResponse struct {
	ServiceID   uuid.UUID `json:"serviceId"`
	Name        string    `json:"name"`
	DurationMin int       `json:"durationMin"`
	PriceCents  int64     `json:"priceCents"`
}

type RescheduleEntryResponse struct {
	OriginalDate string    `json:"originalDate"`
	OriginalTime string    `json:"originalTime"`
	NewDate      string    `json:"newDate"`
	NewTime      string    `json:"newTime"`
	Reason       string    `json:"reason,omitempty"`
	At           time.Time `json:"at"`
}

type ConflictDetail struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
}

type SkippedOccurrenceResponse struct {
	Date      string           `json:"date"`
	Conflicts []ConflictDetail `json:"conflicts,omitempty"`
}

type RecurringResponse struct {
	Created []*AppointmentResponse      `json:"created"`
	Skipped []SkippedOccurrenceResponse `json:"skipped,omitempty"`
}

type CustomerAppointmentsResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	NextCursor   string                 `json:"nextCursor,omitempty"`
}

const dateLayout = "2006-01-02"

func FromAppointmentView(view *queries.AppointmentView) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:               view.ID,
		SalonID:          view.SalonID,
		CustomerID:       view.CustomerID,
		CustomerName:     view.CustomerName,
		StaffID:          view.StaffID,
		StaffName:        view.StaffName,
		Date:             view.Date.Format(dateLayout),
		StartTime:        view.StartTime,
		EndTime:          view.EndTime,
		Status:           view.Status,
		Notes:            view.Notes,
		CancelReason:     view.CancelReason,
		ActualStartTime:  view.ActualStartTime,
		ActualEndTime:    view.ActualEndTime,
		TotalDurationMin: view.TotalDurationMin,
		TotalPriceCents:  view.TotalPriceCents,
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
	}
	for _, svc := range view.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID:   svc.ServiceID,
			Name:        svc.Name,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		})
	}
	for _, h := range view.RescheduleHistory {
		resp.RescheduleHistory = append(resp.RescheduleHistory, RescheduleEntryResponse{
			OriginalDate: h.OriginalDate.Format(dateLayout),
			OriginalTime: h.OriginalTime,
			NewDate:      h.NewDate.Format(dateLayout),
			NewTime:      h.NewTime,
			Reason:       h.Reason,
			At:           h.At,
		})
	}
	return resp
}

func FromRecurringResult(result *commands.RecurringResult) *RecurringResponse {
	resp := &RecurringResponse{}
	for _, view := range result.Created {
		resp.Created = append(resp.Created, FromAppointmentView(view))
	}
	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedOccurrenceResponse{
			Date:      s.Date.Format(dateLayout),
			Conflicts: FromConflicts(s.Conflicts),
		})
	}
	return resp
}

func FromConflicts(conflicts []commands.ConflictingAppointment) []ConflictDetail {
	out := make([]ConflictDetail, len(conflicts))
	for i, c := range conflicts {
		out[i] = ConflictDetail{
			ID:        c.ID,
			Date:      c.Date,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Status:    c.Status,
		}
	}
	return out
}
