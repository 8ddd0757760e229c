//go:build unit || e2e

package builder

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentBuilder struct {
	SalonID      uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	StaffID      uuid.UUID
	StaffName    string
	Date         string
	StartTime    string
	Services     []ServiceSpec
	Notes        string
	Status       string
	CreatedAt    time.Time
}

type ServiceSpec struct {
	ID          uuid.UUID
	Name        string
	DurationMin int
	PriceCents  int64
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		SalonID:      uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Test Customer",
		StaffID:      uuid.New(),
		StaffName:    "Test Stylist",
		Date:         "2025-07-14",
		StartTime:    "10:00",
		Services: []ServiceSpec{
			{ID: uuid.New(), Name: "Haircut", DurationMin: 60, PriceCents: 4500},
		},
		Status:    string(appointment.StatusScheduled),
		CreatedAt: time.Now(),
	}
}

// Clone returns an independent copy so a test can derive variants
// without mutating the shared defaults.
func (b *AppointmentBuilder) Clone() *AppointmentBuilder {
	var c AppointmentBuilder
	if err := copier.CopyWithOption(&c, b, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return &c
}

// Build methods
func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	date, err := reqdto.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	start, err := b.parseStart()
	if err != nil {
		return nil, err
	}

	lines := make([]appointment.ServiceLine, len(b.Services))
	for i, svc := range b.Services {
		lines[i] = appointment.ServiceLine{
			ServiceID:   svc.ID,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		}
	}
	return appointment.NewAppointment(b.SalonID, b.CustomerID, b.StaffID, date, start, lines, b.Notes, b.CreatedAt)
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	ids := make([]uuid.UUID, len(b.Services))
	for i, svc := range b.Services {
		ids[i] = svc.ID
	}
	return reqdto.CreateAppointmentRequest{
		CustomerID: b.CustomerID,
		StaffID:    b.StaffID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		ServiceIDs: ids,
		Notes:      b.Notes,
	}
}

func (b *AppointmentBuilder) BuildRecurringRequestDTO(occurrences int) reqdto.CreateRecurringRequest {
	return reqdto.CreateRecurringRequest{
		CreateAppointmentRequest: b.BuildCreateRequestDTO(),
		Occurrences:              occurrences,
	}
}

func (b *AppointmentBuilder) BuildRescheduleRequestDTO(date, startTime, reason string) reqdto.RescheduleAppointmentRequest {
	return reqdto.RescheduleAppointmentRequest{
		Date:      date,
		StartTime: startTime,
		Reason:    reason,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	date, _ := reqdto.ParseDate(b.Date)
	start, _ := b.parseStart()
	total := 0
	var price int64
	services := make([]queries.ServiceLineView, len(b.Services))
	for i, svc := range b.Services {
		services[i] = queries.ServiceLineView{
			ServiceID:   svc.ID,
			Name:        svc.Name,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		}
		total += svc.DurationMin
		price += svc.PriceCents
	}
	end, _ := start.AddMinutes(total)

	return &queries.AppointmentView{
		ID:               uuid.New(),
		SalonID:          b.SalonID,
		CustomerID:       b.CustomerID,
		CustomerName:     b.CustomerName,
		StaffID:          b.StaffID,
		StaffName:        b.StaffName,
		Date:             date,
		StartTime:        start.String(),
		EndTime:          end.String(),
		Services:         services,
		Status:           b.Status,
		Notes:            b.Notes,
		TotalDurationMin: total,
		TotalPriceCents:  price,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

// Fluent builder methods
func (b *AppointmentBuilder) WithCustomerID(id uuid.UUID) *AppointmentBuilder {
	b.CustomerID = id
	return b
}

func (b *AppointmentBuilder) WithStaffID(id uuid.UUID) *AppointmentBuilder {
	b.StaffID = id
	return b
}

func (b *AppointmentBuilder) WithDate(date string) *AppointmentBuilder {
	b.Date = date
	return b
}

func (b *AppointmentBuilder) WithStartTime(startTime string) *AppointmentBuilder {
	b.StartTime = startTime
	return b
}

func (b *AppointmentBuilder) WithServices(services ...ServiceSpec) *AppointmentBuilder {
	b.Services = services
	return b
}

func (b *AppointmentBuilder) WithNotes(notes string) *AppointmentBuilder {
	b.Notes = notes
	return b
}

func (b *AppointmentBuilder) WithStatus(status string) *AppointmentBuilder {
	b.Status = status
	return b
}

func (b *AppointmentBuilder) parseStart() (schedule.TimeOfDay, error) {
	return schedule.ParseTimeOfDay(b.StartTime)
}
