package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/lock"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrStaffNotFound           = errs.New("staff not found")
	ErrCustomerNotFound        = errs.New("customer not found")
	ErrServiceNotFound         = errs.New("service not found")
	ErrAppointmentNotFound     = errs.New("appointment not found")
	ErrInvalidBookingInput     = errs.New("invalid booking input")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrStaffUnavailable        = errs.New("staff is off on the requested date")
	ErrOutsideWorkingHours     = errs.New("requested time is outside working hours")
	ErrUnknownStatusAction     = errs.New("unknown status action")
	ErrTooManyOccurrences      = errs.New("occurrence count exceeds the configured maximum")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictingAppointment is the summary of one blocking appointment,
// shaped for the error response body.
type ConflictingAppointment struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
}

// ConflictError reports which appointments block the requested slot.
// It unwraps to ErrBookingConflict so callers can match either way.
type ConflictError struct {
	Conflicts []ConflictingAppointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with %d existing appointment(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}

func newConflictError(conflicts []*appointment.Appointment) *ConflictError {
	out := make([]ConflictingAppointment, len(conflicts))
	for i, c := range conflicts {
		out[i] = ConflictingAppointment{
			ID:        c.ID(),
			Date:      c.Date().Format("2006-01-02"),
			StartTime: c.StartTime().String(),
			EndTime:   c.EndTime().String(),
			Status:    string(c.Status()),
		}
	}
	return &ConflictError{Conflicts: out}
}

type SkippedOccurrence struct {
	Date      time.Time
	Conflicts []ConflictingAppointment
}

type RecurringResult struct {
	Created []*queries.AppointmentView
	Skipped []SkippedOccurrence
}

type AppointmentCommands interface {
	Create(ctx context.Context, req reqdto.CreateAppointmentRequest) (*queries.AppointmentView, error)
	CreateRecurring(ctx context.Context, req reqdto.CreateRecurringRequest) (*RecurringResult, error)
	Reschedule(ctx context.Context, id uuid.UUID, req reqdto.RescheduleAppointmentRequest) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, action string) (*queries.AppointmentView, error)
}

type appointmentUseCaseImpl struct {
	appointmentRepo    AppointmentRepository
	availabilityRepo   AvailabilityRepository
	staffRepo          StaffRepository
	customerRepo       CustomerRepository
	serviceRepo        ServiceRepository
	appointmentQueries queries.AppointmentQueries
	db                 *pgxpool.Pool
	locks              *lock.KeyedMutex
	clock              clock.Clock
	booking            config.BookingConfig
}

func NewAppointmentUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	staffRepo StaffRepository,
	customerRepo CustomerRepository,
	serviceRepo ServiceRepository,
	appointmentQueries queries.AppointmentQueries,
	db *pgxpool.Pool,
	locks *lock.KeyedMutex,
	clock clock.Clock,
	booking config.BookingConfig,
) AppointmentCommands {
	return &appointmentUseCaseImpl{
		appointmentRepo:    appointmentRepo,
		availabilityRepo:   availabilityRepo,
		staffRepo:          staffRepo,
		customerRepo:       customerRepo,
		serviceRepo:        serviceRepo,
		appointmentQueries: appointmentQueries,
		db:                 db,
		locks:              locks,
		clock:              clock,
		booking:            booking,
	}
}

func (u *appointmentUseCaseImpl) Create(
	ctx context.Context,
	req reqdto.CreateAppointmentRequest,
) (*queries.AppointmentView, error) {
	date, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	startTime, err := req.ParseStartTime()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	staff, err := u.validateAndGetStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	if _, err = u.validateAndGetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	lines, err := u.resolveServiceLines(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	appt, err := appointment.NewAppointment(
		staff.SalonID,
		req.CustomerID,
		req.StaffID,
		date,
		startTime,
		lines,
		req.TrimmedNotes(),
		u.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	if err = u.bookLocked(ctx, appt); err != nil {
		return nil, err
	}

	return u.readBack(ctx, appt.ID())
}

// bookLocked runs the check-then-commit section under the per-staff/day
// mutex so two concurrent requests cannot both observe a free slot.
func (u *appointmentUseCaseImpl) bookLocked(ctx context.Context, appt *appointment.Appointment) error {
	key := partitionKey(appt.StaffID(), appt.Date())
	u.locks.Lock(key)
	defer u.locks.Unlock(key)

	if err := u.checkSlot(ctx, appt.StaffID(), appt.Date(), appt.Interval(), uuid.Nil); err != nil {
		return err
	}

	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, u.appointmentRepo.Create(ctx, tx, appt)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// checkSlot validates the interval against the day's schedule and the
// committed appointments. excludeID skips the appointment being moved.
func (u *appointmentUseCaseImpl) checkSlot(
	ctx context.Context,
	staffID uuid.UUID,
	date time.Time,
	iv schedule.Interval,
	excludeID uuid.UUID,
) error {
	record, _, err := shared.ResolveDay(ctx, u.availabilityRepo, staffID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if record.IsDayOff() {
		return ErrStaffUnavailable
	}
	hours := record.WorkingHours()
	if iv.Start < hours.Start().Minutes() || iv.End > hours.End().Minutes() {
		return ErrOutsideWorkingHours
	}
	for _, b := range record.Breaks() {
		if schedule.Overlaps(iv.Start, iv.End, b.Start().Minutes(), b.End().Minutes()) {
			return ErrOutsideWorkingHours
		}
	}

	existing, err := u.appointmentRepo.FindByStaffDate(ctx, staffID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	conflicts := appointment.FindConflicts(existing, iv.Start, iv.End, excludeID)
	if len(conflicts) >= record.MaxBookings() {
		return newConflictError(conflicts)
	}
	return nil
}

func (u *appointmentUseCaseImpl) CreateRecurring(
	ctx context.Context,
	req reqdto.CreateRecurringRequest,
) (*RecurringResult, error) {
	if req.Occurrences > u.booking.RecurringMaxOccurrences {
		return nil, ErrTooManyOccurrences
	}

	firstDate, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	startTime, err := req.ParseStartTime()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	staff, err := u.validateAndGetStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	if _, err = u.validateAndGetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	lines, err := u.resolveServiceLines(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	result := &RecurringResult{}
	for i := 0; i < req.Occurrences; i++ {
		date := firstDate.AddDate(0, 0, 7*i)

		appt, err := appointment.NewAppointment(
			staff.SalonID,
			req.CustomerID,
			req.StaffID,
			date,
			startTime,
			lines,
			req.TrimmedNotes(),
			u.clock.Now(),
		)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidBookingInput)
		}

		if err = u.bookLocked(ctx, appt); err != nil {
			skipped, skipErr := asSkippedOccurrence(date, err)
			if skipErr != nil {
				return nil, skipErr
			}
			result.Skipped = append(result.Skipped, skipped)
			continue
		}

		view, err := u.readBack(ctx, appt.ID())
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, view)
	}
	return result, nil
}

// asSkippedOccurrence classifies a per-occurrence booking failure:
// slot-level rejections skip the occurrence, anything else aborts the
// whole series.
func asSkippedOccurrence(date time.Time, err error) (SkippedOccurrence, error) {
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return SkippedOccurrence{Date: date, Conflicts: conflictErr.Conflicts}, nil
	}
	if errors.Is(err, ErrStaffUnavailable) || errors.Is(err, ErrOutsideWorkingHours) {
		return SkippedOccurrence{Date: date}, nil
	}
	return SkippedOccurrence{}, err
}

func (u *appointmentUseCaseImpl) Reschedule(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.RescheduleAppointmentRequest,
) (*queries.AppointmentView, error) {
	appt, err := u.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	newDate, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}
	newStart, err := req.ParseStartTime()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	loadedStatus := appt.Status()
	if err = appt.Reschedule(newDate, newStart, req.Reason, u.clock.Now()); err != nil {
		if errors.Is(err, appointment.ErrTerminalStatus) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrInvalidBookingInput)
	}

	key := partitionKey(appt.StaffID(), appt.Date())
	u.locks.Lock(key)
	defer u.locks.Unlock(key)

	// The moved appointment must not count against its own new slot.
	if err = u.checkSlot(ctx, appt.StaffID(), appt.Date(), appt.Interval(), appt.ID()); err != nil {
		return nil, err
	}

	if err = u.persistUpdate(ctx, appt, loadedStatus); err != nil {
		return nil, err
	}
	return u.readBack(ctx, appt.ID())
}

func (u *appointmentUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	appt, err := u.loadAppointment(ctx, id)
	if err != nil {
		return err
	}

	loadedStatus := appt.Status()
	if err = appt.Cancel(reason, u.clock.Now(), u.booking.CancelWindowMin); err != nil {
		return err
	}
	return u.persistUpdate(ctx, appt, loadedStatus)
}

func (u *appointmentUseCaseImpl) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	action string,
) (*queries.AppointmentView, error) {
	appt, err := u.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	loadedStatus := appt.Status()
	switch action {
	case "confirm":
		err = appt.Confirm(now)
	case "check-in":
		err = appt.CheckIn(now)
	case "complete":
		err = appt.Complete(now)
	case "no-show":
		err = appt.MarkNoShow(now)
	default:
		return nil, ErrUnknownStatusAction
	}
	if err != nil {
		return nil, err
	}

	if err = u.persistUpdate(ctx, appt, loadedStatus); err != nil {
		return nil, err
	}
	return u.readBack(ctx, appt.ID())
}

func (u *appointmentUseCaseImpl) loadAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	appt, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return appt, nil
}

// persistUpdate commits the mutated appointment, expecting the row to
// still be in the status it was loaded with. A stale expectation means
// a concurrent transition won; surface it as a terminal-status error
// rather than silently overwriting.
func (u *appointmentUseCaseImpl) persistUpdate(ctx context.Context, appt *appointment.Appointment, loadedStatus appointment.Status) error {
	_, err := shared.WithDefaultRetry(ctx, u.db, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, u.appointmentRepo.Update(ctx, tx, appt, loadedStatus)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return appointment.ErrTerminalStatus
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// readBack fetches the committed view from the read store.
func (u *appointmentUseCaseImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	view, err := u.appointmentQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *appointmentUseCaseImpl) validateAndGetStaff(ctx context.Context, staffID uuid.UUID) (*StaffSnapshot, error) {
	staff, err := u.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !staff.Active {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (u *appointmentUseCaseImpl) validateAndGetCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerSnapshot, error) {
	customer, err := u.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return customer, nil
}

// resolveServiceLines maps the requested service IDs to booked lines,
// preserving request order.
func (u *appointmentUseCaseImpl) resolveServiceLines(ctx context.Context, serviceIDs []uuid.UUID) ([]appointment.ServiceLine, error) {
	snapshots, err := u.serviceRepo.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	byID := make(map[uuid.UUID]*ServiceSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	lines := make([]appointment.ServiceLine, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			return nil, ErrServiceNotFound
		}
		lines = append(lines, appointment.ServiceLine{
			ServiceID:   svc.ID,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		})
	}
	return lines, nil
}

func partitionKey(staffID uuid.UUID, date time.Time) string {
	return staffID.String() + "|" + date.Format("2006-01-02")
}
