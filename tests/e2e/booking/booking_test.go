//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/authtest"
	"salon-scheduler/tests/common/dbtest"
	"salon-scheduler/tests/common/httptest"
	"salon-scheduler/tests/e2e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Booking dates live far in the future so the cancellation window
// stays open regardless of when the suite runs.
const (
	bookingDate = "2027-03-08"
	weekTwo     = "2027-03-15"
	weekThree   = "2027-03-22"
)

type bookingSuite struct {
	e2e.SharedSuite

	receptionistToken string
	managerToken      string

	staffID    uuid.UUID
	customerID uuid.UUID
	haircutID  uuid.UUID
	colorID    uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.receptionistToken = authtest.CreateAndLogin(t, s.DB, s.Router, "frontdesk@example.com", string(user.RoleReceptionist))
	s.managerToken = authtest.CreateAndLogin(t, s.DB, s.Router, "manager@example.com", string(user.RoleManager))

	s.staffID = dbtest.CreateTestStaff(t, s.DB, "Aiko Tanaka")
	s.customerID = dbtest.CreateTestCustomer(t, s.DB, "Jordan Reyes")
	s.haircutID = dbtest.CreateTestService(t, s.DB, "Haircut", 60, 4500)
	s.colorID = dbtest.CreateTestService(t, s.DB, "Color", 90, 12000)
}

func (s *bookingSuite) bookAppointment(date, startTime string, serviceIDs ...uuid.UUID) *resdto.AppointmentResponse {
	t := s.T()

	if len(serviceIDs) == 0 {
		serviceIDs = []uuid.UUID{s.haircutID}
	}
	reqBody := request.CreateAppointmentRequest{
		CustomerID: s.customerID,
		StaffID:    s.staffID,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: serviceIDs,
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, s.receptionistToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created resdto.AppointmentResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	return &created
}

func (s *bookingSuite) slotTimes(date string, durationMin int) []string {
	t := s.T()

	url := fmt.Sprintf("/api/staff/%s/slots?date=%s&duration=%d", s.staffID, date, durationMin)
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.AvailableSlotsResponse
	httptest.DecodeResponseBody(t, w.Body, &res)

	times := make([]string, len(res.Slots))
	for i, slot := range res.Slots {
		require.True(t, slot.Available)
		times[i] = slot.Time
	}
	return times
}

func (s *bookingSuite) TestScheduleUpsert() {
	s.Run("manager replaces the day schedule", func() {
		t := s.T()

		reqBody := request.UpsertDayScheduleRequest{
			WorkStart:       "10:00",
			WorkEnd:         "16:00",
			Breaks:          []request.BreakWindow{{Start: "12:00", End: "13:00"}},
			SlotDurationMin: 30,
			MaxBookings:     1,
		}
		url := fmt.Sprintf("/api/staff/%s/schedule/%s", s.staffID, bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, reqBody, s.managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.DayScheduleResponse
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "10:00", res.WorkStart)
		require.Equal(t, "16:00", res.WorkEnd)
		require.Len(t, res.Breaks, 1)
		require.Equal(t, 30, res.SlotDuration)
		require.False(t, res.IsDefault)

		// The read side must reflect the upsert, not a stale cache entry.
		readURL := fmt.Sprintf("/api/staff/%s/schedule?date=%s", s.staffID, bookingDate)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, readURL, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "10:00", res.WorkStart)
		require.False(t, res.IsDefault)

		// Replacing it again invalidates the cached record.
		reqBody.WorkStart = "11:00"
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, url, reqBody, s.managerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, readURL, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "11:00", res.WorkStart)
	})

	s.Run("unscheduled day falls back to the default window", func() {
		t := s.T()

		url := fmt.Sprintf("/api/staff/%s/schedule?date=%s", s.staffID, bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.DayScheduleResponse
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.True(t, res.IsDefault)
		require.Equal(t, "09:00", res.WorkStart)
		require.Equal(t, "18:00", res.WorkEnd)
	})

	s.Run("receptionist may not edit schedules", func() {
		t := s.T()

		url := fmt.Sprintf("/api/staff/%s/schedule/%s", s.staffID, bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, request.UpsertDayScheduleRequest{}, s.receptionistToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("inverted working hours are rejected", func() {
		t := s.T()

		reqBody := request.UpsertDayScheduleRequest{WorkStart: "18:00", WorkEnd: "09:00"}
		url := fmt.Sprintf("/api/staff/%s/schedule/%s", s.staffID, bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, reqBody, s.managerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown staff", func() {
		t := s.T()

		url := fmt.Sprintf("/api/staff/%s/schedule/%s", uuid.New(), bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, request.UpsertDayScheduleRequest{}, s.managerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestBookAppointment() {
	s.Run("booking removes the slot from the grid", func() {
		t := s.T()

		require.Contains(t, s.slotTimes(bookingDate, 60), "10:00")

		created := s.bookAppointment(bookingDate, "10:00", s.haircutID, s.colorID)
		require.Equal(t, "scheduled", created.Status)
		require.Equal(t, "10:00", created.StartTime)
		require.Equal(t, "12:30", created.EndTime)
		require.Len(t, created.Services, 2)
		require.Equal(t, 150, created.TotalDurationMin)
		require.Equal(t, int64(16500), created.TotalPriceCents)

		times := s.slotTimes(bookingDate, 60)
		require.NotContains(t, times, "10:00")
		require.NotContains(t, times, "11:00")
		require.NotContains(t, times, "12:00")
		require.Contains(t, times, "09:00")
		require.Contains(t, times, "13:00")
	})

	s.Run("overlapping booking returns the blocking appointments", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		reqBody := request.CreateAppointmentRequest{
			CustomerID: s.customerID,
			StaffID:    s.staffID,
			Date:       bookingDate,
			StartTime:  "10:30",
			ServiceIDs: []uuid.UUID{s.haircutID},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var res struct {
			Error     string                  `json:"error"`
			Conflicts []resdto.ConflictDetail `json:"conflicts"`
		}
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Len(t, res.Conflicts, 1)
		require.Equal(t, created.ID, res.Conflicts[0].ID)
		require.Equal(t, "10:00", res.Conflicts[0].StartTime)
		require.Equal(t, "11:00", res.Conflicts[0].EndTime)
	})

	s.Run("odd-length service blocks every touched grid step", func() {
		t := s.T()

		trimID := dbtest.CreateTestService(t, s.DB, "Beard Trim", 45, 2500)
		dbtest.SetDaySchedule(t, s.DB, s.staffID, mustDate(t, bookingDate), false, 540, 1080, 30, 1)

		s.bookAppointment(bookingDate, "09:00", trimID)

		// The 09:00-09:45 booking covers the 09:00 and 09:30 starts.
		times := s.slotTimes(bookingDate, 30)
		require.NotContains(t, times, "09:00")
		require.NotContains(t, times, "09:30")
		require.Contains(t, times, "10:00")
	})

	s.Run("capacity above one admits parallel bookings", func() {
		t := s.T()

		dbtest.SetDaySchedule(t, s.DB, s.staffID, mustDate(t, bookingDate), false, 540, 1080, 60, 2)

		s.bookAppointment(bookingDate, "10:00")
		second := s.bookAppointment(bookingDate, "10:00")
		require.Equal(t, "scheduled", second.Status)
	})

	s.Run("day off rejects the booking", func() {
		t := s.T()

		dbtest.SetDaySchedule(t, s.DB, s.staffID, mustDate(t, bookingDate), true, 540, 1080, 60, 1)

		reqBody := request.CreateAppointmentRequest{
			CustomerID: s.customerID,
			StaffID:    s.staffID,
			Date:       bookingDate,
			StartTime:  "10:00",
			ServiceIDs: []uuid.UUID{s.haircutID},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("booking outside working hours", func() {
		t := s.T()

		reqBody := request.CreateAppointmentRequest{
			CustomerID: s.customerID,
			StaffID:    s.staffID,
			Date:       bookingDate,
			StartTime:  "08:00",
			ServiceIDs: []uuid.UUID{s.haircutID},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown customer", func() {
		t := s.T()

		reqBody := request.CreateAppointmentRequest{
			CustomerID: uuid.New(),
			StaffID:    s.staffID,
			Date:       bookingDate,
			StartTime:  "10:00",
			ServiceIDs: []uuid.UUID{s.haircutID},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("stylists may not book", func() {
		t := s.T()

		stylistToken := authtest.CreateAndLogin(t, s.DB, s.Router, "stylist@example.com", string(user.RoleStylist))

		reqBody := request.CreateAppointmentRequest{
			CustomerID: s.customerID,
			StaffID:    s.staffID,
			Date:       bookingDate,
			StartTime:  "10:00",
			ServiceIDs: []uuid.UUID{s.haircutID},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments", reqBody, stylistToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestReschedule() {
	s.Run("reschedule keeps the history", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		reqBody := request.RescheduleAppointmentRequest{
			Date:      weekTwo,
			StartTime: "14:00",
			Reason:    "customer request",
		}
		url := fmt.Sprintf("/api/appointments/%s/reschedule", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var moved resdto.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &moved)
		require.Equal(t, weekTwo, moved.Date)
		require.Equal(t, "14:00", moved.StartTime)
		require.Equal(t, "15:00", moved.EndTime)
		require.Equal(t, "scheduled", moved.Status)
		require.Len(t, moved.RescheduleHistory, 1)
		require.Equal(t, bookingDate, moved.RescheduleHistory[0].OriginalDate)
		require.Equal(t, "10:00", moved.RescheduleHistory[0].OriginalTime)
		require.Equal(t, "customer request", moved.RescheduleHistory[0].Reason)

		// The old slot is free again.
		require.Contains(t, s.slotTimes(bookingDate, 60), "10:00")
	})

	s.Run("reschedule onto a booked slot conflicts", func() {
		t := s.T()

		blocker := s.bookAppointment(bookingDate, "14:00")
		created := s.bookAppointment(bookingDate, "10:00")

		reqBody := request.RescheduleAppointmentRequest{Date: bookingDate, StartTime: "14:30"}
		url := fmt.Sprintf("/api/appointments/%s/reschedule", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, s.receptionistToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var res struct {
			Conflicts []resdto.ConflictDetail `json:"conflicts"`
		}
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Len(t, res.Conflicts, 1)
		require.Equal(t, blocker.ID, res.Conflicts[0].ID)
	})

	s.Run("unknown appointment", func() {
		t := s.T()

		reqBody := request.RescheduleAppointmentRequest{Date: bookingDate, StartTime: "14:00"}
		url := fmt.Sprintf("/api/appointments/%s/reschedule", uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, s.receptionistToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestStatusLifecycle() {
	applyAction := func(id uuid.UUID, action string) *nethttptest.ResponseRecorder {
		url := fmt.Sprintf("/api/appointments/%s/status", id)
		return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url,
			request.UpdateAppointmentStatusRequest{Action: action}, s.receptionistToken)
	}

	s.Run("scheduled through completed", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")
		var res resdto.AppointmentResponse

		w := applyAction(created.ID, "confirm")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "confirmed", res.Status)

		w = applyAction(created.ID, "check-in")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "in-progress", res.Status)
		require.NotNil(t, res.ActualStartTime)

		w = applyAction(created.ID, "complete")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "completed", res.Status)
		require.NotNil(t, res.ActualEndTime)
	})

	s.Run("no-show frees the slot", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		w := applyAction(created.ID, "confirm")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = applyAction(created.ID, "no-show")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.Contains(t, s.slotTimes(bookingDate, 60), "10:00")
	})

	s.Run("complete requires an in-progress appointment", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		w := applyAction(created.ID, "complete")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("unknown action fails binding", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		url := fmt.Sprintf("/api/appointments/%s/status", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			map[string]string{"action": "reopen"}, s.receptionistToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	// A writer that loaded the appointment before another transition
	// committed must not overwrite the newer state.
	s.Run("stale transition cannot override a newer one", func() {
		t := s.T()
		ctx := context.Background()

		created := s.bookAppointment(bookingDate, "10:00")

		repo := repository.NewAppointmentRepository(s.DB)
		stale, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NoError(t, stale.Confirm(time.Now().UTC()))

		cancelURL := fmt.Sprintf("/api/appointments/%s/cancel", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, s.receptionistToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		_, err = shared.RunInTx(ctx, s.DB, func(tx pgx.Tx) (struct{}, error) {
			return struct{}{}, repo.Update(ctx, tx, stale, appointment.StatusScheduled)
		})
		require.True(t, infra.IsKind(err, infra.KindConflict), "expected conflict, got: %v", err)

		getURL := fmt.Sprintf("/api/appointments/%s", created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, getURL, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code)

		var res resdto.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "cancelled", res.Status)
	})
}

func (s *bookingSuite) TestCancel() {
	s.Run("cancel inside the window", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		url := fmt.Sprintf("/api/appointments/%s/cancel", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			request.CancelAppointmentRequest{Reason: "double booked elsewhere"}, s.receptionistToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		getURL := fmt.Sprintf("/api/appointments/%s", created.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, getURL, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code)

		var res resdto.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &res)
		require.Equal(t, "cancelled", res.Status)
		require.Equal(t, "double booked elsewhere", res.CancelReason)

		require.Contains(t, s.slotTimes(bookingDate, 60), "10:00")
	})

	s.Run("cancel after the window has passed", func() {
		t := s.T()

		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		created := s.bookAppointment(yesterday, "10:00")

		url := fmt.Sprintf("/api/appointments/%s/cancel", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("cancelled appointments stay cancelled", func() {
		t := s.T()

		created := s.bookAppointment(bookingDate, "10:00")

		url := fmt.Sprintf("/api/appointments/%s/cancel", created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestRecurring() {
	s.Run("conflicting and day-off occurrences are skipped", func() {
		t := s.T()

		blocker := s.bookAppointment(bookingDate, "10:00")
		dbtest.SetDaySchedule(t, s.DB, s.staffID, mustDate(t, weekTwo), true, 540, 1080, 60, 1)

		reqBody := request.CreateRecurringRequest{
			CreateAppointmentRequest: request.CreateAppointmentRequest{
				CustomerID: s.customerID,
				StaffID:    s.staffID,
				Date:       bookingDate,
				StartTime:  "10:00",
				ServiceIDs: []uuid.UUID{s.haircutID},
			},
			Occurrences: 3,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments/recurring", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.RecurringResponse
		httptest.DecodeResponseBody(t, w.Body, &res)

		require.Len(t, res.Created, 1)
		require.Equal(t, weekThree, res.Created[0].Date)

		require.Len(t, res.Skipped, 2)
		require.Equal(t, bookingDate, res.Skipped[0].Date)
		require.Len(t, res.Skipped[0].Conflicts, 1)
		require.Equal(t, blocker.ID, res.Skipped[0].Conflicts[0].ID)
		require.Equal(t, weekTwo, res.Skipped[1].Date)
		require.Empty(t, res.Skipped[1].Conflicts)
	})

	s.Run("occurrence cap", func() {
		t := s.T()

		reqBody := request.CreateRecurringRequest{
			CreateAppointmentRequest: request.CreateAppointmentRequest{
				CustomerID: s.customerID,
				StaffID:    s.staffID,
				Date:       bookingDate,
				StartTime:  "10:00",
				ServiceIDs: []uuid.UUID{s.haircutID},
			},
			Occurrences: 53,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/appointments/recurring", reqBody, s.receptionistToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestCustomerHistory() {
	s.Run("pages through the history newest first", func() {
		t := s.T()

		first := s.bookAppointment(bookingDate, "09:00")
		second := s.bookAppointment(weekTwo, "10:00")
		third := s.bookAppointment(weekThree, "11:00")

		url := fmt.Sprintf("/api/customers/%s/appointments?limit=2", s.customerID)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page resdto.CustomerAppointmentsResponse
		httptest.DecodeResponseBody(t, w.Body, &page)
		require.Len(t, page.Appointments, 2)
		require.Equal(t, third.ID, page.Appointments[0].ID)
		require.Equal(t, second.ID, page.Appointments[1].ID)
		require.NotEmpty(t, page.NextCursor)

		url = fmt.Sprintf("/api/customers/%s/appointments?limit=2&after=%s", s.customerID, page.NextCursor)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		httptest.DecodeResponseBody(t, w.Body, &page)
		require.Len(t, page.Appointments, 1)
		require.Equal(t, first.ID, page.Appointments[0].ID)
		require.Empty(t, page.NextCursor)
	})

	s.Run("garbage cursor", func() {
		t := s.T()

		url := fmt.Sprintf("/api/customers/%s/appointments?after=not-a-cursor", s.customerID)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("staff day listing is ordered by start time", func() {
		t := s.T()

		late := s.bookAppointment(bookingDate, "15:00")
		early := s.bookAppointment(bookingDate, "09:00")

		url := fmt.Sprintf("/api/appointments?staff_id=%s&date=%s", s.staffID, bookingDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.receptionistToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []*resdto.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
		require.Equal(t, early.ID, list[0].ID)
		require.Equal(t, late.ID, list[1].ID)
	})
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := request.ParseDate(s)
	require.NoError(t, err)
	return d
}
