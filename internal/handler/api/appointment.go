package api

import (
	"errors"
	"net/http"
	"strconv"

	"salon-scheduler/internal/domain/appointment"
	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentCommands commands.AppointmentCommands
	appointmentQueries  queries.AppointmentQueries
}

func NewAppointmentHandler(
	appointmentCommands commands.AppointmentCommands,
	appointmentQueries queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentCommands: appointmentCommands,
		appointmentQueries:  appointmentQueries,
	}
}

// @Summary Book an appointment
// @Description Book an appointment for a customer with one or more services
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Appointment request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.appointmentCommands.Create(c.Request.Context(), req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAppointmentView(view))
}

// @Summary Book a recurring appointment series
// @Description Book weekly repeats of an appointment; conflicting occurrences are skipped and reported
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRecurringRequest true "Recurring appointment request"
// @Success 201 {object} resdto.RecurringResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/recurring [post]
func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	var req reqdto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.appointmentCommands.CreateRecurring(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrTooManyOccurrences) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Occurrence count exceeds the configured maximum",
			})
			return
		}
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRecurringResult(result))
}

// @Summary Get appointment
// @Description Get appointment by ID
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.appointmentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary List staff appointments for a date
// @Description List all appointments of one staff member on a calendar date
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param staff_id query string true "Staff ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) ListByStaffDate(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid staff ID format",
		})
		return
	}
	date, err := reqdto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	views, err := h.appointmentQueries.ListByStaffDate(c.Request.Context(), staffID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, toAppointmentResponses(views))
}

// @Summary List customer appointments
// @Description List all appointments of one customer, newest first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.CustomerAppointmentsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /customers/{id}/appointments [get]
func (h *AppointmentHandler) ListByCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid limit",
		})
		return
	}

	views, next, err := h.appointmentQueries.ListByCustomer(c.Request.Context(), id, limit, c.Query("after"))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CustomerAppointmentsResponse{
		Appointments: toAppointmentResponses(views),
		NextCursor:   next,
	})
}

// @Summary Reschedule appointment
// @Description Move an appointment to a new date and time, keeping its history
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleAppointmentRequest true "Reschedule request"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.appointmentCommands.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Cancel appointment
// @Description Cancel an appointment, recording the reason
// @Tags appointments
// @Accept json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CancelAppointmentRequest false "Cancellation reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	if err := h.appointmentCommands.Cancel(c.Request.Context(), id, req.Reason); err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, appointment.ErrTerminalStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Appointment is already completed, cancelled or marked no-show",
			})
		case errors.Is(err, appointment.ErrCancelWindowPassed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Cancellation window has passed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update appointment status
// @Description Apply a status action: confirm, check-in, complete or no-show
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentStatusRequest true "Status action"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id}/status [post]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.appointmentCommands.UpdateStatus(c.Request.Context(), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, commands.ErrUnknownStatusAction):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown status action",
			})
		case errors.Is(err, appointment.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Status transition not allowed from the current status",
			})
		case errors.Is(err, appointment.ErrTerminalStatus):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Appointment is already in a terminal status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// writeBookingError maps booking failures shared by create, recurring
// and reschedule. Conflicts return the blocking appointments so the
// client can offer alternatives.
func (h *AppointmentHandler) writeBookingError(c *gin.Context, err error) {
	var conflictErr *commands.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Requested time conflicts with existing appointments",
			"conflicts": resdto.FromConflicts(conflictErr.Conflicts),
		})
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
	case errors.Is(err, commands.ErrStaffNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Staff not found",
		})
	case errors.Is(err, commands.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Customer not found",
		})
	case errors.Is(err, commands.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service not found",
		})
	case errors.Is(err, commands.ErrStaffUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Staff is off on the requested date",
		})
	case errors.Is(err, commands.ErrOutsideWorkingHours):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Requested time is outside working hours",
		})
	case errors.Is(err, appointment.ErrTerminalStatus):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Appointment is already in a terminal status",
		})
	case errors.Is(err, commands.ErrInvalidBookingInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking input",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func toAppointmentResponses(views []*queries.AppointmentView) []*resdto.AppointmentResponse {
	out := make([]*resdto.AppointmentResponse, len(views))
	for i, view := range views {
		out[i] = resdto.FromAppointmentView(view)
	}
	return out
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
