package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Get available slots
// @Description List bookable time slots for a staff member, date and service duration
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int true "Service duration in minutes"
// @Success 200 {object} resdto.AvailableSlotsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /staff/{id}/slots [get]
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	date, err := reqdto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid duration",
		})
		return
	}

	slots, err := h.availabilityQueries.GetAvailableSlots(c.Request.Context(), staffID, date, duration)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromTimeSlotViews(staffID, c.Query("date"), duration, slots))
}

// @Summary Get day schedule
// @Description Get the working hours, breaks and capacity of a staff member for a date
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DayScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /staff/{id}/schedule [get]
func (h *AvailabilityHandler) GetDaySchedule(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	date, err := reqdto.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.availabilityQueries.GetDaySchedule(c.Request.Context(), staffID, date)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayScheduleView(view))
}

func (h *AvailabilityHandler) writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrStaffNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Staff not found",
		})
	case errors.Is(err, queries.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Duration must be positive",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
