package api

import (
	"errors"
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
	}
}

// @Summary Upsert day schedule
// @Description Create or replace the working hours record of a staff member for a date
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param request body reqdto.UpsertDayScheduleRequest true "Schedule"
// @Success 200 {object} resdto.DayScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /staff/{id}/schedule/{date} [put]
func (h *ScheduleHandler) UpsertDay(c *gin.Context) {
	staffID, ok := parseIDParam(c)
	if !ok {
		return
	}

	date, err := reqdto.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	var req reqdto.UpsertDayScheduleRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.scheduleCommands.UpsertDay(c.Request.Context(), staffID, date, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrStaffNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Staff not found",
			})
		case errors.Is(err, commands.ErrInvalidScheduleInput):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid schedule: check working hours, breaks, slot duration and capacity",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayScheduleView(view))
}
