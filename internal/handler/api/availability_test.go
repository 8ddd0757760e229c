//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"salon-scheduler/internal/handler/api"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/tests/common/httptest"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/staff/:id/slots", handler.GetSlots)
	s.router.GET("/staff/:id/schedule", handler.GetDaySchedule)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetSlots() {
	staffID := uuid.New()
	date := mustParseDate(s.T(), "2025-07-14")

	s.Run("success: returns the slot grid", func() {
		slots := []queries.TimeSlotView{
			{Time: "09:00", Available: true},
			{Time: "11:00", Available: true},
		}
		s.mockQueries.EXPECT().GetAvailableSlots(gomock.Any(), staffID, date, 60).
			Return(slots, nil).Times(1)

		url := fmt.Sprintf("/staff/%s/slots?date=2025-07-14&duration=60", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailableSlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(staffID, response.StaffID)
		s.Equal("2025-07-14", response.Date)
		s.Equal(60, response.DurationMin)
		s.Require().Len(response.Slots, 2)
		s.Equal("09:00", response.Slots[0].Time)
	})

	s.Run("error: 400 on a bad date", func() {
		url := fmt.Sprintf("/staff/%s/slots?date=tomorrow&duration=60", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date format")
	})

	s.Run("error: 400 on a non-numeric duration", func() {
		url := fmt.Sprintf("/staff/%s/slots?date=2025-07-14&duration=long", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid duration")
	})

	s.Run("error: 400 on a non-positive duration", func() {
		s.mockQueries.EXPECT().GetAvailableSlots(gomock.Any(), staffID, date, -30).
			Return(nil, queries.ErrInvalidDuration).Times(1)

		url := fmt.Sprintf("/staff/%s/slots?date=2025-07-14&duration=-30", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Duration must be positive")
	})

	s.Run("error: 404 on unknown staff", func() {
		s.mockQueries.EXPECT().GetAvailableSlots(gomock.Any(), staffID, date, 60).
			Return(nil, queries.ErrStaffNotFound).Times(1)

		url := fmt.Sprintf("/staff/%s/slots?date=2025-07-14&duration=60", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Staff not found")
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetDaySchedule() {
	staffID := uuid.New()
	date := mustParseDate(s.T(), "2025-07-14")

	s.Run("success: returns the day schedule", func() {
		view := &queries.DayScheduleView{
			StaffID:      staffID,
			Date:         date,
			WorkStart:    "09:00",
			WorkEnd:      "18:00",
			Breaks:       []queries.BreakView{{Start: "13:00", End: "14:00"}},
			SlotDuration: 60,
			MaxBookings:  1,
			IsDefault:    false,
		}
		s.mockQueries.EXPECT().GetDaySchedule(gomock.Any(), staffID, date).Return(view, nil).Times(1)

		url := fmt.Sprintf("/staff/%s/schedule?date=2025-07-14", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.DayScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2025-07-14", response.Date)
		s.Equal("09:00", response.WorkStart)
		s.Require().Len(response.Breaks, 1)
		s.False(response.IsDefault)
	})

	s.Run("success: default fallback is flagged", func() {
		view := &queries.DayScheduleView{
			StaffID:      staffID,
			Date:         date,
			WorkStart:    "09:00",
			WorkEnd:      "18:00",
			SlotDuration: 60,
			MaxBookings:  1,
			IsDefault:    true,
		}
		s.mockQueries.EXPECT().GetDaySchedule(gomock.Any(), staffID, date).Return(view, nil).Times(1)

		url := fmt.Sprintf("/staff/%s/schedule?date=2025-07-14", staffID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.DayScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.IsDefault)
	})

	s.Run("error: 400 on a bad staff id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff/nope/schedule?date=2025-07-14", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}
