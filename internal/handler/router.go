package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	availabilityHandler *api.AvailabilityHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, appointmentHandler, availabilityHandler, scheduleHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	availabilityHandler *api.AvailabilityHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		// Booking mutations need front-desk rights; every staff member
		// may read the calendar.
		canBook := authMiddleware.RequireRoleAtLeast(user.RoleReceptionist)
		canManage := authMiddleware.RequireRoleAtLeast(user.RoleManager)

		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.Create, Mw: []gin.HandlerFunc{canBook}},
				{Method: http.MethodPost, Path: "/recurring", Handler: appointmentHandler.CreateRecurring, Mw: []gin.HandlerFunc{canBook}},
				{Method: http.MethodGet, Path: "", Handler: appointmentHandler.ListByStaffDate},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.Get},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: appointmentHandler.Reschedule, Mw: []gin.HandlerFunc{canBook}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: appointmentHandler.Cancel, Mw: []gin.HandlerFunc{canBook}},
				{Method: http.MethodPost, Path: "/:id/status", Handler: appointmentHandler.UpdateStatus, Mw: []gin.HandlerFunc{canBook}},
			})
		}

		staff := apiGroup.Group("/staff")
		staff.Use(authMiddleware.RequireAuth())
		{
			addRoutes(staff, []route{
				{Method: http.MethodGet, Path: "/:id/slots", Handler: availabilityHandler.GetSlots},
				{Method: http.MethodGet, Path: "/:id/schedule", Handler: availabilityHandler.GetDaySchedule},
				{Method: http.MethodPut, Path: "/:id/schedule/:date", Handler: scheduleHandler.UpsertDay, Mw: []gin.HandlerFunc{canManage}},
			})
		}

		customers := apiGroup.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "/:id/appointments", Handler: appointmentHandler.ListByCustomer},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
