package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vtc-portal/internal/application"
	"vtc-portal/internal/booking"
	"vtc-portal/internal/buildinfo"
	"vtc-portal/internal/truckershub"
)

type applicationService interface {
	Submit(ctx context.Context, input application.SubmitInput) (*application.SubmitResult, error)
	GetStatus(ctx context.Context, id string) application.StatusResult
	ListAll(ctx context.Context) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id string, newStatus application.Status, role string) (*application.Result, error)
}

type bookingService interface {
	ListEvents(ctx context.Context) ([]booking.Event, error)
	ListEventsWithBookings(ctx context.Context) ([]booking.Event, error)
	CreateBooking(ctx context.Context, eventID, areaID string, input booking.BookingInput) (*booking.CreateResult, error)
	UpdateBookingStatus(ctx context.Context, eventID, areaID, bookingID string, newStatus booking.Status) (*booking.Result, error)
	DeleteBooking(ctx context.Context, eventID, areaID, bookingID string) (*booking.Result, error)
}

type truckersHub interface {
	Relay(ctx context.Context, method, endpoint string, query url.Values, body []byte) (*truckershub.RelayResponse, error)
	Dashboard(ctx context.Context) *truckershub.Dashboard
	Jobs(ctx context.Context, query url.Values) []truckershub.Job
	Job(ctx context.Context, id string) *truckershub.Job
	Members(ctx context.Context) []truckershub.Driver
	Skills(ctx context.Context) []truckershub.Skill
	DriverSkills(ctx context.Context, steamID string) []truckershub.DriverSkill
	UpdateDriverSkills(ctx context.Context, steamID string, levels map[string]int) error
}

type limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Routers holds what the HTTP API serves. A nil SubmitLimiter allows every
// submission and an empty AdminToken leaves /v1/admin open. Forwarding headers
// are honoured only from TrustedProxies, so by default the client IP is the peer.
type Routers struct {
	Applications   applicationService
	Bookings       bookingService
	TruckersHub    truckersHub
	SubmitLimiter  limiter
	AdminToken     string
	TrustedProxies []string
	Logger         zerolog.Logger
}

func NewRouters(r *Routers) *gin.Engine {
	app := gin.New()
	log := r.Logger.With().Str("component", "api").Logger()

	if err := app.SetTrustedProxies(r.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("trusted_proxies", r.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = app.SetTrustedProxies(nil)
	}

	app.Use(gin.Recovery())
	app.Use(LoggingMiddleware(log))
	app.Use(cors.Default())

	h := &handlers{
		applications: r.Applications,
		bookings:     r.Bookings,
		hub:          r.TruckersHub,
		log:          log,
	}

	app.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, buildinfo.Current())
	})

	apiGroup := app.Group("/v1")
	apiGroup.POST("/applications", RateLimitMiddleware(r.SubmitLimiter), h.SubmitApplication)
	apiGroup.GET("/applications/:id/status", h.GetApplicationStatus)
	apiGroup.GET("/events", h.ListEvents)
	apiGroup.POST("/events/:eventId/areas/:areaId/bookings", h.CreateBooking)
	apiGroup.GET("/truckershub", h.RelayTruckersHub)
	apiGroup.POST("/truckershub", h.RelayTruckersHub)

	hub := apiGroup.Group("/driver-hub")
	hub.GET("/dashboard", h.Dashboard)
	hub.GET("/jobs", h.ListJobs)
	hub.GET("/jobs/:id", h.GetJob)
	hub.GET("/members", h.ListMembers)
	hub.GET("/skills", h.ListSkills)
	hub.GET("/skills/:steamId", h.GetDriverSkills)
	hub.POST("/skills/:steamId", h.UpdateDriverSkills)

	admin := apiGroup.Group("/admin", AdminAuthMiddleware(r.AdminToken))
	admin.GET("/applications", h.ListApplications)
	admin.PATCH("/applications/:id/status", h.UpdateApplicationStatus)
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/events/:eventId/areas/:areaId/bookings/:bookingId/status", h.UpdateBookingStatus)
	admin.DELETE("/events/:eventId/areas/:areaId/bookings/:bookingId", h.DeleteBooking)

	return app
}

type handlers struct {
	applications applicationService
	bookings     bookingService
	hub          truckersHub
	log          zerolog.Logger
}
