package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/handlers"
	"github.com/clinicadev/clinic-api/internal/metrics"
	"github.com/clinicadev/clinic-api/internal/middleware"
	"github.com/clinicadev/clinic-api/internal/security"
	"github.com/clinicadev/clinic-api/internal/timezone"
)

// Deps is everything the HTTP layer needs. The repositories may come from
// Postgres or from the in-memory store.
type Deps struct {
	Log         zerolog.Logger
	CORSOrigins []string

	Patients     patient.Repository
	Specialties  specialty.Repository
	Users        user.Repository
	Appointments appointment.Repository

	Audit     audit.Recorder
	AuditLogs audit.Reader

	Tokens  *security.TokenIssuer
	Revoker security.Revoker
	Clock   *timezone.Clock

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORSMiddleware(d.CORSOrigins))

	// ======================================================
	// HANDLERS
	// ======================================================
	loc := d.Clock.Location()

	authHandler := handlers.NewAuthHandler(d.Users, d.Tokens, d.Revoker, loc, d.Audit)
	meHandler := handlers.NewMeHandler(d.Users, loc)
	userHandler := handlers.NewUserHandler(d.Users, loc, d.Audit)
	patientHandler := handlers.NewPatientHandler(d.Patients, d.Audit)
	specialtyHandler := handlers.NewSpecialtyHandler(d.Specialties, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(d.Appointments, d.Clock, d.Audit)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens, d.Revoker, d.Users))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			crud(secured, "/users", userHandler)
			crud(secured, "/patients", patientHandler)
			crud(secured, "/specialties", specialtyHandler)
			crud(secured, "/appointments", appointmentHandler)

			if d.AuditLogs != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, loc)
				secured.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

type resource interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// crud mounts the five record routes. PUT and PATCH are both partial.
func crud(g *gin.RouterGroup, path string, h resource) {
	g.GET(path, h.List)
	g.POST(path, h.Create)
	g.GET(path+"/:id", h.Get)
	g.PUT(path+"/:id", h.Update)
	g.PATCH(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
