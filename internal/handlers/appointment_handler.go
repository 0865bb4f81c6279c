package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/dto"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/timezone"
	appointmentuc "github.com/clinicadev/clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	loc *time.Location

	create *appointmentuc.CreateAppointment
	update *appointmentuc.UpdateAppointment
	delete *appointmentuc.DeleteAppointment
	get    *appointmentuc.GetAppointment
	list   *appointmentuc.ListAppointments
}

func NewAppointmentHandler(
	repo appointment.Repository,
	clock *timezone.Clock,
	rec audit.Recorder,
) *AppointmentHandler {
	return &AppointmentHandler{
		loc:    clock.Location(),
		create: appointmentuc.NewCreateAppointment(repo, clock, rec),
		update: appointmentuc.NewUpdateAppointment(repo, clock, rec),
		delete: appointmentuc.NewDeleteAppointment(repo, rec),
		get:    appointmentuc.NewGetAppointment(repo),
		list:   appointmentuc.NewListAppointments(repo),
	}
}

func (h *AppointmentHandler) view(ap *models.Appointment) dto.AppointmentView {
	return dto.NewAppointmentView(ap, h.loc)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filter, err := dto.AppointmentFilter(c, h.loc)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	apps, err := h.list.Execute(c.Request.Context(), middleware.PrincipalFrom(c), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Map(apps, h.view))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := dto.BindJSON(c, dto.AppointmentAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req.Create())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, h.view(ap))
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, h.view(ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.AppointmentRequest
	if err := dto.BindJSON(c, dto.AppointmentAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Update())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, h.view(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
