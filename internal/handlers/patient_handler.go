package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/dto"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	patientuc "github.com/clinicadev/clinic-api/internal/usecase/patient"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	create *patientuc.CreatePatient
	update *patientuc.UpdatePatient
	delete *patientuc.DeletePatient
	get    *patientuc.GetPatient
	list   *patientuc.ListPatients
}

func NewPatientHandler(repo patient.Repository, rec audit.Recorder) *PatientHandler {
	return &PatientHandler{
		create: patientuc.NewCreatePatient(repo, rec),
		update: patientuc.NewUpdatePatient(repo, rec),
		delete: patientuc.NewDeletePatient(repo, rec),
		get:    patientuc.NewGetPatient(repo),
		list:   patientuc.NewListPatients(repo),
	}
}

// ======================================================
// ROUTES
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.list.Execute(c.Request.Context(), middleware.PrincipalFrom(c), dto.PatientFilter(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Map(patients, dto.NewPatientView))
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req dto.PatientRequest
	if err := dto.BindJSON(c, dto.PatientAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req.Create())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewPatientView(p))
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewPatientView(p))
}

// Update serves PUT and PATCH; both are partial.
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.PatientRequest
	if err := dto.BindJSON(c, dto.PatientAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Update())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewPatientView(p))
}

func (h *PatientHandler) Delete(c *gin.Context) {
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
