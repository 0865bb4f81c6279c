package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/dto"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	specialtyuc "github.com/clinicadev/clinic-api/internal/usecase/specialty"
)

type SpecialtyHandler struct {
	create *specialtyuc.CreateSpecialty
	update *specialtyuc.UpdateSpecialty
	delete *specialtyuc.DeleteSpecialty
	get    *specialtyuc.GetSpecialty
	list   *specialtyuc.ListSpecialties
}

func NewSpecialtyHandler(repo specialty.Repository, rec audit.Recorder) *SpecialtyHandler {
	return &SpecialtyHandler{
		create: specialtyuc.NewCreateSpecialty(repo, rec),
		update: specialtyuc.NewUpdateSpecialty(repo, rec),
		delete: specialtyuc.NewDeleteSpecialty(repo, rec),
		get:    specialtyuc.NewGetSpecialty(repo),
		list:   specialtyuc.NewListSpecialties(repo),
	}
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Map(list, dto.NewSpecialtyView))
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req dto.SpecialtyRequest
	if err := dto.BindJSON(c, dto.SpecialtyAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.create.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req.Create())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewSpecialtyView(s))
}

func (h *SpecialtyHandler) Get(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewSpecialtyView(s))
}

func (h *SpecialtyHandler) Update(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.SpecialtyRequest
	if err := dto.BindJSON(c, dto.SpecialtyAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Update())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewSpecialtyView(s))
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
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
