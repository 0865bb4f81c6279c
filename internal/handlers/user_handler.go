package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/dto"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/security"
	useruc "github.com/clinicadev/clinic-api/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	loc *time.Location

	create *useruc.CreateUser
	update *useruc.UpdateUser
	delete *useruc.DeleteUser
	get    *useruc.GetUser
	list   *useruc.ListUsers
}

func NewUserHandler(repo user.Repository, loc *time.Location, rec audit.Recorder) *UserHandler {
	return &UserHandler{
		loc:    loc,
		create: useruc.NewCreateUser(repo, security.HashPassword, rec),
		update: useruc.NewUpdateUser(repo, security.HashPassword, rec),
		delete: useruc.NewDeleteUser(repo, rec),
		get:    useruc.NewGetUser(repo),
		list:   useruc.NewListUsers(repo),
	}
}

func (h *UserHandler) view(u *models.User) dto.UserView {
	return dto.NewUserView(u, h.loc)
}

// ======================================================
// ROUTES
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Map(users, h.view))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserRequest
	if err := dto.BindJSON(c, dto.UserAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.create.Execute(c.Request.Context(), middleware.PrincipalFrom(c), req.Create())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, h.view(u))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, h.view(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := dto.PathID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.UserRequest
	if err := dto.BindJSON(c, dto.UserAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Update())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, h.view(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
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
