package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/dto"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	useruc "github.com/clinicadev/clinic-api/internal/usecase/user"
)

type MeHandler struct {
	loc *time.Location
	get *useruc.GetUser
}

func NewMeHandler(repo user.Repository, loc *time.Location) *MeHandler {
	return &MeHandler{loc: loc, get: useruc.NewGetUser(repo)}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)
	if actor == nil {
		httperr.Respond(c, httperr.Unauthenticated("user_not_in_context"))
		return
	}

	u, err := h.get.Execute(c.Request.Context(), actor, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewUserView(u, h.loc))
}
