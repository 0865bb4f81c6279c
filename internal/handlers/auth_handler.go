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
	"github.com/clinicadev/clinic-api/internal/security"
	useruc "github.com/clinicadev/clinic-api/internal/usecase/user"
)

type AuthHandler struct {
	loc *time.Location

	register *useruc.Register
	login    *useruc.Login
	logout   *useruc.Logout
}

func NewAuthHandler(
	repo user.Repository,
	tokens *security.TokenIssuer,
	revoker security.Revoker,
	loc *time.Location,
	rec audit.Recorder,
) *AuthHandler {
	return &AuthHandler{
		loc:      loc,
		register: useruc.NewRegister(repo, security.HashPassword, rec),
		login:    useruc.NewLogin(repo, tokens, rec),
		logout:   useruc.NewLogout(revoker, rec),
	}
}

// --------- Handlers ---------

// Register creates a plain user account. Any role in the body is ignored.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.UserRequest
	if err := dto.BindJSON(c, dto.UserAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.register.Execute(c.Request.Context(), req.Create())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.NewUserView(u, h.loc))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindJSON(c, dto.UserAliases, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewLoginView(res.Token, res.User))
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.ExpiresAt == nil {
		httperr.Respond(c, httperr.Unauthenticated("invalid_token"))
		return
	}

	err := h.logout.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c),
		claims.ID,
		claims.ExpiresAt.Time,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
