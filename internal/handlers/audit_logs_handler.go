package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/domain/access"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/httpresp"
	"github.com/clinicadev/clinic-api/internal/middleware"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/timeparse"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader audit.Reader
	loc    *time.Location
}

func NewAuditLogsHandler(reader audit.Reader, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, loc: loc}
}

type auditLogView struct {
	models.AuditLog
	CreatedAt *string `json:"created_at"`
}

// List is restricted to admins. from and to are calendar dates; to
// includes the whole day.
func (h *AuditLogsHandler) List(c *gin.Context) {
	if err := access.RequireMutate(middleware.PrincipalFrom(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))
	filter = filter.Normalize()

	if raw := c.Query("from"); raw != "" {
		from, err := timeparse.ParseDate("from", raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, h.loc)
		filter.From = &start
	}

	if raw := c.Query("to"); raw != "" {
		to, err := timeparse.ParseDate("to", raw)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, h.loc).
			Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	// --------------------------------------------------
	// List
	// --------------------------------------------------

	logs, total, err := h.reader.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, httperr.StorageFailure(err))
		return
	}

	views := make([]auditLogView, 0, len(logs))
	for i := range logs {
		views = append(views, auditLogView{
			AuditLog:  logs[i],
			CreatedAt: timeparse.DisplayDateTime(&logs[i].CreatedAt, h.loc),
		})
	}

	httpresp.OK(c, gin.H{
		"page":  filter.Page,
		"limit": filter.Limit,
		"total": total,
		"logs":  views,
	})
}
