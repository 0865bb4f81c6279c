package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/timeparse"
)

// AppointmentFilter reads the list filters from the query string. Legacy
// parameter names are accepted like in request bodies.
func AppointmentFilter(c *gin.Context, loc *time.Location) (appointment.ListFilter, error) {
	var (
		f   appointment.ListFilter
		err error
	)

	if f.PatientID, err = queryID(c, "patient_id", "paciente_id"); err != nil {
		return f, err
	}
	if f.SpecialtyID, err = queryID(c, "specialty_id", "especialidade_id"); err != nil {
		return f, err
	}
	f.PatientNationalID = query(c, "patient_national_id", "cpf")
	f.Specialty = query(c, "specialty", "especialidade")

	if f.Start, err = timeparse.ParseDateTime("start", query(c, "start", "inicio"), loc); err != nil {
		return f, err
	}
	if f.End, err = timeparse.ParseDateTime("end", query(c, "end", "fim"), loc); err != nil {
		return f, err
	}
	return f, nil
}

func PatientFilter(c *gin.Context) patient.ListFilter {
	return patient.ListFilter{Query: query(c, "q", "busca")}
}

// query returns the first non-empty value among keys.
func query(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}

func queryID(c *gin.Context, keys ...string) (*uint, error) {
	raw := query(c, keys...)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, httperr.InvalidFormat(keys[0], raw)
	}
	id := uint(v)
	return &id, nil
}

// PathID parses the :id route parameter.
func PathID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, httperr.InvalidFormat("id", raw)
	}
	return uint(v), nil
}
