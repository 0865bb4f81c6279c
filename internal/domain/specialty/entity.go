package specialty

import (
	"strings"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/optional"
)

// CreateInput takes the name under its own key or the specialty_name
// alias; Name wins when both are given.
type CreateInput struct {
	Name          string
	SpecialtyName string
}

type UpdateInput struct {
	Name          optional.Value[string]
	SpecialtyName optional.Value[string]
}

func (in CreateInput) name() string {
	if n := strings.TrimSpace(in.Name); n != "" {
		return n
	}
	return strings.TrimSpace(in.SpecialtyName)
}

func New(in CreateInput) (*models.Specialty, error) {
	name := in.name()
	if name == "" {
		return nil, httperr.MissingField("name")
	}
	return &models.Specialty{Name: name}, nil
}

// ApplyUpdate renames s when a non-empty name arrives under either key.
func ApplyUpdate(s *models.Specialty, in UpdateInput) {
	for _, v := range []optional.Value[string]{in.Name, in.SpecialtyName} {
		if !v.Present() {
			continue
		}
		if name := strings.TrimSpace(v.V); name != "" {
			s.Name = name
			return
		}
	}
}
