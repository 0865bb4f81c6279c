package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicadev/clinic-api/internal/httperr"
)

// Aliases maps a canonical request key to the legacy keys accepted in its
// place. The canonical key wins when both are sent; among aliases the
// first listed wins.
type Aliases map[string][]string

var (
	AppointmentAliases = Aliases{
		"patient_name":        {"paciente_nome", "nome_paciente", "nome"},
		"patient_national_id": {"paciente_cpf", "cpf"},
		"specialty_name":      {"especialidade", "nome_especialidade", "especialidade_nome"},
		"scheduled_at":        {"data_hora", "data", "horario"},
		"patient_id":          {"paciente_id"},
		"specialty_id":        {"especialidade_id"},
	}

	PatientAliases = Aliases{
		"name":               {"nome"},
		"birth_date":         {"data_nascimento"},
		"national_id":        {"cpf"},
		"health_card_number": {"cartao_sus"},
		"address":            {"endereco"},
	}

	SpecialtyAliases = Aliases{
		"specialty_name": {"nome_especialidade", "nome"},
	}

	UserAliases = Aliases{
		"username": {"usuario"},
		"password": {"senha"},
		"role":     {"cargo"},
	}
)

// idKeys are the body keys holding record ids. Their values must be
// positive integers, as numbers or numeric strings, or null.
var idKeys = []string{"patient_id", "specialty_id", "created_by_id"}

// Canonicalize rewrites legacy keys of body to their canonical names and
// drops the leftovers.
func (a Aliases) Canonicalize(body map[string]json.RawMessage) {
	for canonical, legacy := range a {
		_, found := body[canonical]
		for _, key := range legacy {
			raw, ok := body[key]
			if !ok {
				continue
			}
			if !found {
				body[canonical] = raw
				found = true
			}
			delete(body, key)
		}
	}
}

// BindJSON decodes the request body into dst after resolving aliases.
// Decoding problems are reported as client errors.
func BindJSON(c *gin.Context, aliases Aliases, dst any) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return httperr.InvalidRequest(err)
	}
	return Decode(raw, aliases, dst)
}

func Decode(raw []byte, aliases Aliases, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return httperr.InvalidRequest(errors.New("empty body"))
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return httperr.InvalidRequest(errors.New("body must be a JSON object"))
	}
	if body == nil {
		return httperr.InvalidRequest(errors.New("body must be a JSON object"))
	}
	aliases.Canonicalize(body)

	for _, key := range idKeys {
		v, ok := body[key]
		if !ok {
			continue
		}
		if _, err := parseID(v); err != nil {
			return httperr.InvalidFormat(key, string(v))
		}
	}

	canonical, err := json.Marshal(body)
	if err != nil {
		return httperr.InvalidRequest(err)
	}
	if err := json.Unmarshal(canonical, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return httperr.InvalidFormat(typeErr.Field, typeErr.Value)
		}
		return httperr.InvalidRequest(err)
	}
	return nil
}

// ID accepts a JSON number or a numeric string, as older clients sent ids
// from form fields.
type ID uint

func (id *ID) UnmarshalJSON(b []byte) error {
	v, err := parseID(b)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// parseID accepts null as the zero id.
func parseID(b []byte) (ID, error) {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return 0, nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id %s", b)
	}
	return ID(v), nil
}

// UintPtr returns the id as *uint, nil for zero.
func (id ID) UintPtr() *uint {
	if id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}
