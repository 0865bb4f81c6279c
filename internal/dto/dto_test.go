package dto

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

func TestDecode_AppointmentAliases(t *testing.T) {
	var req AppointmentRequest
	err := Decode([]byte(`{
		"nome_paciente": "Maria",
		"cpf": "123",
		"especialidade": "Cardio",
		"data_hora": "20-10-2025 10:00",
		"paciente_id": "7",
		"especialidade_id": 3
	}`), AppointmentAliases, &req)
	require.NoError(t, err)

	in := req.Create()
	assert.Equal(t, "Maria", in.PatientName)
	assert.Equal(t, "123", in.PatientNationalID)
	assert.Equal(t, "Cardio", in.SpecialtyName)
	assert.Equal(t, "20-10-2025 10:00", in.ScheduledAt)
	assert.Equal(t, uint(7), *in.PatientID)
	assert.Equal(t, uint(3), *in.SpecialtyID)
	assert.Nil(t, in.CreatedByID)
}

func TestDecode_CanonicalKeyWins(t *testing.T) {
	var req AppointmentRequest
	require.NoError(t, Decode([]byte(`{"patient_name":"Ana","nome":"Bia","paciente_nome":"Carla"}`), AppointmentAliases, &req))
	assert.Equal(t, "Ana", req.PatientName.V)

	req = AppointmentRequest{}
	require.NoError(t, Decode([]byte(`{"nome":"Bia","paciente_nome":"Carla"}`), AppointmentAliases, &req))
	assert.Equal(t, "Carla", req.PatientName.V)
}

func TestDecode_PartialUpdate(t *testing.T) {
	var req AppointmentRequest
	require.NoError(t, Decode([]byte(`{"patient_name":"New","patient_national_id":null}`), AppointmentAliases, &req))

	up := req.Update()
	assert.True(t, up.PatientName.Present())
	assert.True(t, up.PatientNationalID.Set)
	assert.True(t, up.PatientNationalID.Null)
	assert.False(t, up.SpecialtyName.Set)
	assert.False(t, up.ScheduledAt.Set)
}

func TestDecode_SpecialtyAlias(t *testing.T) {
	var req SpecialtyRequest
	require.NoError(t, Decode([]byte(`{"nome_especialidade":"Dermato"}`), SpecialtyAliases, &req))
	assert.Equal(t, "Dermato", req.Create().SpecialtyName)
}

func TestDecode_SpecialtyLegacyNome(t *testing.T) {
	var req SpecialtyRequest
	require.NoError(t, Decode([]byte(`{"nome":"Pediatria"}`), SpecialtyAliases, &req))
	assert.Equal(t, "Pediatria", req.Create().SpecialtyName)

	req = SpecialtyRequest{}
	require.NoError(t, Decode([]byte(`{"nome":"B","nome_especialidade":"A"}`), SpecialtyAliases, &req))
	assert.Equal(t, "A", req.Create().SpecialtyName)
}

func TestDecode_PatientNationalIDIsText(t *testing.T) {
	var req PatientRequest
	require.NoError(t, Decode([]byte(`{"name":"Maria","national_id":"123.456.789-00"}`), PatientAliases, &req))
	assert.Equal(t, "123.456.789-00", req.Create().NationalID)

	req = PatientRequest{}
	require.NoError(t, Decode([]byte(`{"national_id":""}`), PatientAliases, &req))
	up := req.Update()
	assert.True(t, up.NationalID.Present())
	assert.Equal(t, "", up.NationalID.V)
	assert.False(t, up.Name.Set)
}

func TestDecode_PatientAliases(t *testing.T) {
	var req PatientRequest
	err := Decode([]byte(`{
		"nome": "Maria",
		"data_nascimento": "01-02-1990",
		"cpf": "123.456.789-00",
		"cartao_sus": "898 0012 3456 7890",
		"endereco": "Rua A, 10"
	}`), PatientAliases, &req)
	require.NoError(t, err)

	in := req.Create()
	assert.Equal(t, "Maria", in.Name)
	assert.Equal(t, "01-02-1990", in.BirthDate)
	assert.Equal(t, "123.456.789-00", in.NationalID)
	assert.Equal(t, "898 0012 3456 7890", in.HealthCardNumber)
	assert.Equal(t, "Rua A, 10", in.Address)
}

func TestDecode_UserAliases(t *testing.T) {
	var req UserRequest
	require.NoError(t, Decode([]byte(`{"usuario":"ana","senha":"secret1","cargo":"admin"}`), UserAliases, &req))
	in := req.Create()
	assert.Equal(t, "ana", in.Username)
	assert.Equal(t, "secret1", in.Password)
	assert.Equal(t, "admin", in.Role)

	var login LoginRequest
	require.NoError(t, Decode([]byte(`{"usuario":"ana","senha":"secret1"}`), UserAliases, &login))
	assert.Equal(t, "ana", login.Username)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind httperr.Kind
	}{
		{"empty", ``, httperr.KindInvalidRequest},
		{"array", `[1,2]`, httperr.KindInvalidRequest},
		{"null", `null`, httperr.KindInvalidRequest},
		{"bad id", `{"patient_id":"abc"}`, httperr.KindInvalidFormat},
		{"zero id", `{"especialidade_id":0}`, httperr.KindInvalidFormat},
		{"bad author id", `{"created_by_id":"x"}`, httperr.KindInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AppointmentRequest
			err := Decode([]byte(tt.body), AppointmentAliases, &req)
			assert.True(t, httperr.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestDecode_WrongTypeIsClientError(t *testing.T) {
	var req AppointmentRequest
	err := Decode([]byte(`{"patient_name":12}`), AppointmentAliases, &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperr.Status(httperr.KindOf(err)))
}

func TestDecode_NullIDMeansAbsent(t *testing.T) {
	var req AppointmentRequest
	require.NoError(t, Decode([]byte(`{"patient_id":null,"patient_name":"Bob"}`), AppointmentAliases, &req))
	assert.Nil(t, req.Create().PatientID)
}

func TestViews(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	birth := time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)
	cardio := "Cardio"
	pid := uint(1)

	pv := NewPatientView(&models.Patient{ID: 1, Name: "Maria", BirthDate: &birth})
	assert.Equal(t, "05-03-1990", *pv.BirthDate)
	assert.Equal(t, "1990-03-05", *pv.BirthDateForm)

	av := NewAppointmentView(&models.Appointment{
		ID:                9,
		PatientID:         &pid,
		PatientName:       "Maria",
		SpecialtyName:     &cardio,
		ScheduledAt:       time.Date(2025, 10, 20, 13, 0, 0, 0, time.UTC),
		CreatedByID:       5,
		CreatedByUsername: "recepcao",
		CreatedAt:         time.Date(2025, 10, 1, 12, 30, 15, 0, time.UTC),
	}, loc)

	b, err := json.Marshal(av)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 9,
		"patient_id": 1,
		"patient_name": "Maria",
		"patient_national_id": null,
		"specialty_id": null,
		"specialty_name": "Cardio",
		"scheduled_at": "20-10-2025 10:00:00",
		"created_by_id": 5,
		"created_by_username": "recepcao",
		"created_at": "01-10-2025 09:30:15"
	}`, string(b))

	b, err = json.Marshal(NewUserView(&models.User{ID: 1, Username: "admin", Role: "admin", PasswordHash: "x"}, loc))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"username":"admin","role":"admin"}`, string(b))
}

func TestAppointmentFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loc := time.FixedZone("BRT", -3*3600)

	newCtx := func(target string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c
	}

	f, err := AppointmentFilter(newCtx("/?paciente_id=3&especialidade=cardio&start=2025-10-01&end=2025-10-31+23:59"), loc)
	require.NoError(t, err)
	assert.Equal(t, uint(3), *f.PatientID)
	assert.Nil(t, f.SpecialtyID)
	assert.Equal(t, "cardio", f.Specialty)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, loc), *f.Start)
	assert.Equal(t, time.Date(2025, 10, 31, 23, 59, 0, 0, loc), *f.End)

	_, err = AppointmentFilter(newCtx("/?patient_id=x"), loc)
	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))

	_, err = AppointmentFilter(newCtx("/?start=ontem"), loc)
	assert.True(t, httperr.Is(err, httperr.KindInvalidFormat))
}
