package dto

import (
	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/optional"
)

// ======================================================
// Patient
// ======================================================

type PatientRequest struct {
	Name             optional.Value[string] `json:"name"`
	BirthDate        optional.Value[string] `json:"birth_date"`
	NationalID       optional.Value[string] `json:"national_id"`
	HealthCardNumber optional.Value[string] `json:"health_card_number"`
	Address          optional.Value[string] `json:"address"`
}

func (r PatientRequest) Create() patient.CreateInput {
	return patient.CreateInput{
		Name:             r.Name.V,
		BirthDate:        r.BirthDate.V,
		NationalID:       r.NationalID.V,
		HealthCardNumber: r.HealthCardNumber.V,
		Address:          r.Address.V,
	}
}

func (r PatientRequest) Update() patient.UpdateInput {
	return patient.UpdateInput(r)
}

// ======================================================
// Specialty
// ======================================================

type SpecialtyRequest struct {
	Name          optional.Value[string] `json:"name"`
	SpecialtyName optional.Value[string] `json:"specialty_name"`
}

func (r SpecialtyRequest) Create() specialty.CreateInput {
	return specialty.CreateInput{Name: r.Name.V, SpecialtyName: r.SpecialtyName.V}
}

func (r SpecialtyRequest) Update() specialty.UpdateInput {
	return specialty.UpdateInput(r)
}

// ======================================================
// Appointment
// ======================================================

// AppointmentRequest never carries the author on create; the handler takes
// it from the authenticated principal.
type AppointmentRequest struct {
	PatientID         optional.Value[ID]     `json:"patient_id"`
	PatientName       optional.Value[string] `json:"patient_name"`
	PatientNationalID optional.Value[string] `json:"patient_national_id"`
	SpecialtyID       optional.Value[ID]     `json:"specialty_id"`
	SpecialtyName     optional.Value[string] `json:"specialty_name"`
	ScheduledAt       optional.Value[string] `json:"scheduled_at"`
	CreatedByUsername optional.Value[string] `json:"created_by_username"`
}

func (r AppointmentRequest) Create() appointment.CreateInput {
	return appointment.CreateInput{
		PatientID:         r.PatientID.V.UintPtr(),
		PatientName:       r.PatientName.V,
		PatientNationalID: r.PatientNationalID.V,
		SpecialtyID:       r.SpecialtyID.V.UintPtr(),
		SpecialtyName:     r.SpecialtyName.V,
		ScheduledAt:       r.ScheduledAt.V,
	}
}

func (r AppointmentRequest) Update() appointment.UpdateInput {
	return appointment.UpdateInput{
		PatientName:       r.PatientName,
		PatientNationalID: r.PatientNationalID,
		SpecialtyName:     r.SpecialtyName,
		ScheduledAt:       r.ScheduledAt,
		CreatedByUsername: r.CreatedByUsername,
	}
}

// ======================================================
// User
// ======================================================

type UserRequest struct {
	Username optional.Value[string] `json:"username"`
	Password optional.Value[string] `json:"password"`
	Role     optional.Value[string] `json:"role"`
}

func (r UserRequest) Create() user.CreateInput {
	return user.CreateInput{Username: r.Username.V, Password: r.Password.V, Role: r.Role.V}
}

func (r UserRequest) Update() user.UpdateInput {
	return user.UpdateInput(r)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
