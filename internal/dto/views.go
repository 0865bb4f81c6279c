package dto

import (
	"time"

	"github.com/clinicadev/clinic-api/internal/models"
	"github.com/clinicadev/clinic-api/internal/timeparse"
)

// Views render records for transport: dates as DD-MM-YYYY, timestamps as
// DD-MM-YYYY HH:MM:SS in the clinic location.

type PatientView struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	BirthDate        *string `json:"birth_date"`
	BirthDateForm    *string `json:"birth_date_form"`
	NationalID       *string `json:"national_id"`
	HealthCardNumber *string `json:"health_card_number"`
	Address          *string `json:"address"`
}

func NewPatientView(p *models.Patient) PatientView {
	return PatientView{
		ID:               p.ID,
		Name:             p.Name,
		BirthDate:        timeparse.DisplayDate(p.BirthDate),
		BirthDateForm:    timeparse.FormDate(p.BirthDate),
		NationalID:       p.NationalID,
		HealthCardNumber: p.HealthCardNumber,
		Address:          p.Address,
	}
}

type SpecialtyView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewSpecialtyView(s *models.Specialty) SpecialtyView {
	return SpecialtyView{ID: s.ID, Name: s.Name}
}

type UserView struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	CreatedAt *string `json:"created_at,omitempty"`
}

func NewUserView(u *models.User, loc *time.Location) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: timeparse.DisplayDateTime(&u.CreatedAt, loc),
	}
}

type AppointmentView struct {
	ID                uint    `json:"id"`
	PatientID         *uint   `json:"patient_id"`
	PatientName       string  `json:"patient_name"`
	PatientNationalID *string `json:"patient_national_id"`
	SpecialtyID       *uint   `json:"specialty_id"`
	SpecialtyName     *string `json:"specialty_name"`
	ScheduledAt       *string `json:"scheduled_at"`
	CreatedByID       uint    `json:"created_by_id"`
	CreatedByUsername string  `json:"created_by_username"`
	CreatedAt         *string `json:"created_at"`
}

func NewAppointmentView(a *models.Appointment, loc *time.Location) AppointmentView {
	return AppointmentView{
		ID:                a.ID,
		PatientID:         a.PatientID,
		PatientName:       a.PatientName,
		PatientNationalID: a.PatientNationalID,
		SpecialtyID:       a.SpecialtyID,
		SpecialtyName:     a.SpecialtyName,
		ScheduledAt:       timeparse.DisplayDateTime(&a.ScheduledAt, loc),
		CreatedByID:       a.CreatedByID,
		CreatedByUsername: a.CreatedByUsername,
		CreatedAt:         timeparse.DisplayDateTime(&a.CreatedAt, loc),
	}
}

// Map converts a slice of records with view.
func Map[T, V any](items []T, view func(*T) V) []V {
	out := make([]V, 0, len(items))
	for i := range items {
		out = append(out, view(&items[i]))
	}
	return out
}

// LoginView is the login response body. The user carries no timestamps.
type LoginView struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

func NewLoginView(token string, u *models.User) LoginView {
	return LoginView{
		Token: token,
		User:  UserView{ID: u.ID, Username: u.Username, Role: u.Role},
	}
}
