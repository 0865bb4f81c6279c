package models

import "time"

// Appointment carries snapshot copies of the patient, specialty and author
// taken at creation time. The optional references are kept for filtering;
// later edits to the referenced rows are not propagated.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientName       string   `gorm:"size:120;not null" json:"patient_name"`
	PatientNationalID *string  `gorm:"size:14;index" json:"patient_national_id"`
	PatientID         *uint    `gorm:"index" json:"patient_id"`
	Patient           *Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	SpecialtyName *string    `gorm:"size:120" json:"specialty_name"`
	SpecialtyID   *uint      `gorm:"index" json:"specialty_id"`
	Specialty     *Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`

	CreatedByUsername string `gorm:"size:80;not null" json:"created_by_username"`
	CreatedByID       uint   `gorm:"not null;index" json:"created_by_id"`
	CreatedBy         *User  `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
