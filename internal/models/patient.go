package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string     `gorm:"size:120;not null" json:"name"`
	BirthDate        *time.Time `gorm:"type:date" json:"birth_date"`
	NationalID       *string    `gorm:"size:14;uniqueIndex" json:"national_id"`
	HealthCardNumber *string    `gorm:"size:30;uniqueIndex" json:"health_card_number"`
	Address          *string    `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
