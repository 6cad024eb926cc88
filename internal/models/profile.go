package models

import "time"

// Profile carries the user-editable settings the backend needs to address
// outbound mail. Identity itself lives with the external auth provider.
type Profile struct {
	UserID            string    `gorm:"primaryKey" json:"userId"`
	Email             string    `gorm:"not null" json:"email"`
	FullName          string    `json:"fullName"`
	Locale            string    `json:"locale"`
	RemindersDisabled bool      `json:"remindersDisabled"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Municipality is reference data for the relocation lookups. Read-mostly,
// seeded out of band, cached in redis in front of the table.
type Municipality struct {
	Code               string    `gorm:"primaryKey" json:"code"`
	Name               string    `gorm:"not null" json:"name"`
	Canton             string    `json:"canton"`
	RegistrationOffice string    `json:"registrationOffice"`
	RegistrationURL    string    `json:"registrationUrl"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
