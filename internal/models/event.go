package models

import (
	"time"
)

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	ContactInfo string    `json:"contact_info"`
	ImageURL    string    `json:"image_url"`
	ImageID     string    `json:"image_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRequest carries the multipart form fields of create/edit calls.
// The image file itself is read from the form separately.
type EventRequest struct {
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Date        string `json:"date" validate:"required"`
	ContactInfo string `json:"contact_info"`
}

type EventOwner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventWithOwner is the public listing row: the event plus the
// owner's display fields joined in.
type EventWithOwner struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	ContactInfo string     `json:"contact_info"`
	ImageURL    string     `json:"image_url"`
	ImageID     string     `json:"image_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedBy   EventOwner `json:"created_by" gorm:"embedded;embeddedPrefix:owner_"`
}
