package model

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Workshop date and time are opaque strings ("2023-12-01", "10:00");
// no calendar validation is applied anywhere.
type Workshop struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type Attendee struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	WorkshopID  string    `json:"workshop_id"`
	CreatedAt   time.Time `json:"-"`
}
