package domain

import "time"

// BusinessRecord is one row of the published directory spreadsheet.
// Availability maps a lowercase Romanian weekday name (the sheet's column
// header, e.g. "joi") to the open hour strings for that day.
type BusinessRecord struct {
	ID           string
	Name         string
	City         string
	Services     []string
	Availability map[string][]string
}

// MatchRequest is what a client asks for: a service in a city on a given
// weekday at a given hour. All four fields are required.
type MatchRequest struct {
	Service string
	City    string
	Day     string
	Hour    string
}

type Booking struct {
	ID         string
	UserName   string
	BusinessID string
	Service    string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	Email      string
	CreatedAt  time.Time
}

type BusinessUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
