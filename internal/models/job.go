package models

import "time"

// DateRange is an optional job deadline window.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Job is a client-posted work opportunity. ClientID is immutable; Skills has
// at least one entry and Budget is positive.
type Job struct {
	ID          int        `json:"id"`
	ClientID    int        `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Skills      []string   `json:"skills"`
	Budget      float64    `json:"budget"`
	Location    string     `json:"location"`
	Notes       string     `json:"notes,omitempty"`
	Deadline    *DateRange `json:"deadline,omitempty"`
}
