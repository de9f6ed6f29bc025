package domain

import "time"

type FlightStatus string

const (
	FlightStatusAvailable FlightStatus = "AVAILABLE"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

type Flight struct {
	ID         int64
	From       string
	To         string
	Date       time.Time
	Duration   string
	PriceCents int64
	Status     FlightStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
