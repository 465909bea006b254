package domain

import "time"

type Flight struct {
	ID             int64
	RouteID        int64
	AirlineID      int64
	FlightNumber   string
	DepartureTime  time.Time
	TotalSeats     int
	AvailableSeats int
	PriceCents     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FlightDetails is a flight joined with its route endpoints and airline,
// the shape the search and ticket views work with.
type FlightDetails struct {
	Flight
	OriginCity      string
	OriginCountry   string
	DestinationCity string
	DestCountry     string
	AirlineName     string
	CarrierCode     string
	DurationMinutes int
	DistanceKM      int
}
