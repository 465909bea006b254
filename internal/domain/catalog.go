package domain

import "time"

type Location struct {
	ID        int64
	City      string
	Country   string
	CreatedAt time.Time
}

type Airline struct {
	ID              int64
	Name            string
	CarrierCode     string
	Logo            []byte
	LogoContentType string
	CreatedAt       time.Time
}

// Route connects two distinct locations. Repositories reject
// origin == destination on insert.
type Route struct {
	ID              int64
	OriginID        int64
	DestinationID   int64
	DurationMinutes int
	DistanceKM      int
	CreatedAt       time.Time
}

// RouteDetails is a route with its endpoints resolved, for operator listings.
type RouteDetails struct {
	Route
	OriginCity      string
	OriginCountry   string
	DestinationCity string
	DestCountry     string
}
