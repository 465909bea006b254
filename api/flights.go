package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID              int64  `json:"id"`
	FlightNumber    string `json:"flight_number"`
	Airline         string `json:"airline"`
	CarrierCode     string `json:"carrier_code"`
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`
	DepartureTime   string `json:"departure_time"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalSeats      int    `json:"total_seats"`
	AvailableSeats  int    `json:"available_seats"`
	PriceCents      int64  `json:"price_cents"`
}

// adminFlightResponse echoes the catalog row an operator just wrote; the
// richer flightResponse needs the route/airline join the write path skips.
type adminFlightResponse struct {
	ID             int64  `json:"id"`
	RouteID        int64  `json:"route_id"`
	AirlineID      int64  `json:"airline_id"`
	FlightNumber   string `json:"flight_number"`
	DepartureTime  string `json:"departure_time"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	PriceCents     int64  `json:"price_cents"`
}

func toAdminFlightResponse(f *domain.Flight) adminFlightResponse {
	return adminFlightResponse{
		ID:             f.ID,
		RouteID:        f.RouteID,
		AirlineID:      f.AirlineID,
		FlightNumber:   f.FlightNumber,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		PriceCents:     f.PriceCents,
	}
}

type flightRequest struct {
	RouteID       int64     `json:"route_id" binding:"required"`
	AirlineID     int64     `json:"airline_id" binding:"required"`
	FlightNumber  string    `json:"flight_number" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	TotalSeats    int       `json:"total_seats" binding:"required"`
	PriceCents    int64     `json:"price_cents" binding:"min=0"`
}

func toFlightResponse(f *domain.FlightDetails) flightResponse {
	return flightResponse{
		ID:              f.ID,
		FlightNumber:    f.FlightNumber,
		Airline:         f.AirlineName,
		CarrierCode:     f.CarrierCode,
		OriginCity:      f.OriginCity,
		DestinationCity: f.DestinationCity,
		DepartureTime:   f.DepartureTime.Format(time.RFC3339),
		DurationMinutes: f.DurationMinutes,
		TotalSeats:      f.TotalSeats,
		AvailableSeats:  f.AvailableSeats,
		PriceCents:      f.PriceCents,
	}
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
}

func (h *FlightHandler) search(c *gin.Context) {
	query := flights.SearchQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		query.Date = &date
	}

	found, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]flightResponse, 0, len(found))
	for i := range found {
		out = append(out, toFlightResponse(&found[i]))
	}
	c.JSON(http.StatusOK, gin.H{"flights": out})
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal, flights.FlightInput{
		RouteID:       req.RouteID,
		AirlineID:     req.AirlineID,
		FlightNumber:  req.FlightNumber,
		DepartureTime: req.DepartureTime,
		TotalSeats:    req.TotalSeats,
		PriceCents:    req.PriceCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAdminFlightResponse(created))
}

func (h *FlightHandler) update(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal, id, flights.FlightInput{
		RouteID:       req.RouteID,
		AirlineID:     req.AirlineID,
		FlightNumber:  req.FlightNumber,
		DepartureTime: req.DepartureTime,
		TotalSeats:    req.TotalSeats,
		PriceCents:    req.PriceCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdminFlightResponse(updated))
}
