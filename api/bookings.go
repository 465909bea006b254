package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID int64 `json:"flight_id" binding:"required"`
	Seats    int   `json:"seats" binding:"required"`
}

type bookingResponse struct {
	ID              int64   `json:"id"`
	TicketID        string  `json:"ticket_id"`
	FlightID        int64   `json:"flight_id"`
	Seats           int     `json:"seats"`
	SeatNumbers     []int32 `json:"seat_numbers"`
	TotalPriceCents int64   `json:"total_price_cents"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	CreatedAt       string  `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		TicketID:        b.TicketID,
		FlightID:        b.FlightID,
		Seats:           b.Seats,
		SeatNumbers:     b.SeatNumbers,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.POST("/:id/cancel", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), principal, booking.CreateBookingInput{
		FlightID: req.FlightID,
		Seats:    req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	bookings, err := h.service.ListBookingsForUser(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (h *BookingHandler) cancel(c *gin.Context) {
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

	cancelled, err := h.service.CancelBooking(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}
