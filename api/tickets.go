package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/service/verification"
	"github.com/gin-gonic/gin"
)

// TicketHandler serves ticket verification. These routes are public: the
// ticket id itself is the capability, so kiosks can scan without a login.
type TicketHandler struct {
	service verification.VerificationUseCase
}

type ticketResponse struct {
	TicketID        string  `json:"ticket_id"`
	FlightNumber    string  `json:"flight_number"`
	Airline         string  `json:"airline"`
	OriginCity      string  `json:"origin_city"`
	DestinationCity string  `json:"destination_city"`
	DepartureTime   string  `json:"departure_time"`
	Seats           int     `json:"seats"`
	SeatNumbers     []int32 `json:"seat_numbers"`
	TotalPriceCents int64   `json:"total_price_cents"`
	PaymentStatus   string  `json:"payment_status"`
	BookedAt        string  `json:"booked_at"`
}

func NewTicketHandler(service verification.VerificationUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("/:ticketId", h.resolve)
	router.GET("/:ticketId/qr", h.qr)
}

func (h *TicketHandler) resolve(c *gin.Context) {
	view, err := h.service.Resolve(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticketResponse{
		TicketID:        view.TicketID,
		FlightNumber:    view.FlightNumber,
		Airline:         view.AirlineName,
		OriginCity:      view.OriginCity,
		DestinationCity: view.DestinationCity,
		DepartureTime:   view.DepartureTime.Format(time.RFC3339),
		Seats:           view.Seats,
		SeatNumbers:     view.SeatNumbers,
		TotalPriceCents: view.TotalPriceCents,
		PaymentStatus:   string(view.PaymentStatus),
		BookedAt:        view.BookedAt.Format(time.RFC3339),
	})
}

func (h *TicketHandler) qr(c *gin.Context) {
	view, err := h.service.Resolve(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(view.QRCode) == 0 {
		respondError(c, domain.ErrNotFound)
		return
	}
	c.Data(http.StatusOK, view.QRContentType, view.QRCode)
}
