package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// maxLogoBytes caps airline logo uploads.
const maxLogoBytes = 1 << 20

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

type locationRequest struct {
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type routeRequest struct {
	OriginID        int64 `json:"origin_id" binding:"required"`
	DestinationID   int64 `json:"destination_id" binding:"required"`
	DurationMinutes int   `json:"duration_minutes" binding:"min=0"`
	DistanceKM      int   `json:"distance_km" binding:"min=0"`
}

type locationResponse struct {
	ID      int64  `json:"id"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type routeResponse struct {
	ID              int64  `json:"id"`
	OriginCity      string `json:"origin_city"`
	OriginCountry   string `json:"origin_country"`
	DestinationCity string `json:"destination_city"`
	DestCountry     string `json:"destination_country"`
	DurationMinutes int    `json:"duration_minutes"`
	DistanceKM      int    `json:"distance_km"`
}

type airlineResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CarrierCode string `json:"carrier_code"`
	HasLogo     bool   `json:"has_logo"`
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/locations", h.listLocations)
	router.GET("/routes", h.listRoutes)
	router.GET("/airlines", h.listAirlines)
	router.GET("/airlines/:id/logo", h.airlineLogo)
}

func (h *CatalogHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/locations", h.createLocation)
	router.POST("/routes", h.createRoute)
	router.POST("/airlines", h.createAirline)
}

func (h *CatalogHandler) listLocations(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, locationResponse{ID: loc.ID, City: loc.City, Country: loc.Country})
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeResponse{
			ID:              r.ID,
			OriginCity:      r.OriginCity,
			OriginCountry:   r.OriginCountry,
			DestinationCity: r.DestinationCity,
			DestCountry:     r.DestCountry,
			DurationMinutes: r.DurationMinutes,
			DistanceKM:      r.DistanceKM,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

func (h *CatalogHandler) listAirlines(c *gin.Context) {
	airlines, err := h.service.ListAirlines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]airlineResponse, 0, len(airlines))
	for _, a := range airlines {
		out = append(out, airlineResponse{
			ID:          a.ID,
			Name:        a.Name,
			CarrierCode: a.CarrierCode,
			HasLogo:     len(a.Logo) > 0,
		})
	}
	c.JSON(http.StatusOK, gin.H{"airlines": out})
}

func (h *CatalogHandler) airlineLogo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	airline, err := h.service.GetAirline(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(airline.Logo) == 0 {
		respondError(c, domain.ErrNotFound)
		return
	}
	c.Data(http.StatusOK, airline.LogoContentType, airline.Logo)
}

func (h *CatalogHandler) createLocation(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateLocation(c.Request.Context(), principal, req.City, req.Country)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, locationResponse{ID: created.ID, City: created.City, Country: created.Country})
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateRoute(c.Request.Context(), principal, catalog.RouteInput{
		OriginID:        req.OriginID,
		DestinationID:   req.DestinationID,
		DurationMinutes: req.DurationMinutes,
		DistanceKM:      req.DistanceKM,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":               created.ID,
		"origin_id":        created.OriginID,
		"destination_id":   created.DestinationID,
		"duration_minutes": created.DurationMinutes,
		"distance_km":      created.DistanceKM,
	})
}

// createAirline takes multipart form data so the logo can ride along with
// the name and carrier code in one request.
func (h *CatalogHandler) createAirline(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	name := c.PostForm("name")
	code := c.PostForm("carrier_code")
	if name == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and carrier_code are required"})
		return
	}

	input := catalog.AirlineInput{Name: name, CarrierCode: code}

	if file, err := c.FormFile("logo"); err == nil {
		if file.Size > maxLogoBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logo exceeds 1MB"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer src.Close()

		logo, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Logo = logo
		input.LogoContentType = file.Header.Get("Content-Type")
	}

	created, err := h.service.CreateAirline(c.Request.Context(), principal, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, airlineResponse{
		ID:          created.ID,
		Name:        created.Name,
		CarrierCode: created.CarrierCode,
		HasLogo:     len(created.Logo) > 0,
	})
}
