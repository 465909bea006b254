package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUseCase is a mock implementation of catalog.CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockCatalogUseCase) CreateLocation(ctx context.Context, principal domain.Principal, city, country string) (*domain.Location, error) {
	args := m.Called(ctx, principal, city, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockCatalogUseCase) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) CreateAirline(ctx context.Context, principal domain.Principal, input catalog.AirlineInput) (*domain.Airline, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) ListRoutes(ctx context.Context) ([]domain.RouteDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RouteDetails), args.Error(1)
}

func (m *MockCatalogUseCase) CreateRoute(ctx context.Context, principal domain.Principal, input catalog.RouteInput) (*domain.Route, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

var operator = domain.Principal{UserID: "op", Role: domain.RoleOperator}

func TestCatalogHandler_createRoute(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(routeRequest{OriginID: 1, DestinationID: 2, DurationMinutes: 95, DistanceKM: 1020})
	c.Request = httptest.NewRequest("POST", "/admin/routes", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	auth.SetPrincipal(c, operator)

	input := catalog.RouteInput{OriginID: 1, DestinationID: 2, DurationMinutes: 95, DistanceKM: 1020}
	mockService.On("CreateRoute", c.Request.Context(), operator, input).
		Return(&domain.Route{ID: 3, OriginID: 1, DestinationID: 2, DurationMinutes: 95, DistanceKM: 1020}, nil)

	handler.createRoute(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":3`)

	mockService.AssertExpectations(t)
}

func TestCatalogHandler_createRoute_sameEndpoints(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(routeRequest{OriginID: 1, DestinationID: 1})
	c.Request = httptest.NewRequest("POST", "/admin/routes", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	auth.SetPrincipal(c, operator)

	mockService.On("CreateRoute", c.Request.Context(), operator, mock.Anything).
		Return(nil, domain.ErrRouteEndpoints)

	handler.createRoute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_listLocations(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/locations", nil)

	mockService.On("ListLocations", c.Request.Context()).
		Return([]domain.Location{{ID: 1, City: "Karachi", Country: "Pakistan"}}, nil)

	handler.listLocations(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Locations []locationResponse `json:"locations"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Locations, 1)
	assert.Equal(t, "Karachi", response.Locations[0].City)
}

func TestCatalogHandler_airlineLogo(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/airlines/1/logo", nil)

	logo := []byte{0x89, 0x50, 0x4e, 0x47}
	mockService.On("GetAirline", c.Request.Context(), int64(1)).
		Return(&domain.Airline{ID: 1, Logo: logo, LogoContentType: "image/png"}, nil)

	handler.airlineLogo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, logo, w.Body.Bytes())
}

func TestCatalogHandler_airlineLogo_missing(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	handler := NewCatalogHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "2"}}
	c.Request = httptest.NewRequest("GET", "/airlines/2/logo", nil)

	mockService.On("GetAirline", c.Request.Context(), int64(2)).
		Return(&domain.Airline{ID: 2}, nil)

	handler.airlineLogo(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
