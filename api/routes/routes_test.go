package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chartassist-api/internal/mocks"
	"chartassist-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	SetupRoutes(router, logger.New(), &mocks.MockChartService{})
	return router
}

func TestSetupRoutes_HealthEndpoint(t *testing.T) {
	router := createTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestSetupRoutes_ChartsConfigEndpoint(t *testing.T) {
	router := createTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/charts-config", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestSetupRoutes_AllEndpointsRegistered(t *testing.T) {
	router := createTestRouter()

	endpoints := []struct {
		method           string
		path             string
		expectStatusCode int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/charts-config", http.StatusOK},
		{http.MethodPost, "/choose-charts", http.StatusBadRequest},  // No body = validation error
		{http.MethodPost, "/suggest-charts", http.StatusBadRequest}, // No body = validation error
		{http.MethodPost, "/map-schema", http.StatusBadRequest},     // No body = validation error
		{http.MethodPost, "/build-queries", http.StatusBadRequest},  // No body = validation error
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+"_"+endpoint.path, func(t *testing.T) {
			req := httptest.NewRequest(endpoint.method, endpoint.path, nil)
			if endpoint.method == http.MethodPost {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, endpoint.expectStatusCode, w.Code,
				"Endpoint %s %s should return status %d",
				endpoint.method, endpoint.path, endpoint.expectStatusCode)
		})
	}
}

func TestSetupRoutes_NotFoundEndpoint(t *testing.T) {
	router := createTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_DependencyInjection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.NotPanics(t, func() {
		router := gin.New()
		SetupRoutes(router, logger.New(), &mocks.MockChartService{})
		assert.NotNil(t, router)
	})
}
