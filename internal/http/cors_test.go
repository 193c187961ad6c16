package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name     string
		enabled  bool
		origins  string
		expectOn bool
	}{
		{name: "Disabled", enabled: false, origins: "https://console.example.com"},
		{name: "EnabledWithoutOrigins", enabled: true, origins: ""},
		{name: "EnabledWithBlankOrigins", enabled: true, origins: " , "},
		{name: "EnabledWithOrigins", enabled: true, origins: "https://console.example.com,https://ops.example.com", expectOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.expectOn {
				assert.NotNil(t, middleware)
			} else {
				assert.Nil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"https://console.example.com", "https://ops.example.com"},
		parseOrigins(" https://console.example.com , https://ops.example.com "))
	assert.Equal(t, []string{"https://console.example.com"}, parseOrigins("https://console.example.com,,"))
	assert.Nil(t, parseOrigins(""))
}

func newCORSRouter(enabled bool) *gin.Engine {
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, "https://console.example.com", slog.Default()); middleware != nil {
		router.Use(middleware)
	}
	router.POST("/v1/console/gateways/:gateway_id/edit", func(c *gin.Context) {
		c.Header("Location", "/tenants/t/gateways/g")
		c.JSON(http.StatusSeeOther, gin.H{"redirect": "/tenants/t/gateways/g"})
	})
	return router
}

func TestCORS_ExposesLocationToTheConsole(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/console/gateways/0102030405060708/edit", nil)
	req.Header.Set("Origin", "https://console.example.com")
	newCORSRouter(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://console.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")
}

func TestCORS_NoHeadersWhenDisabled(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/console/gateways/0102030405060708/edit", nil)
	req.Header.Set("Origin", "https://console.example.com")
	newCORSRouter(false).ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/console/gateways/0102030405060708/edit", nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	newCORSRouter(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
