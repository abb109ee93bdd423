package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled returns nil", enabled: false, origins: "https://example.com", wantNil: true},
		{name: "enabled without origins returns nil", enabled: true, origins: "", wantNil: true},
		{name: "enabled with origins returns middleware", enabled: true, origins: "https://app.example.com,https://admin.example.com", wantNil: false},
		{name: "whitespace-only origins returns nil", enabled: true, origins: " , ", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := CreateCORSMiddleware(tt.enabled, tt.origins, discardLogger())
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	origins := parseOrigins(" https://app.example.com , https://admin.example.com ")
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, origins)

	assert.Nil(t, parseOrigins(""))
}

func TestCORSIntegration_HeadersAddedWhenEnabled(t *testing.T) {
	middleware := CreateCORSMiddleware(true, "https://app.example.com", discardLogger())

	router := gin.New()
	router.Use(middleware)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_PreflightRequestHandled(t *testing.T) {
	middleware := CreateCORSMiddleware(true, "https://app.example.com", discardLogger())

	router := gin.New()
	router.Use(middleware)
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
