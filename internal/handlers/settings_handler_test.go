package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/utils"
)

type stubSettingsService struct {
	enabled bool
}

func (s *stubSettingsService) GetAds(ctx context.Context) (*models.AdSettings, error) {
	return &models.AdSettings{ID: 1, Enabled: s.enabled}, nil
}

func (s *stubSettingsService) SetAds(ctx context.Context, enabled bool) (*models.AdSettings, error) {
	s.enabled = enabled
	return &models.AdSettings{ID: 1, Enabled: enabled}, nil
}

func TestSettingsHandler_Ads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSettingsService{}
	handler := NewSettingsHandler(svc, utils.NewDevelopmentLogger())

	router := gin.New()
	router.GET("/settings/ads", handler.GetAds)
	router.PUT("/settings/ads", handler.SetAds)

	readEnabled := func(t *testing.T) bool {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/settings/ads", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var settings models.AdSettings
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
		return settings.Enabled
	}

	assert.False(t, readEnabled(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/settings/ads", bytes.NewReader([]byte(`{"enabled":true}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, readEnabled(t))
}
