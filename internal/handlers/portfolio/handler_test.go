package portfolio_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/config"
	"nest/infras/otel/mocks"
	"nest/internal/domains/portfolio/model/dto"
	"nest/internal/domains/portfolio/service"
	"nest/internal/handlers/portfolio"
	"nest/shared/constant"
)

func newRouter() chi.Router {
	otel := mocks.NewOtel()
	handler := portfolio.New(service.New(&config.Config{}, otel), otel)

	router := chi.NewRouter()
	handler.PageRouter(router)
	router.Route("/v1", handler.Router)

	return router
}

func TestPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?scroll_y=80", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeHTML, rec.Header().Get(constant.RequestHeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>"))
	assert.Contains(t, rec.Body.String(), `data-scrolled="true"`)
}

func TestPageInvalidScroll(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?scroll_y=-3", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNav(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/portfolio/nav?scroll_y=51", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.NavState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Data.Scrolled)
	assert.InDelta(t, 25.5, body.Data.ParallaxOffset, 0)
}

func TestGetContent(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/portfolio", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Alex Chen"`)
	assert.Contains(t, rec.Body.String(), `"href":"#projects"`)
}
