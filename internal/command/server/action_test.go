package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260829-go-pkg-subst/internal/config"
)

func testMuxConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Render.NoEnv = true
	cfg.Render.Vars = map[string]string{
		"name": "subst",
		"A":    `${B}`,
		"B":    `${A}`,
	}

	return &cfg
}

func TestMux_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	newMux(testMuxConfig()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMux_Render(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render",
		strings.NewReader(`hello ${name}, fallback=${missing:-x}`))

	newMux(testMuxConfig()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello subst, fallback=x", rec.Body.String())
}

func TestMux_RenderCycle(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`${A}`))

	newMux(testMuxConfig()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "cyclic substitution")
}

func TestMux_RenderMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/render", nil)

	newMux(testMuxConfig()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
