package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParam(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		want   string
	}{
		{"simple id", "/api/assets/abc-123", "/api/assets/", "abc-123"},
		{"trailing segment ignored", "/api/assets/abc/extra", "/api/assets/", "abc"},
		{"no id", "/api/assets/", "/api/assets/", ""},
		{"prefix mismatch", "/api/other/abc", "/api/assets/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.want, PathParam(req, tt.prefix))
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "Activo no encontrado")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Activo no encontrado"}`, rec.Body.String())
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()

	ok := RequireMethod(rec, req, http.MethodGet, http.MethodHead)

	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	big := make([]byte, (1<<20)+1)
	for i := range big {
		big[i] = 'a'
	}
	body := `{"nombre":"` + string(big) + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/assets", strings.NewReader(body))
	rec := httptest.NewRecorder()

	var v map[string]interface{}
	ok := DecodeJSON(rec, req, &v)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
