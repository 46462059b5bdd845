package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_Login(t *testing.T) {
	handler := NewHTTPHandler(newTestService(t), zerolog.Nop())

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"password"}`))

		handler.Login(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp LoginResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"x"}`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`username=admin`))

		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"username":"admin","password":"` + strings.Repeat("p", 256) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		r.ContentLength = -1
		r.Body = http.MaxBytesReader(w, r.Body, 64)

		handler.Login(w, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"message":"Request body too large"}`, w.Body.String())
	})

	t.Run("aborted request", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"password"}`)).WithContext(ctx)

		handler.Login(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
