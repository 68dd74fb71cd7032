package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/backend"
)

func TestRegister_PublicaElInventario(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := backend.NewRegistrar(srv.URL, time.Second)
	printers := []entity.Printer{
		{Name: "192.168.1.50", Identifier: "192.168.1.50", Kind: entity.PrinterNetwork},
		{Name: "EPSON_TM88", Identifier: "EPSON_TM88", Kind: entity.PrinterLocal},
	}
	err := reg.Register(context.Background(), "20304050609", "caja-1", printers)
	require.NoError(t, err)

	assert.Equal(t, "20304050609", got["cuit"])
	assert.Equal(t, "caja-1", got["device_id"])
	assert.Len(t, got["printers"], 2)
}

func TestRegister_RespuestaNo2xx_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	reg := backend.NewRegistrar(srv.URL, time.Second)
	err := reg.Register(context.Background(), "20304050609", "caja-1", nil)
	assert.Error(t, err)
}

func TestRegister_BackendCaido_Error(t *testing.T) {
	reg := backend.NewRegistrar("http://127.0.0.1:1/register", 200*time.Millisecond)
	err := reg.Register(context.Background(), "20304050609", "caja-1", nil)
	assert.Error(t, err, "el registro falla rápido cuando el backend no responde")
}
