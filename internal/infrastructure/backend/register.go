// Package backend reporta al servidor central la identidad del dispositivo y
// las impresoras descubiertas. El registro es best-effort: el backend lo usa
// para poblar el selector de impresoras, no para autorizar al agente.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
)

// Registrar cliente HTTP del endpoint de registro de dispositivos.
type Registrar struct {
	url    string
	client *http.Client
}

// NewRegistrar construye el cliente. timeout <= 0 usa 10s.
func NewRegistrar(url string, timeout time.Duration) *Registrar {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Registrar{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type registerRequest struct {
	CUIT     string           `json:"cuit"`
	DeviceID string           `json:"device_id"`
	Printers []entity.Printer `json:"printers"`
}

// Register publica la identidad del dispositivo junto con el inventario de
// impresoras. Cualquier respuesta fuera del rango 2xx es un error.
func (r *Registrar) Register(ctx context.Context, cuit, deviceID string, printers []entity.Printer) error {
	body, err := json.Marshal(registerRequest{
		CUIT:     cuit,
		DeviceID: deviceID,
		Printers: printers,
	})
	if err != nil {
		return fmt.Errorf("backend: serializar registro: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: armar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: registrar dispositivo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend: registro rechazado: %s", resp.Status)
	}
	return nil
}
