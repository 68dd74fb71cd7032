// Package pusher implementa el cliente websocket del protocolo Pusher
// Channels (protocolo 7): conexión, suscripción a canales públicos y
// keepalive ping/pong. La autenticación de canales privados queda fuera;
// el agente solo consume canales públicos.
package pusher

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qbitsinc/orderwise-printer/internal/application/dto"
	"github.com/qbitsinc/orderwise-printer/pkg/logger"
)

const (
	eventSubscribe = "pusher:subscribe"
	eventPing      = "pusher:ping"
	eventPong      = "pusher:pong"

	handshakeTimeout = 10 * time.Second
	maxBackoff       = 30 * time.Second
)

// Handler procesa cada mensaje crudo recibido del websocket.
type Handler func(ctx context.Context, raw []byte)

// Client mantiene la conexión con Pusher y la reestablece ante cortes.
type Client struct {
	url string
	log *logger.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient construye el cliente para la URL websocket del cluster.
func NewClient(url string, log *logger.Logger) *Client {
	return &Client{url: url, log: log.Component("pusher")}
}

// Run conecta y lee mensajes hasta que el contexto se cancele. Ante un
// corte de conexión reintenta con backoff exponencial; nunca devuelve
// error salvo por cancelación.
func (c *Client) Run(ctx context.Context, handler Handler) error {
	backoff := time.Second
	for {
		if err := c.readLoop(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("conexión con pusher cortada")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *Client) readLoop(ctx context.Context, handler Handler) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	// cierra la conexión cuando el contexto muere para destrabar ReadMessage
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	c.log.Info().Str("url", c.url).Msg("conectado a pusher")
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if c.handleKeepalive(raw) {
			continue
		}
		handler(ctx, raw)
	}
}

// handleKeepalive responde pusher:ping con pusher:pong. Devuelve true si
// el mensaje fue consumido por el keepalive.
func (c *Client) handleKeepalive(raw []byte) bool {
	var frame dto.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return false
	}
	if frame.Event != eventPing {
		return false
	}
	if err := c.writeJSON(dto.Frame{Event: eventPong}); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo responder el ping")
	}
	return true
}

// Subscribe envía la suscripción al canal público indicado.
func (c *Client) Subscribe(channel string) error {
	payload, err := json.Marshal(dto.SubscribePayload{Channel: channel})
	if err != nil {
		return err
	}
	return c.writeJSON(dto.Frame{Event: eventSubscribe, Data: payload})
}

func (c *Client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return websocket.ErrCloseSent
	}
	return c.conn.WriteJSON(v)
}
