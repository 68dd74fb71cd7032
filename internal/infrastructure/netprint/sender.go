// Package netprint envía tickets crudos a impresoras de red por el puerto
// raw 9100: conexión TCP con timeout acotado, escritura y cierre. Sin
// handshake ni respuesta; un fallo es terminal para el ticket.
package netprint

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Sender transporte TCP crudo hacia un print server de red.
type Sender struct {
	port    int
	timeout time.Duration
}

// NewSender construye el transporte. port <= 0 usa 9100.
func NewSender(port int, timeout time.Duration) *Sender {
	if port <= 0 {
		port = 9100
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Sender{port: port, timeout: timeout}
}

// Send conecta, escribe el contenido completo y cierra.
func (s *Sender) Send(ctx context.Context, host string, content []byte) error {
	addr := net.JoinHostPort(host, strconv.Itoa(s.port))

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("netprint: conectar %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("netprint: deadline de escritura: %w", err)
	}
	if _, err := conn.Write(content); err != nil {
		return fmt.Errorf("netprint: enviar a %s: %w", addr, err)
	}
	return nil
}
