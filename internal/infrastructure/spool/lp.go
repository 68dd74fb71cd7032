// Package spool entrega documentos renderizados a colas de impresión locales
// a través del comando lp de CUPS. El contenido se materializa en un archivo
// temporal porque lp consume rutas, no streams.
package spool

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/qbitsinc/orderwise-printer/internal/domain"
)

// LP encola documentos en CUPS.
type LP struct{}

// NewLP construye el spooler local.
func NewLP() *LP {
	return &LP{}
}

// Print escribe el contenido en un archivo temporal y lo encola con
// lp -d <cola> -t <nombre>. El archivo se elimina siempre, incluso si
// el comando falla.
func (l *LP) Print(ctx context.Context, queue, docName string, content []byte) error {
	if queue == "" {
		return fmt.Errorf("spool: cola sin nombre: %w", domain.ErrPrinterUnavailable)
	}

	tmp, err := os.CreateTemp("", "ticket-*.pdf")
	if err != nil {
		return fmt.Errorf("spool: archivo temporal: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("spool: escribir %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("spool: cerrar %s: %w", path, err)
	}

	cmd := exec.CommandContext(ctx, "lp", "-d", queue, "-t", docName, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("spool: lp -d %s: %s: %w", queue, string(out), domain.ErrPrinterUnavailable)
	}
	return nil
}
