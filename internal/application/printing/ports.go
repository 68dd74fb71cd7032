package printing

import (
	"context"
	"image"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
)

// QREncoder construye el payload fiscal del documento y lo rasteriza como QR.
type QREncoder interface {
	Encode(doc *entity.InvoiceDocument) (image.Image, error)
}

// RawRenderer produce el buffer de bytes del ticket para el transporte de red.
// El QR no es representable en este modo y se omite.
type RawRenderer interface {
	Render(lines []string) []byte
}

// PageRenderer produce el trabajo de página (bytes del documento) para la
// cola de impresión local, con el QR incrustado si está presente.
type PageRenderer interface {
	Render(lines []string, qr image.Image) ([]byte, error)
}

// NetworkSender envía el contenido crudo a una impresora de red.
type NetworkSender interface {
	Send(ctx context.Context, host string, content []byte) error
}

// Spooler encola un trabajo en una cola de impresión local. La implementación
// garantiza la liberación de recursos aunque el trabajo falle a mitad de camino.
type Spooler interface {
	Print(ctx context.Context, queue, docName string, content []byte) error
}

// Connection operaciones del transporte pub/sub que el dispatcher necesita.
type Connection interface {
	Subscribe(channel string) error
}
