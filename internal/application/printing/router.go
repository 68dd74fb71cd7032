package printing

import (
	"context"
	"fmt"
	"image"

	"github.com/qbitsinc/orderwise-printer/internal/domain"
	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/domain/ticket"
	"github.com/qbitsinc/orderwise-printer/pkg/logger"
)

// Router clasifica el destino y despacha el ticket por el transporte que
// corresponde. No hay reintentos ni fallback cruzado entre transportes: cada
// fallo es terminal para el ticket en curso.
type Router struct {
	raw     RawRenderer
	page    PageRenderer
	network NetworkSender
	spool   Spooler
	docName string
	log     *logger.Logger
}

// NewRouter construye el router de entrega.
func NewRouter(raw RawRenderer, page PageRenderer, network NetworkSender, spool Spooler, docName string, log *logger.Logger) *Router {
	return &Router{
		raw:     raw,
		page:    page,
		network: network,
		spool:   spool,
		docName: docName,
		log:     log.Component("delivery"),
	}
}

// Deliver renderiza el ticket en el modo del transporte y lo envía.
func (r *Router) Deliver(ctx context.Context, tk *ticket.Ticket, qr image.Image, destination string) error {
	kind := entity.ClassifyDestination(destination)

	r.log.Debug().
		Str("destination", destination).
		Str("kind", string(kind)).
		Msg("enviando ticket")

	switch kind {
	case entity.PrinterNetwork:
		// Modo crudo: solo texto, el QR se omite.
		content := r.raw.Render(tk.Lines)
		if err := r.network.Send(ctx, destination, content); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrNetworkDelivery, destination, err)
		}
	default:
		content, err := r.page.Render(tk.Lines, qr)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrLocalDelivery, err)
		}
		if err := r.spool.Print(ctx, destination, r.docName, content); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrLocalDelivery, destination, err)
		}
	}

	r.log.Info().
		Str("destination", destination).
		Str("kind", string(kind)).
		Msg("ticket enviado")
	return nil
}
