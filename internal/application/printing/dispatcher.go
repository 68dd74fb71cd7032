package printing

import (
	"context"
	"encoding/json"
	"image"

	"github.com/google/uuid"

	"github.com/qbitsinc/orderwise-printer/internal/application/dto"
	"github.com/qbitsinc/orderwise-printer/internal/domain"
	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/domain/ticket"
	"github.com/qbitsinc/orderwise-printer/pkg/logger"
)

// eventConnectionEstablished notificación de conexión del protocolo Pusher.
const eventConnectionEstablished = "pusher:connection_established"

// estados del dispatcher sobre el ciclo de vida de la conexión pub/sub.
type state int

const (
	awaitingEstablished state = iota
	subscribed
)

// DeliveryRouter es lo que el dispatcher necesita del router de entrega.
type DeliveryRouter interface {
	Deliver(ctx context.Context, tk *ticket.Ticket, qr image.Image, destination string) error
}

// Dispatcher consume los frames del canal pub/sub de a uno: suscribe el canal
// al establecerse la conexión y, por cada evento de orden nueva, corre la
// cadena formateo -> QR -> render -> entrega hasta completarla antes de tomar
// el siguiente. Cualquier error de un evento se loguea y se descarta sin
// afectar a los siguientes.
type Dispatcher struct {
	channel    string
	orderEvent string // nombre completo: <evento>_<cuit>
	printers   []entity.Printer
	formatter  *ticket.Formatter
	qr         QREncoder
	router     DeliveryRouter
	log        *logger.Logger
	state      state
}

// NewDispatcher construye el dispatcher. printers es la lista de impresoras
// conocidas al arrancar; la primera es el destino por defecto.
func NewDispatcher(
	channel, eventName, cuit string,
	printers []entity.Printer,
	formatter *ticket.Formatter,
	qr QREncoder,
	router DeliveryRouter,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		channel:    channel,
		orderEvent: eventName + "_" + cuit,
		printers:   printers,
		formatter:  formatter,
		qr:         qr,
		router:     router,
		log:        log.Component("dispatcher"),
	}
}

// HandleMessage procesa un frame crudo del transporte. Nunca paniquea ni corta
// la conexión: un payload malformado se loguea y el loop sigue.
func (d *Dispatcher) HandleMessage(ctx context.Context, conn Connection, raw []byte) {
	var frame dto.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		d.log.Warn().Err(err).Msg(domain.ErrEventParse.Error())
		return
	}

	switch frame.Event {
	case eventConnectionEstablished:
		if err := conn.Subscribe(d.channel); err != nil {
			d.log.Error().Err(err).Str("channel", d.channel).Msg("suscripción al canal")
			return
		}
		d.state = subscribed
		d.log.Info().Str("channel", d.channel).Msg("suscripto al canal de comandas")

	case d.orderEvent:
		if d.state != subscribed {
			d.log.Debug().Str("event", frame.Event).Msg("evento de orden antes de suscribir, ignorado")
			return
		}
		d.handleOrder(ctx, frame.Data)

	default:
		d.log.Debug().Str("event", frame.Event).Msg("evento ignorado")
	}
}

// handleOrder decodifica el payload de la orden y la imprime.
func (d *Dispatcher) handleOrder(ctx context.Context, raw json.RawMessage) {
	log := d.log.WithStr("ticket_id", uuid.NewString())

	data, err := dto.NormalizeData(raw)
	if err != nil {
		log.Warn().Err(err).Str("event", d.orderEvent).Msg(domain.ErrEventParse.Error())
		return
	}
	var payload dto.OrderPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Warn().Err(err).Str("event", d.orderEvent).Msg(domain.ErrEventParse.Error())
		return
	}
	if !payload.HasInvoice() {
		log.Warn().Str("event", d.orderEvent).Msg("evento sin factura, descartado")
		return
	}

	var doc entity.InvoiceDocument
	if err := json.Unmarshal(payload.Invoice, &doc); err != nil {
		log.Warn().Err(err).Str("event", d.orderEvent).Msg(domain.ErrMalformedInvoice.Error())
		return
	}

	destination := payload.Destination()
	if destination == "" {
		if len(d.printers) == 0 {
			log.Warn().Str("event", d.orderEvent).
				Msg("sin destino y sin impresoras conocidas, evento descartado")
			return
		}
		destination = d.printers[0].Identifier
	}

	tk := d.formatter.Format(&doc)

	var qrImg image.Image
	if tk.NeedsQR {
		img, err := d.qr.Encode(&doc)
		if err != nil {
			log.Warn().Err(err).Str("destination", destination).Msg("codificación del QR fiscal")
			return
		}
		qrImg = img
	}

	if err := d.router.Deliver(ctx, tk, qrImg, destination); err != nil {
		log.Warn().Err(err).
			Str("event", d.orderEvent).
			Str("destination", destination).
			Msg("entrega del ticket")
		return
	}

	log.Info().
		Str("destination", destination).
		Bool("fiscal", doc.IsFiscal).
		Int("lines", len(tk.Lines)).
		Msg("ticket procesado")
}
