package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son terminales para el ticket/evento en curso: se loguean y se descartan,
// el proceso sigue escuchando eventos.
var (
	ErrEncoding           = errors.New("payload del QR fiscal malformado")
	ErrMalformedInvoice   = errors.New("factura con campos numéricos inválidos")
	ErrPrinterUnavailable = errors.New("impresora o cola de impresión no disponible")
	ErrNetworkDelivery    = errors.New("fallo de envío por red a la impresora")
	ErrLocalDelivery      = errors.New("fallo de envío a la cola de impresión local")
	ErrEventParse         = errors.New("evento con payload inválido")
)
