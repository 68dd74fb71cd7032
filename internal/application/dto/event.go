// Package dto define los mensajes que viajan por el canal pub/sub y el
// payload decodificado de una orden nueva.
package dto

import (
	"bytes"
	"encoding/json"
)

// Frame mensaje crudo del protocolo Pusher: {event, data}. En eventos de
// canal, data puede llegar como objeto o como string con JSON embebido.
type Frame struct {
	Event   string          `json:"event"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SubscribePayload cuerpo del pedido de suscripción a un canal.
type SubscribePayload struct {
	Channel string `json:"channel"`
}

// OrderPayload datos decodificados del evento de nueva orden. La factura se
// mantiene cruda para que un documento malformado se distinga de un payload
// ilegible.
type OrderPayload struct {
	Invoice        json.RawMessage `json:"invoice"`
	Printer        DestinationRef  `json:"printer"`
	PrinterAddress string          `json:"printer_address"`
}

// Destination devuelve el destino explícito del payload, o vacío si no vino.
// El backend manda a veces un objeto printer {name} y a veces el campo plano
// printer_address; ambas formas se aceptan.
func (p *OrderPayload) Destination() string {
	if p.Printer.Name != "" {
		return p.Printer.Name
	}
	return p.PrinterAddress
}

// HasInvoice indica si el payload trae una factura.
func (p *OrderPayload) HasInvoice() bool {
	trimmed := bytes.TrimSpace(p.Invoice)
	return len(trimmed) > 0 && string(trimmed) != "null"
}

// DestinationRef identificador de impresora que acepta en el JSON tanto un
// string plano como un objeto {name}.
type DestinationRef struct {
	Name string
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *DestinationRef) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &d.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	d.Name = obj.Name
	return nil
}

// NormalizeData devuelve el cuerpo del evento listo para decodificar: si data
// llegó como string con JSON embebido lo desenvuelve, si llegó como objeto lo
// devuelve tal cual.
func NormalizeData(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return trimmed, nil
}
