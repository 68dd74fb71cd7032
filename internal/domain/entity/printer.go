package entity

import "strings"

// PrinterKind transporte por el que se alcanza una impresora.
type PrinterKind string

const (
	PrinterNetwork PrinterKind = "network" // socket TCP crudo al puerto 9100
	PrinterLocal   PrinterKind = "local"   // cola de impresión del sistema operativo
)

// Printer registro de impresora descubierta al iniciar el agente.
type Printer struct {
	Name       string      `json:"name"`
	Identifier string      `json:"identifier"`
	Kind       PrinterKind `json:"type"`
}

// ClassifyDestination clasifica un identificador de destino: es NETWORK si y
// solo si, quitados todos los puntos, el resto son únicamente dígitos decimales
// (forma de IPv4 con puntos). Cualquier otra cosa, incluida la cadena vacía,
// es el nombre de una cola local.
func ClassifyDestination(identifier string) PrinterKind {
	stripped := strings.ReplaceAll(identifier, ".", "")
	if stripped == "" {
		return PrinterLocal
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return PrinterLocal
		}
	}
	return PrinterNetwork
}
