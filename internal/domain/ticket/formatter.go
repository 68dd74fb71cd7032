// Package ticket arma la representación de texto de ancho fijo de un
// comprobante para impresoras térmicas de 58mm.
//
// El formateo es una función pura y determinista del documento: el mismo
// InvoiceDocument produce siempre la misma secuencia de líneas. Las secciones
// fiscales (IIBB, comprobante, CAE, QR) solo se emiten cuando el documento
// está marcado como facturación electrónica; un campo fiscal ausente se
// imprime como "---", nunca corta el formateo.
package ticket

import (
	"fmt"
	"strings"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
)

const (
	// DefaultWidth columnas imprimibles del papel de 58mm en modo texto.
	DefaultWidth = 32
	// WideWidth columnas imprimibles en modo gráfico (fuente más chica).
	WideWidth = 42

	// Placeholder para campos fiscales esperados pero ausentes.
	Placeholder = "---"

	// FinalConsumer leyenda cuando el comprobante no tiene receptor nominado.
	FinalConsumer = "CONSUMIDOR FINAL"

	separator = "--------------------------------" // 32 guiones
	feedLines = 3                                  // avance de papel antes del corte
)

// Ticket secuencia ordenada de líneas listas para renderizar, más la señal
// de si corresponde adjuntar el QR fiscal.
type Ticket struct {
	Lines   []string
	NeedsQR bool
}

// Text concatena las líneas con saltos de línea.
func (t *Ticket) Text() string {
	return strings.Join(t.Lines, "\n")
}

// Formatter arma tickets con un ancho de columna configurable.
type Formatter struct {
	width int
}

// NewFormatter construye un formateador. Un ancho <= 0 usa DefaultWidth.
func NewFormatter(width int) *Formatter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Formatter{width: width}
}

// Format genera las líneas del ticket a partir del documento.
func (f *Formatter) Format(doc *entity.InvoiceDocument) *Ticket {
	t := &Ticket{}
	fields := doc.Fiscal()

	// Encabezado
	t.add(f.width, "RAZON SOCIAL: "+strings.ToUpper(doc.Company.Name))
	t.add(f.width, doc.Client.Name)
	t.add(f.width, "DIRECCION: "+doc.Company.Address)
	t.add(f.width, "C.U.I.T.: "+doc.Company.TaxID.String())
	if doc.IsFiscal {
		t.add(f.width, "IIBB: "+orPlaceholder(fields.IncomeBracket))
		t.add(f.width, "INICIO ACT: "+orPlaceholder(fields.ActivityStartDate))
	}
	t.add(f.width, separator)

	// Identificación del comprobante fiscal
	if doc.IsFiscal {
		t.add(f.width, strings.ToUpper(fields.VoucherType.Desc))
		t.add(f.width, fmt.Sprintf("Codigo: %d", fields.VoucherType.ID))
		t.add(f.width, separator)
	}

	// Datos de la orden
	t.add(f.width, "NRO: "+doc.Code.String())
	t.add(f.width, "CLIENTE: "+clientDisplayName(doc.Client))
	t.add(f.width, "FECHA: "+doc.Date)
	t.add(f.width, "HORA: "+doc.Hour)
	t.add(f.width, "VENDEDOR: "+doc.Seller.FullName())
	t.add(f.width, "TIPO: "+doc.InvoiceType.Name)
	if doc.IsFiscal {
		t.add(f.width, "CONCEPTO: "+fields.Concept.Desc)
	}

	// Contexto salón: una línea por mesa
	for _, table := range doc.Tables {
		t.add(f.width, fmt.Sprintf("MESA: %s SALA %s", table.Name, table.LivingRoom.Name))
	}

	// Detalle
	t.add(f.width, separator)
	t.add(f.width, "Cant x P.Unit        IMPORTE")
	t.add(f.width, "Descripcion")
	t.add(f.width, separator)

	for _, item := range doc.Items {
		left := item.Pivot.Quantity.StringFixed(2) + " x " + item.Pivot.UnitPrice.StringFixed(2)
		t.add(f.width, fmt.Sprintf("%-19s%10s", left, item.Subtotal().StringFixed(2)))
		if item.Pivot.TaxRate != nil && doc.IsFiscal {
			t.add(f.width, "IVA "+item.Pivot.TaxRate.String()+"%")
		}
		t.add(f.width, strings.ToUpper(item.Name))
	}

	// Total
	t.add(f.width, separator)
	t.add(f.width, fmt.Sprintf("TOTAL: %22s", doc.Total.StringFixed(2)))
	t.add(f.width, separator)

	// Autorización electrónica
	if doc.IsFiscal {
		t.add(f.width, "CAE: "+orPlaceholder(fields.CAE.String()))
		t.add(f.width, "VTO: "+fields.CAEExpiry)
		t.NeedsQR = true
	}

	// Avance de papel para que el corte no pise lo impreso
	for i := 0; i < feedLines; i++ {
		t.Lines = append(t.Lines, "")
	}

	return t
}

// add agrega una línea aplicando corte duro al ancho de columna. Las líneas
// largas se parten en sublíneas completas, nunca se truncan.
func (t *Ticket) add(width int, line string) {
	runes := []rune(line)
	for len(runes) > width {
		t.Lines = append(t.Lines, string(runes[:width]))
		runes = runes[width:]
	}
	t.Lines = append(t.Lines, string(runes))
}

func clientDisplayName(c entity.Client) string {
	if name := c.FullName(); name != "" {
		return name
	}
	return FinalConsumer
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
