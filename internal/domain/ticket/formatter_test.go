package ticket_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/domain/ticket"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// buildDoc arma un documento de prueba no fiscal con dos líneas de detalle.
func buildDoc() *entity.InvoiceDocument {
	iva := dec("21")
	return &entity.InvoiceDocument{
		Company: entity.Company{
			Name:    "Lo de Carlitos",
			Address: "Av. Corrientes 1234",
			TaxID:   "20304050607",
		},
		Code: "0001-00001234",
		Date: "2026-08-30",
		Hour: "21:15",
		Client: entity.Client{
			Name:           "Juan",
			LastName:       "Perez",
			DocumentType:   entity.DocumentType{ID: 96},
			DocumentNumber: "30111222",
		},
		Seller:      entity.Seller{Name: "Ana", LastName: "Gomez"},
		InvoiceType: entity.InvoiceType{Name: "Mostrador"},
		Items: []entity.LineItem{
			{Name: "Milanesa napolitana", Pivot: entity.Pivot{
				Quantity: dec("2"), UnitPrice: dec("150.5"), TaxRate: &iva,
			}},
			{Name: "Gaseosa", Pivot: entity.Pivot{
				Quantity: dec("1"), UnitPrice: dec("3.5"),
			}},
		},
		Total: dec("304.50"),
	}
}

// buildFiscalDoc arma el mismo documento marcado como factura electrónica
// con todos los campos AFIP presentes.
func buildFiscalDoc() *entity.InvoiceDocument {
	doc := buildDoc()
	doc.IsFiscal = true
	doc.ElectronicInvoice = entity.ElectronicInvoice{
		Fields: entity.FiscalFields{
			IncomeBracket:     "901-123456-7",
			ActivityStartDate: "2019-03-01",
			VoucherType:       entity.VoucherType{ID: 6, Desc: "Factura B"},
			PointOfSale:       3,
			ReceiptNumber:     1234,
			Concept:           entity.ConceptType{Desc: "Productos"},
			CAE:               "71234567890123",
			CAEExpiry:         "2026-09-09",
		},
	}
	return doc
}

func countLinesWithPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Gating fiscal
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_NoFiscal_SinSeccionesFiscales(t *testing.T) {
	f := ticket.NewFormatter(0)
	tk := f.Format(buildDoc())

	assert.False(t, tk.NeedsQR, "un documento no fiscal nunca pide QR")
	for _, l := range tk.Lines {
		assert.NotContains(t, l, "CAE", "no debe haber línea de CAE: %q", l)
		assert.NotContains(t, l, "IIBB", "no debe haber línea de IIBB: %q", l)
		assert.NotContains(t, l, "Codigo:", "no debe haber tipo de comprobante: %q", l)
		assert.NotContains(t, l, "IVA", "sin facturación no se detalla IVA: %q", l)
	}
}

func TestFormat_Fiscal_SeccionesCompletas(t *testing.T) {
	f := ticket.NewFormatter(0)
	tk := f.Format(buildFiscalDoc())

	assert.True(t, tk.NeedsQR, "un documento fiscal completo pide QR")
	assert.Equal(t, 1, countLinesWithPrefix(tk.Lines, "CAE: "), "exactamente una línea de CAE")
	assert.Contains(t, tk.Lines, "CAE: 71234567890123")
	assert.Contains(t, tk.Lines, "VTO: 2026-09-09")
	assert.Contains(t, tk.Lines, "FACTURA B")
	assert.Contains(t, tk.Lines, "Codigo: 6")
	assert.Contains(t, tk.Lines, "IIBB: 901-123456-7")
	assert.Contains(t, tk.Lines, "CONCEPTO: Productos")
	assert.Contains(t, tk.Lines, "IVA 21%", "la alícuota se detalla solo en modo fiscal")
}

func TestFormat_Fiscal_CamposAusentesConPlaceholder(t *testing.T) {
	doc := buildFiscalDoc()
	doc.ElectronicInvoice.Fields.IncomeBracket = ""
	doc.ElectronicInvoice.Fields.CAE = ""

	tk := ticket.NewFormatter(0).Format(doc)

	assert.Contains(t, tk.Lines, "IIBB: ---", "IIBB ausente se imprime como ---")
	assert.Contains(t, tk.Lines, "CAE: ---", "CAE ausente se imprime como ---")
	assert.True(t, tk.NeedsQR)
}

// ──────────────────────────────────────────────────────────────────────────────
// Layout de columnas
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_LineasDeDetalle_ColumnasAlineadas(t *testing.T) {
	tk := ticket.NewFormatter(0).Format(buildDoc())

	// 2 x 150.5 => subtotal 301.00; 1 x 3.5 => subtotal 3.50
	require.Contains(t, tk.Lines, "2.00 x 150.50          301.00")
	require.Contains(t, tk.Lines, "1.00 x 3.50              3.50")

	// El borde derecho del importe queda en la misma columna (19+10)
	// sin importar la cantidad de dígitos de cada línea.
	for _, l := range tk.Lines {
		if strings.Contains(l, " x ") && !strings.Contains(l, "Cant") {
			assert.Len(t, l, 29, "línea de detalle con ancho fijo: %q", l)
		}
	}
}

func TestFormat_TotalJustificadoEnCampoFijo(t *testing.T) {
	doc := buildDoc()
	doc.Total = dec("12345.6")

	tk := ticket.NewFormatter(0).Format(doc)

	assert.Contains(t, tk.Lines, "TOTAL:               12345.60",
		"el total lleva dos decimales justificado a la derecha en 22 columnas")
}

func TestFormat_ClienteAusente_ConsumidorFinal(t *testing.T) {
	doc := buildDoc()
	doc.Client = entity.Client{}

	tk := ticket.NewFormatter(0).Format(doc)

	assert.Contains(t, tk.Lines, "CLIENTE: CONSUMIDOR FINAL")
}

func TestFormat_Mesas_UnaLineaPorMesa(t *testing.T) {
	doc := buildDoc()
	doc.Tables = []entity.Table{
		{Name: "4", LivingRoom: entity.LivingRoom{Name: "Terraza"}},
		{Name: "7", LivingRoom: entity.LivingRoom{Name: "Principal"}},
	}

	tk := ticket.NewFormatter(0).Format(doc)

	assert.Contains(t, tk.Lines, "MESA: 4 SALA Terraza")
	assert.Contains(t, tk.Lines, "MESA: 7 SALA Principal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades generales
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_Idempotente(t *testing.T) {
	f := ticket.NewFormatter(0)
	doc := buildFiscalDoc()

	a := f.Format(doc)
	b := f.Format(doc)

	assert.Equal(t, a.Lines, b.Lines, "el mismo documento produce siempre las mismas líneas")
	assert.Equal(t, a.NeedsQR, b.NeedsQR)
}

func TestFormat_LineasLargasSeParten_NoSeTruncan(t *testing.T) {
	doc := buildDoc()
	doc.Company.Name = "Parrilla y Restaurante El Rincon de los Hermanos Fernandez"

	tk := ticket.NewFormatter(0).Format(doc)

	joined := strings.Join(tk.Lines, "")
	assert.Contains(t, joined, "EL RINCON DE LOS HERMANOS FERNANDEZ",
		"el contenido completo sobrevive al corte de línea")
	for _, l := range tk.Lines {
		assert.LessOrEqual(t, len([]rune(l)), ticket.DefaultWidth,
			"ninguna línea supera el ancho de columna: %q", l)
	}
}

func TestFormat_DocumentoVacio_NoPaniquea(t *testing.T) {
	tk := ticket.NewFormatter(0).Format(&entity.InvoiceDocument{})

	require.NotEmpty(t, tk.Lines, "un documento vacío igual produce un ticket")
	assert.False(t, tk.NeedsQR)
	assert.Contains(t, tk.Lines, "CLIENTE: CONSUMIDOR FINAL")
	assert.Contains(t, tk.Lines, "TOTAL:                   0.00")
}

func TestFormat_TerminaConAvanceDePapel(t *testing.T) {
	tk := ticket.NewFormatter(0).Format(buildDoc())

	n := len(tk.Lines)
	require.GreaterOrEqual(t, n, 3)
	assert.Equal(t, []string{"", "", ""}, tk.Lines[n-3:],
		"el ticket cierra con tres líneas en blanco para el corte")
}
