package qr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitsinc/orderwise-printer/internal/domain"
	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/qr"
)

func fiscalDoc() *entity.InvoiceDocument {
	return &entity.InvoiceDocument{
		Company:  entity.Company{Name: "Lo de Carlitos", TaxID: "20304050607"},
		IsFiscal: true,
		ElectronicInvoice: entity.ElectronicInvoice{Fields: entity.FiscalFields{
			VoucherType:   entity.VoucherType{ID: 6, Desc: "Factura B"},
			PointOfSale:   3,
			ReceiptNumber: 1234,
			CAE:           "71234567890123",
			CAEExpiry:     "2026-09-09",
		}},
		Date: "2026-08-30",
		Client: entity.Client{
			DocumentType:   entity.DocumentType{ID: 96},
			DocumentNumber: "30111222",
		},
		Total: decimal.RequireFromString("304.50"),
	}
}

func TestEncode_GeneraRasterCuadrado(t *testing.T) {
	img, err := qr.NewEncoder(300).Encode(fiscalDoc())
	require.NoError(t, err)
	require.NotNil(t, img)

	bounds := img.Bounds()
	assert.Equal(t, 300, bounds.Dx(), "el raster respeta el lado pedido")
	assert.Equal(t, bounds.Dx(), bounds.Dy(), "el QR es cuadrado")
}

func TestEncode_CAENoNumerico_ErrEncoding(t *testing.T) {
	doc := fiscalDoc()
	doc.ElectronicInvoice.Fields.CAE = "pendiente"

	_, err := qr.NewEncoder(0).Encode(doc)
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestEncode_CUITAusente_ErrEncoding(t *testing.T) {
	doc := fiscalDoc()
	doc.Company.TaxID = ""

	_, err := qr.NewEncoder(0).Encode(doc)
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestEncode_SinDocumentoDelReceptor_ConsumidorFinal(t *testing.T) {
	doc := fiscalDoc()
	doc.Client = entity.Client{}

	img, err := qr.NewEncoder(0).Encode(doc)
	require.NoError(t, err, "un receptor sin identificar codifica como consumidor final")
	assert.NotNil(t, img)
}
