// Package qr rasteriza el QR fiscal de un comprobante electrónico.
package qr

import (
	"fmt"
	"image"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/qbitsinc/orderwise-printer/internal/domain"
	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
	"github.com/qbitsinc/orderwise-printer/pkg/afip"
)

const defaultSize = 300

// Encoder arma el payload AFIP del documento y lo codifica como imagen QR en
// memoria. No toca disco ni tiene otros efectos: solo computa.
type Encoder struct {
	size int
}

// NewEncoder construye el codificador. size es el lado en píxeles del raster;
// <= 0 usa el valor por defecto.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = defaultSize
	}
	return &Encoder{size: size}
}

// Encode construye la URL de verificación y la rasteriza. El llamador ya
// verificó que el documento es fiscal; un campo numérico ausente o ilegible
// es un error terminal para el ticket.
func (e *Encoder) Encode(doc *entity.InvoiceDocument) (image.Image, error) {
	payload, err := buildPayload(doc)
	if err != nil {
		return nil, err
	}
	url, err := payload.VerificationURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: rasterizar: %v", domain.ErrEncoding, err)
	}
	return code.Image(e.size), nil
}

// buildPayload arma el payload del QR según RG 4892/2020.
func buildPayload(doc *entity.InvoiceDocument) (*afip.QRPayload, error) {
	fields := doc.Fiscal()

	cuit, err := parseRequired("cuit", doc.Company.TaxID.String())
	if err != nil {
		return nil, err
	}
	codAut, err := parseRequired("cae", fields.CAE.String())
	if err != nil {
		return nil, err
	}

	// Receptor sin identificar: tipo 99 y documento 0 (consumidor final).
	docType := doc.Client.DocumentType.ID
	var docNumber int64
	if raw := doc.Client.DocumentNumber.String(); raw != "" {
		docNumber, err = parseRequired("nroDocRec", raw)
		if err != nil {
			return nil, err
		}
	} else {
		docType = afip.DocTypeConsumidorFinal
	}
	if docType == 0 {
		docType = afip.DocTypeConsumidorFinal
	}

	fecha := doc.Date
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}

	return &afip.QRPayload{
		Ver:        afip.QRVersion,
		Fecha:      fecha,
		CUIT:       cuit,
		PtoVta:     fields.PointOfSale,
		TipoCmp:    fields.VoucherType.ID,
		NroCmp:     fields.ReceiptNumber,
		Importe:    doc.Total.InexactFloat64(),
		Moneda:     afip.CurrencyPeso,
		TipoDocRec: docType,
		NroDocRec:  docNumber,
		TipoCodAut: afip.AuthTypeCAE,
		Ctz:        1,
		CodAut:     codAut,
	}, nil
}

func parseRequired(field, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: campo %s no numérico: %q", domain.ErrEncoding, field, raw)
	}
	return n, nil
}
