package entity

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexString acepta en el JSON de entrada tanto un string como un número.
// El backend serializa algunos campos (CUIT, CAE, número de documento) a veces
// como string y a veces como número según la versión del API.
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String devuelve el valor como string plano.
func (f FlexString) String() string { return string(f) }

// Company datos de la empresa emisora incluidos en la factura.
type Company struct {
	Name    string     `json:"name"`
	Address string     `json:"address"`
	TaxID   FlexString `json:"document_number"` // CUIT
}

// VoucherType tipo de comprobante AFIP (1=Factura A, 6=Factura B, 11=Factura C...).
type VoucherType struct {
	ID   int    `json:"Id"`
	Desc string `json:"Desc"`
}

// ConceptType concepto del comprobante (Productos, Servicios, ...).
type ConceptType struct {
	Desc string `json:"Desc"`
}

// FiscalFields campos de la factura electrónica AFIP. Solo tienen sentido
// cuando InvoiceDocument.IsFiscal es true; ausentes se imprimen como "---".
type FiscalFields struct {
	IncomeBracket     string      `json:"income_brut"`
	ActivityStartDate string      `json:"activity_start_date"`
	VoucherType       VoucherType `json:"voucher_type"`
	PointOfSale       int         `json:"point_of_sale"`
	ReceiptNumber     int         `json:"cbte_hasta"`
	Concept           ConceptType `json:"concept_type"`
	CAE               FlexString  `json:"cae"`
	CAEExpiry         string      `json:"caef_ch_vto"`
}

// ElectronicInvoice envoltorio del backend para los campos fiscales.
type ElectronicInvoice struct {
	Fields FiscalFields `json:"fields"`
}

// DocumentType tipo de documento del receptor según catálogo AFIP
// (80=CUIT, 96=DNI, 99=Consumidor Final).
type DocumentType struct {
	ID int `json:"Id"`
}

// Client receptor del comprobante.
type Client struct {
	Name           string       `json:"name"`
	LastName       string       `json:"last_name"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber FlexString   `json:"document_number"`
}

// FullName nombre y apellido concatenados, sin espacios sobrantes.
func (c Client) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.Name) + " " + strings.TrimSpace(c.LastName))
}

// Seller vendedor que emitió la orden.
type Seller struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// FullName nombre y apellido concatenados, sin espacios sobrantes.
func (s Seller) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(s.Name) + " " + strings.TrimSpace(s.LastName))
}

// InvoiceType tipo de venta (mostrador, delivery, mesa...).
type InvoiceType struct {
	Name string `json:"name"`
}

// LivingRoom sala del local (contexto salón).
type LivingRoom struct {
	Name string `json:"name"`
}

// Table mesa asociada a la orden.
type Table struct {
	Name       string     `json:"name"`
	LivingRoom LivingRoom `json:"living_room"`
}

// Pivot cantidades y precios de una línea (tabla pivote del backend).
// Los montos pueden llegar como número o como string; decimal acepta ambos.
type Pivot struct {
	Quantity  decimal.Decimal  `json:"amount"`
	UnitPrice decimal.Decimal  `json:"price"`
	TaxRate   *decimal.Decimal `json:"taxe"` // alícuota IVA en %, nil si no aplica
}

// LineItem línea de detalle de la factura.
type LineItem struct {
	Name  string `json:"name"`
	Pivot Pivot  `json:"pivot"`
}

// Subtotal cantidad por precio unitario.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Pivot.Quantity.Mul(li.Pivot.UnitPrice)
}

// InvoiceDocument documento de factura/orden recibido por el canal pub/sub.
// Es inmutable: cada evento produce un documento que se consume una sola vez;
// nada se persiste entre eventos.
type InvoiceDocument struct {
	Company           Company           `json:"company"`
	IsFiscal          bool              `json:"billing"`
	ElectronicInvoice ElectronicInvoice `json:"electronic_invoice"`
	Code              FlexString        `json:"code"`
	Date              string            `json:"date"`
	Hour              string            `json:"hour"`
	Client            Client            `json:"client"`
	Seller            Seller            `json:"seller"`
	InvoiceType       InvoiceType       `json:"invoice_type"`
	Tables            []Table           `json:"tables"`
	Items             []LineItem        `json:"products"`
	Total             decimal.Decimal   `json:"total"`
}

// Fiscal devuelve los campos fiscales. El invariante del dominio es que solo
// se consultan cuando IsFiscal es true; aun así nunca es nil.
func (d *InvoiceDocument) Fiscal() FiscalFields {
	return d.ElectronicInvoice.Fields
}
