// Package afip contiene catálogos, validaciones y el armado del payload de QR
// fiscal según la normativa AFIP (Argentina): RG 4892/2020 para el QR de
// comprobantes electrónicos y el algoritmo módulo 11 del dígito verificador
// de CUIT.
package afip

// =============================================================================
// Tipos de comprobante (tabla de comprobantes AFIP, campo tipoCmp del QR)
// =============================================================================

const (
	VoucherFacturaA     = 1
	VoucherNotaDebitoA  = 2
	VoucherNotaCreditoA = 3
	VoucherFacturaB     = 6
	VoucherNotaDebitoB  = 7
	VoucherNotaCreditoB = 8
	VoucherFacturaC     = 11
	VoucherNotaDebitoC  = 12
	VoucherNotaCreditoC = 13
	VoucherFacturaM     = 51
	VoucherTiqueFactura = 81
)

// VoucherTypeDesc descripción corta por código de comprobante.
var VoucherTypeDesc = map[int]string{
	VoucherFacturaA:     "Factura A",
	VoucherNotaDebitoA:  "Nota de Debito A",
	VoucherNotaCreditoA: "Nota de Credito A",
	VoucherFacturaB:     "Factura B",
	VoucherNotaDebitoB:  "Nota de Debito B",
	VoucherNotaCreditoB: "Nota de Credito B",
	VoucherFacturaC:     "Factura C",
	VoucherNotaDebitoC:  "Nota de Debito C",
	VoucherNotaCreditoC: "Nota de Credito C",
	VoucherFacturaM:     "Factura M",
	VoucherTiqueFactura: "Tique Factura",
}

// =============================================================================
// Tipos de documento del receptor (campo tipoDocRec del QR)
// =============================================================================

const (
	DocTypeCUIT             = 80
	DocTypeCUIL             = 86
	DocTypeDNI              = 96
	DocTypeConsumidorFinal  = 99 // sin identificar / consumidor final
)

// =============================================================================
// Otros códigos fijos del QR
// =============================================================================

const (
	CurrencyPeso = "PES" // moneda de curso legal

	AuthTypeCAE  = "E" // comprobante autorizado por CAE
	AuthTypeCAEA = "A" // comprobante autorizado por CAEA
)
