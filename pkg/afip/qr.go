package afip

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// QRBaseURL autoridad fija del servicio de verificación de comprobantes.
const QRBaseURL = "https://servicioscf.afip.gob.ar/publico/comprobantes/cae.aspx"

// QRVersion versión vigente del formato del payload (RG 4892/2020).
const QRVersion = 1

// QRPayload datos del comprobante que viajan dentro del QR fiscal.
// El orden de los campos determina el orden de claves del JSON serializado;
// no se reordena para que la URL resultante sea estable.
type QRPayload struct {
	Ver        int     `json:"ver"`
	Fecha      string  `json:"fecha"`
	CUIT       int64   `json:"cuit"`
	PtoVta     int     `json:"ptoVta"`
	TipoCmp    int     `json:"tipoCmp"`
	NroCmp     int     `json:"nroCmp"`
	Importe    float64 `json:"importe"`
	Moneda     string  `json:"moneda"`
	TipoDocRec int     `json:"tipoDocRec"`
	NroDocRec  int64   `json:"nroDocRec"`
	TipoCodAut string  `json:"tipoCodAut"`
	Ctz        int     `json:"ctz"`
	CodAut     int64   `json:"codAut"`
}

// VerificationURL serializa el payload como JSON compacto, lo codifica en
// base64 estándar y lo adjunta como parámetro p de la URL de verificación.
func (p *QRPayload) VerificationURL() (string, error) {
	if p.CUIT <= 0 {
		return "", fmt.Errorf("afip: el payload del QR requiere CUIT")
	}
	if p.CodAut <= 0 {
		return "", fmt.Errorf("afip: el payload del QR requiere código de autorización")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("afip: serializar payload del QR: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	return QRBaseURL + "?p=" + encoded, nil
}
