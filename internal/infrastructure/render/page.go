package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimg "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/qbitsinc/orderwise-printer/internal/domain/ticket"
)

// Geometría del papel térmico de 58mm. El ancho imprimible real ronda los
// 48mm (384 puntos a 203dpi); el paso de línea acomoda la Courier de 7pt.
const (
	paperWidthMM  = 58.0
	marginMM      = 3.0
	linePitchMM   = 3.2
	qrBlockMM     = 42.0
	qrPaddingMM   = 3.0
	bottomSlackMM = 6.0
)

// PageRenderer modo gráfico: arma un documento de página angosta con las
// líneas del ticket a paso fijo y el QR centrado debajo del texto.
type PageRenderer struct {
	qrSizePx int
}

// NewPageRenderer construye el renderizador de página. qrSizePx es el lado
// al que se reescala el QR antes de incrustarlo.
func NewPageRenderer(qrSizePx int) *PageRenderer {
	if qrSizePx <= 0 {
		qrSizePx = 300
	}
	return &PageRenderer{qrSizePx: qrSizePx}
}

// Render produce los bytes del trabajo de página (PDF apto para la cola CUPS).
// qr puede ser nil; las líneas más largas que el ancho gráfico se parten en
// sublíneas, cada una consume un paso de línea.
func (r *PageRenderer) Render(lines []string, qr image.Image) ([]byte, error) {
	wrapped := wrapAll(lines, ticket.WideWidth)

	height := 2*marginMM + float64(len(wrapped))*linePitchMM + bottomSlackMM
	if qr != nil {
		height += qrBlockMM + qrPaddingMM
	}

	cfg := config.NewBuilder().
		WithDimensions(paperWidthMM, height).
		WithLeftMargin(marginMM).WithRightMargin(marginMM).
		WithTopMargin(marginMM).WithBottomMargin(0).
		WithDefaultFont(&props.Font{Family: fontfamily.Courier, Size: 7}).
		Build()

	m := maroto.New(cfg)

	for _, line := range wrapped {
		m.AddRows(row.New(linePitchMM).Add(col.New(12).Add(
			text.New(line, props.Text{Align: alignFor(line)}),
		)))
	}

	if qr != nil {
		encoded, err := encodePNG(imaging.Resize(qr, r.qrSizePx, r.qrSizePx, imaging.NearestNeighbor))
		if err != nil {
			return nil, err
		}
		m.AddRows(row.New(qrPaddingMM))
		m.AddRows(row.New(qrBlockMM).Add(col.New(12).Add(
			marotoimg.NewFromBytes(encoded, extension.Png, props.Rect{
				Center:  true,
				Percent: 90,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: generar página: %w", err)
	}
	return doc.GetBytes(), nil
}

// alignFor centra los encabezados de sección; el resto va a la izquierda.
func alignFor(line string) align.Type {
	if strings.HasPrefix(strings.TrimSpace(line), "Factura") {
		return align.Center
	}
	return align.Left
}

// wrapAll aplica corte duro al ancho gráfico. Las líneas del formateador ya
// vienen cortadas al ancho de texto, pero el destino puede haber formateado
// más ancho que la página.
func wrapAll(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		runes := []rune(line)
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: codificar QR: %w", err)
	}
	return buf.Bytes(), nil
}
