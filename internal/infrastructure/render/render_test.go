package render_test

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbitsinc/orderwise-printer/internal/infrastructure/render"
)

// ──────────────────────────────────────────────────────────────────────────────
// Modo crudo
// ──────────────────────────────────────────────────────────────────────────────

func TestTextRenderer_UneConSaltosYNormaliza(t *testing.T) {
	r := render.NewTextRenderer()

	out := r.Render([]string{"Código: 6", "TOTAL:", "", "", ""})

	assert.Equal(t, "Codigo: 6\nTOTAL:\n\n\n", string(out),
		"líneas unidas con \\n, acentos normalizados y avance de papel intacto")
}

func TestTextRenderer_Deterministico(t *testing.T) {
	r := render.NewTextRenderer()
	lines := []string{"RAZON SOCIAL: AÑEJO", "DIRECCION: Perú 345"}

	assert.Equal(t, r.Render(lines), r.Render(lines))
	assert.Equal(t, "RAZON SOCIAL: ANEJO\nDIRECCION: Peru 345", string(r.Render(lines)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo gráfico
// ──────────────────────────────────────────────────────────────────────────────

func ticketLines() []string {
	return []string{
		"RAZON SOCIAL: LO DE CARLITOS",
		"--------------------------------",
		"Factura B",
		"TOTAL:                 304.50",
		"", "", "",
	}
}

func TestPageRenderer_SinQR(t *testing.T) {
	r := render.NewPageRenderer(0)

	out, err := r.Render(ticketLines(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"),
		"el trabajo de página es un documento PDF para la cola")
}

func TestPageRenderer_ConQR(t *testing.T) {
	r := render.NewPageRenderer(120)
	qr := image.NewRGBA(image.Rect(0, 0, 64, 64))

	out, err := r.Render(ticketLines(), qr)
	require.NoError(t, err)

	sinQR, err := render.NewPageRenderer(120).Render(ticketLines(), nil)
	require.NoError(t, err)
	assert.Greater(t, len(out), len(sinQR), "el QR incrustado agranda el documento")
}

func TestPageRenderer_LineasLargasNoFallan(t *testing.T) {
	r := render.NewPageRenderer(0)
	long := strings.Repeat("PROMO 2x1 EN EMPANADAS ", 8)

	out, err := r.Render([]string{long}, nil)
	require.NoError(t, err, "las líneas más anchas que la página se parten, no fallan")
	assert.NotEmpty(t, out)
}
