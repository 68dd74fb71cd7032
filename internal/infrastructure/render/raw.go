// Package render produce las dos representaciones físicas del ticket: bytes
// crudos UTF-8 para impresoras de red en el puerto 9100 y un trabajo de
// página de 58mm para la cola local, con el QR fiscal incrustado.
package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextRenderer modo crudo: concatena las líneas con saltos de línea y las
// normaliza a ASCII básico. Muchas térmicas de red no traen la página de
// códigos latina cargada, así que los acentos se descomponen y se descartan.
type TextRenderer struct{}

// NewTextRenderer construye el renderizador de texto crudo.
func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

// Render devuelve el buffer listo para escribir en el socket.
func (*TextRenderer) Render(lines []string) []byte {
	return []byte(stripDiacritics(strings.Join(lines, "\n")))
}

// stripDiacritics descompone los caracteres acentuados y elimina las marcas
// combinantes: "Código" -> "Codigo", "ñ" -> "n".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
