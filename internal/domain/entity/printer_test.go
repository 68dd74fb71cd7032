package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
)

// TestClassifyDestination verifica la regla de clasificación de destinos:
// solo dígitos tras quitar los puntos => red; cualquier otra cosa => local.
func TestClassifyDestination(t *testing.T) {
	cases := []struct {
		identifier string
		want       entity.PrinterKind
	}{
		{"192.168.1.50", entity.PrinterNetwork},
		{"10.0.0.1", entity.PrinterNetwork},
		{"58.12", entity.PrinterNetwork}, // con forma de IP aunque incompleta
		{"EPSON_TM88", entity.PrinterLocal},
		{"Ticket-58mm", entity.PrinterLocal},
		{"192.168.1.x", entity.PrinterLocal},
		{"", entity.PrinterLocal},    // vacío nunca es red
		{"...", entity.PrinterLocal}, // solo puntos tampoco
	}

	for _, tc := range cases {
		got := entity.ClassifyDestination(tc.identifier)
		assert.Equal(t, tc.want, got, "identificador %q", tc.identifier)
	}
}
