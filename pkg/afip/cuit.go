package afip

import (
	"fmt"
	"unicode"
)

// pesos del algoritmo módulo 11 del dígito verificador de CUIT/CUIL.
// Se aplican a los 10 primeros dígitos, de izquierda a derecha.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidateCUIT valida que el CUIT (con o sin guiones) tenga 11 dígitos y un
// dígito verificador correcto. Acepta "20-30405060-9" o "20304050609".
func ValidateCUIT(cuit string) error {
	digits := extractDigits(cuit)
	if len(digits) != 11 {
		return fmt.Errorf("afip: el CUIT debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	expected, err := computeCheckDigit(digits[:10])
	if err != nil {
		return err
	}
	if digits[10] != expected {
		return fmt.Errorf("afip: dígito verificador del CUIT inválido: esperado %c, recibido %c",
			expected, digits[10])
	}
	return nil
}

// computeCheckDigit calcula el dígito verificador para los 10 primeros dígitos.
// Un resto que produce verificador 10 no corresponde a ningún CUIT asignable.
func computeCheckDigit(base []byte) (byte, error) {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * cuitWeights[i]
	}
	check := (11 - sum%11) % 11
	if check == 10 {
		return 0, fmt.Errorf("afip: la base del CUIT no admite dígito verificador")
	}
	return byte('0' + check), nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
