package sri

import (
	"fmt"
	"unicode"
)

// Longitud de la clave de acceso SRI: 48 dígitos de datos + 1 dígito
// verificador. Composición (Ficha Técnica de Comprobantes Electrónicos):
// fecha (8) + tipo comprobante (2) + RUC (13) + ambiente (1) + serie (6) +
// secuencial (9) + código numérico (8) + tipo emisión (1) + verificador (1).
const ClaveAccesoLen = 49

// pesos cíclicos 2..7 del módulo 11, aplicados de derecha a izquierda sobre
// los 48 primeros dígitos de la clave de acceso.
var claveWeights = [6]int{2, 3, 4, 5, 6, 7}

// ValidateClaveAcceso valida que la clave de acceso tenga 49 dígitos y un
// dígito verificador correcto según el módulo 11 del SRI.
func ValidateClaveAcceso(clave string) error {
	digits := extractDigits(clave)
	if len(digits) != ClaveAccesoLen {
		return fmt.Errorf("sri: la clave de acceso debe tener %d dígitos, se encontraron %d", ClaveAccesoLen, len(digits))
	}
	expected := checkDigitMod11(digits[:ClaveAccesoLen-1])
	if digits[ClaveAccesoLen-1] != expected {
		return fmt.Errorf("sri: dígito verificador de la clave de acceso inválido: esperado %c, recibido %c", expected, digits[ClaveAccesoLen-1])
	}
	return nil
}

// ComputeClaveAccesoCheckDigit calcula el dígito verificador para los 48
// primeros dígitos de la clave de acceso.
func ComputeClaveAccesoCheckDigit(clave string) (byte, error) {
	digits := extractDigits(clave)
	if len(digits) < ClaveAccesoLen-1 {
		return 0, fmt.Errorf("sri: se requieren %d dígitos para calcular el verificador, se encontraron %d", ClaveAccesoLen-1, len(digits))
	}
	return checkDigitMod11(digits[:ClaveAccesoLen-1]), nil
}

// checkDigitMod11 aplica módulo 11 con pesos cíclicos de derecha a
// izquierda. Resto 11 -> 0, resto 10 -> 1 (regla SRI).
func checkDigitMod11(digits []byte) byte {
	var sum int
	for i := 0; i < len(digits); i++ {
		d := digits[len(digits)-1-i]
		sum += int(d-'0') * claveWeights[i%len(claveWeights)]
	}
	r := 11 - (sum % 11)
	switch r {
	case 11:
		r = 0
	case 10:
		r = 1
	}
	return byte('0' + r)
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
