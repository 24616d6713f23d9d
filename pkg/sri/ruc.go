package sri

import "fmt"

// Pesos módulo 11 para RUC de sociedades privadas (tercer dígito 9),
// aplicados a los 9 primeros dígitos.
var rucSociedadWeights = [9]int{4, 3, 2, 7, 6, 5, 4, 3, 2}

// Pesos módulo 11 para RUC de entidades públicas (tercer dígito 6),
// aplicados a los 8 primeros dígitos.
var rucPublicoWeights = [8]int{3, 2, 7, 6, 5, 4, 3, 2}

// ValidateRUC valida un RUC ecuatoriano de 13 dígitos: provincia, tipo de
// contribuyente según el tercer dígito, dígito verificador y código de
// establecimiento.
//
//	tercer dígito 0-5: persona natural (cédula, módulo 10)
//	tercer dígito 6:   entidad pública (módulo 11, establecimiento "0001")
//	tercer dígito 9:   sociedad privada (módulo 11, establecimiento >= "001")
func ValidateRUC(ruc string) error {
	digits := extractDigits(ruc)
	if len(digits) != 13 {
		return fmt.Errorf("sri: el RUC debe tener 13 dígitos, se encontraron %d", len(digits))
	}
	prov := int(digits[0]-'0')*10 + int(digits[1]-'0')
	if prov < 1 || (prov > 24 && prov != 30 && prov != 90) {
		return fmt.Errorf("sri: código de provincia del RUC inválido: %02d", prov)
	}

	switch tercero := digits[2] - '0'; {
	case tercero <= 5:
		if err := validateCedulaDigits(digits[:10]); err != nil {
			return err
		}
		if string(digits[10:]) == "000" {
			return fmt.Errorf("sri: el establecimiento del RUC no puede ser 000")
		}
	case tercero == 6:
		if err := validatePublico(digits); err != nil {
			return err
		}
	case tercero == 9:
		if err := validateSociedad(digits); err != nil {
			return err
		}
	default:
		return fmt.Errorf("sri: tercer dígito del RUC inválido: %c", digits[2])
	}
	return nil
}

// ValidateCedula valida una cédula de identidad de 10 dígitos (módulo 10).
func ValidateCedula(cedula string) error {
	digits := extractDigits(cedula)
	if len(digits) != 10 {
		return fmt.Errorf("sri: la cédula debe tener 10 dígitos, se encontraron %d", len(digits))
	}
	return validateCedulaDigits(digits)
}

// validateCedulaDigits aplica módulo 10: pesos alternados 2,1 sobre los 9
// primeros dígitos, restando 9 a los productos mayores a 9.
func validateCedulaDigits(digits []byte) error {
	var sum int
	for i := 0; i < 9; i++ {
		p := int(digits[i] - '0')
		if i%2 == 0 {
			p *= 2
			if p > 9 {
				p -= 9
			}
		}
		sum += p
	}
	expected := byte('0' + (10-sum%10)%10)
	if digits[9] != expected {
		return fmt.Errorf("sri: dígito verificador de cédula inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

func validateSociedad(digits []byte) error {
	var sum int
	for i, w := range rucSociedadWeights {
		sum += int(digits[i]-'0') * w
	}
	r := 11 - (sum % 11)
	if r == 11 {
		r = 0
	}
	if r == 10 {
		return fmt.Errorf("sri: RUC de sociedad con base inválida (resto 10)")
	}
	if digits[9] != byte('0'+r) {
		return fmt.Errorf("sri: dígito verificador de RUC de sociedad inválido: esperado %d, recibido %c", r, digits[9])
	}
	if string(digits[10:]) == "000" {
		return fmt.Errorf("sri: el establecimiento del RUC no puede ser 000")
	}
	return nil
}

func validatePublico(digits []byte) error {
	var sum int
	for i, w := range rucPublicoWeights {
		sum += int(digits[i]-'0') * w
	}
	r := 11 - (sum % 11)
	if r == 11 {
		r = 0
	}
	if r == 10 {
		return fmt.Errorf("sri: RUC público con base inválida (resto 10)")
	}
	if digits[8] != byte('0'+r) {
		return fmt.Errorf("sri: dígito verificador de RUC público inválido: esperado %d, recibido %c", r, digits[8])
	}
	// Entidades públicas usan establecimiento de cuatro dígitos.
	if string(digits[9:]) == "0000" {
		return fmt.Errorf("sri: el establecimiento del RUC no puede ser 0000")
	}
	return nil
}
