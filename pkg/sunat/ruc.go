package sunat

import (
	"fmt"
	"strings"
	"unicode"
)

// pesos del módulo 11 para el dígito verificador del RUC (10 primeros dígitos).
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// prefijos válidos: 10 persona natural, 15/16/17 regímenes especiales, 20 persona jurídica.
var rucPrefixes = map[string]bool{"10": true, "15": true, "16": true, "17": true, "20": true}

// NormalizeDocument elimina espacios, puntos y guiones de un número de documento.
func NormalizeDocument(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ComputeRUCCheckDigit calcula el dígito verificador para los 10 primeros dígitos del RUC.
func ComputeRUCCheckDigit(ruc string) (byte, error) {
	digits := NormalizeDocument(ruc)
	if len(digits) < 10 {
		return 0, fmt.Errorf("sunat: se requieren al menos 10 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * rucWeights[i]
	}
	check := 11 - sum%11
	switch check {
	case 10:
		check = 0
	case 11:
		check = 1
	}
	return byte('0' + check), nil
}

// ValidateRUC valida longitud, prefijo y dígito verificador de un RUC.
func ValidateRUC(ruc string) error {
	digits := NormalizeDocument(ruc)
	if len(digits) != 11 || len(digits) != len(strings.TrimSpace(ruc)) {
		return fmt.Errorf("sunat: el RUC debe tener exactamente 11 dígitos")
	}
	if !rucPrefixes[digits[:2]] {
		return fmt.Errorf("sunat: prefijo de RUC inválido %q", digits[:2])
	}
	expected, err := ComputeRUCCheckDigit(digits)
	if err != nil {
		return err
	}
	if digits[10] != expected {
		return fmt.Errorf("sunat: dígito verificador del RUC inválido: esperado %c, recibido %c", expected, digits[10])
	}
	return nil
}

// ValidateDNI valida que el DNI tenga 8 dígitos.
func ValidateDNI(dni string) error {
	digits := NormalizeDocument(dni)
	if len(digits) != 8 || len(digits) != len(strings.TrimSpace(dni)) {
		return fmt.Errorf("sunat: el DNI debe tener exactamente 8 dígitos")
	}
	return nil
}
