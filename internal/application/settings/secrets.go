package settings

import "strings"

// MaskSecret enmascara un secreto para mostrarlo: "sk-ant-api03-xyz...wxyz" → "sk-a…wxyz".
// Secretos de 8 caracteres o menos se muestran como "••••••••".
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= 8 {
		return "••••••••"
	}
	return string(r[:4]) + "…" + string(r[len(r)-4:])
}

// IsPlaceholder informa si el valor recibido no es un secreto nuevo: vacío, la
// forma enmascarada del guardado, o compuesto solo de '*' y '•'.
func IsPlaceholder(incoming, stored string) bool {
	v := strings.TrimSpace(incoming)
	if v == "" {
		return true
	}
	if stored != "" && v == MaskSecret(stored) {
		return true
	}
	if strings.Contains(v, "…") {
		return true
	}
	return strings.Trim(v, "*•") == ""
}

// mergeSecret conserva stored cuando incoming es un placeholder.
func mergeSecret(incoming, stored string) string {
	if IsPlaceholder(incoming, stored) {
		return stored
	}
	return strings.TrimSpace(incoming)
}
