// Package alert contiene las reglas puras de coincidencia entre reglas de alerta
// y licitaciones publicadas.
package alert

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// Fold normaliza texto para comparar sin distinguir mayúsculas ni tildes
// ("Licitación" y "LICITACION" son equivalentes).
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// Match informa si la licitación cumple la regla.
//   - una regla inactiva nunca coincide;
//   - si hay palabras clave, al menos una debe aparecer en título, descripción u objeto;
//   - entidades: basta que el nombre de la entidad contenga alguna;
//   - regiones: igualdad sin tildes ni mayúsculas;
//   - montos: límites inclusivos; con límites definidos una licitación sin monto no coincide.
func Match(cfg *entity.AlertConfig, t *entity.Tender) bool {
	if cfg == nil || t == nil || !cfg.Active {
		return false
	}

	if kws := foldAll(cfg.Keywords); len(kws) > 0 {
		haystack := Fold(t.Title + " " + t.Description + " " + t.ObjectType)
		if !containsAny(haystack, kws) {
			return false
		}
	}

	if ents := foldAll(cfg.Entities); len(ents) > 0 {
		if !containsAny(Fold(t.Entity), ents) {
			return false
		}
	}

	if regs := foldAll(cfg.Regions); len(regs) > 0 {
		region := Fold(t.Region)
		found := false
		for _, r := range regs {
			if r == region {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if cfg.MinAmount != nil || cfg.MaxAmount != nil {
		if t.EstimatedAmount == nil {
			return false
		}
		amt := *t.EstimatedAmount
		if cfg.MinAmount != nil && amt.LessThan(*cfg.MinAmount) {
			return false
		}
		if cfg.MaxAmount != nil && amt.GreaterThan(*cfg.MaxAmount) {
			return false
		}
	}
	return true
}

// DeadlineDue informa si la fecha límite de la licitación cae dentro de la
// anticipación configurada: 0 <= deadline - now <= DaysBeforeDeadline días.
func DeadlineDue(cfg *entity.AlertConfig, t *entity.Tender, now time.Time) bool {
	if cfg == nil || t == nil || !cfg.Active || t.DeadlineAt == nil || cfg.DaysBeforeDeadline <= 0 {
		return false
	}
	remaining := t.DeadlineAt.Sub(now)
	return remaining >= 0 && remaining <= time.Duration(cfg.DaysBeforeDeadline)*24*time.Hour
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := Fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
