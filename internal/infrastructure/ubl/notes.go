package ubl

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// Leyendas de monto en letras: "SON: CIENTO DIECIOCHO CON 00/100 SOLES".
var (
	amountInWordsPrefixRe = regexp.MustCompile(`(?i)^\s*son\s*:`)
	amountInWordsCentsRe  = regexp.MustCompile(`(?i)\b(con|y)\s+\d{1,2}\s*/\s*100\b.*\b(soles|d[oó]lares|euros)\b`)
)

// IsAmountInWords informa si la nota es la leyenda del importe en letras.
func IsAmountInWords(note string) bool {
	return amountInWordsPrefixRe.MatchString(note) || amountInWordsCentsRe.MatchString(note)
}

// filterNotes conserva las notas de texto libre y descarta la leyenda 1000 (monto en letras).
func filterNotes(notes []*etree.Element) []string {
	var out []string
	for _, n := range notes {
		if n.SelectAttrValue("languageLocaleID", "") == sunat.LegendAmountInWords {
			continue
		}
		s := strings.TrimSpace(n.Text())
		if s == "" || IsAmountInWords(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
