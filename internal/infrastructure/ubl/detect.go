package ubl

import "bytes"

// Kind tipo de archivo subido.
type Kind int

const (
	KindUnknown Kind = iota
	KindXML
	KindZIP
)

func (k Kind) String() string {
	switch k {
	case KindXML:
		return "xml"
	case KindZIP:
		return "zip"
	default:
		return "desconocido"
	}
}

var zipMagics = [][]byte{
	{'P', 'K', 0x03, 0x04},
	{'P', 'K', 0x05, 0x06}, // ZIP vacío
	{'P', 'K', 0x07, 0x08}, // spanned
}

// DetectKind identifica el contenido por sus primeros bytes, no por la extensión.
func DetectKind(data []byte) Kind {
	for _, m := range zipMagics {
		if bytes.HasPrefix(data, m) {
			return KindZIP
		}
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return KindXML
	}
	return KindUnknown
}
