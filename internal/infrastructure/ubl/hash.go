package ubl

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
)

// signatureHash extrae el DigestValue de la firma XMLDSig embebida en
// ext:UBLExtensions. Es metadato no crítico: cualquier fallo devuelve "".
func signatureHash(root *etree.Element) (hash string) {
	defer func() {
		if recover() != nil {
			hash = ""
		}
	}()
	for _, ext := range children(child(root, "UBLExtensions"), "UBLExtension") {
		sig := child(ext, "ExtensionContent", "Signature")
		if sig == nil {
			continue
		}
		if v := text(sig, "SignedInfo", "Reference", "DigestValue"); v != "" {
			return v
		}
		if v := text(sig, "SignatureValue"); v != "" {
			return v
		}
	}
	return ""
}

// Fingerprint devuelve el SHA-256 (hex) de la forma canónica C14N del XML.
// Si la canonicalización falla se usa el contenido tal cual.
func Fingerprint(data []byte) string {
	canonical, err := canonicalize(data)
	if err != nil {
		canonical = data
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	return c14n.Canonicalize(dec)
}
