package ubl

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrEntryTooLarge una entrada del ZIP supera el límite descomprimido.
	ErrEntryTooLarge = errors.New("ubl: entrada ZIP demasiado grande")
	// ErrArchiveTooLarge el ZIP supera el total descomprimido o la cantidad de entradas permitidas.
	ErrArchiveTooLarge = errors.New("ubl: ZIP demasiado grande")
)

// Limits acota la expansión de un ZIP. Un valor <= 0 desactiva ese límite.
type Limits struct {
	MaxEntryBytes int64 // por XML descomprimido
	MaxTotalBytes int64 // suma de todos los XML descomprimidos
	MaxEntries    int   // cantidad de XML
}

// Entry XML extraído de un ZIP.
type Entry struct {
	Name string
	Data []byte
}

// ExtractXML devuelve las entradas *.xml del ZIP (SUNAT entrega R-*.zip y los
// emisores suelen enviar {RUC}-{TIPO}-{SERIE}-{NUMERO}.zip con un único XML).
// Se omiten directorios y metadatos __MACOSX. La lectura se corta apenas se
// excede cualquiera de los límites, sin descomprimir el resto.
func ExtractXML(data []byte, lim Limits) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip: abrir archivo: %w", err)
	}

	var out []Entry
	var total int64
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if !strings.EqualFold(path.Ext(f.Name), ".xml") {
			continue
		}
		if lim.MaxEntries > 0 && len(out) >= lim.MaxEntries {
			return nil, fmt.Errorf("%w: más de %d XML", ErrArchiveTooLarge, lim.MaxEntries)
		}

		limit, tooLarge := lim.MaxEntryBytes, ErrEntryTooLarge
		if lim.MaxTotalBytes > 0 {
			remaining := lim.MaxTotalBytes - total
			if limit <= 0 || remaining < limit {
				limit, tooLarge = remaining, ErrArchiveTooLarge
			}
			if limit <= 0 {
				return nil, fmt.Errorf("%w: más de %d bytes descomprimidos", ErrArchiveTooLarge, lim.MaxTotalBytes)
			}
		}
		b, err := readEntry(f, limit, tooLarge)
		if err != nil {
			return nil, err
		}
		total += int64(len(b))
		out = append(out, Entry{Name: path.Base(f.Name), Data: b})
	}
	return out, nil
}

func readEntry(f *zip.File, limit int64, tooLarge error) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("zip: abrir entrada %s: %w", f.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zip: leer entrada %s: %w", f.Name, err)
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s", tooLarge, f.Name)
	}
	return b, nil
}
