// Package flatfile lee y escribe los archivos planos del job: lookup de clientes,
// registros de consumo, salidas de registros rechazados/estimados y artefactos de factura.
package flatfile

import (
	"fmt"
	"strings"

	"github.com/tsvetanka/ERP-Billing/internal/domain"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding par de codificaciones para leer y escribir archivos de texto.
// En UTF-8 la lectura descarta un BOM inicial (archivos guardados con Notepad) y la escritura no lo agrega.
type Encoding struct {
	name   string
	decode encoding.Encoding
	encode encoding.Encoding
}

// UTF8 codificación por defecto.
var UTF8 = Encoding{name: "utf-8", decode: unicode.UTF8BOM, encode: unicode.UTF8}

// LookupEncoding resuelve el nombre configurado (utf-8, windows-1251, iso-8859-1).
func LookupEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "windows-1251", "cp1251":
		return Encoding{name: "windows-1251", decode: charmap.Windows1251, encode: charmap.Windows1251}, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return Encoding{name: "iso-8859-1", decode: charmap.ISO8859_1, encode: charmap.ISO8859_1}, nil
	default:
		return Encoding{}, fmt.Errorf("%w: codificación no soportada %q", domain.ErrInvalidInput, name)
	}
}

// Name nombre canónico.
func (e Encoding) Name() string { return e.name }

func (e Encoding) orDefault() Encoding {
	if e.decode == nil {
		return UTF8
	}
	return e
}
