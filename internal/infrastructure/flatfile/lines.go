package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/text/transform"
)

const maxLineBytes = 1024 * 1024

// eachLine recorre el archivo línea a línea (número de línea en base 1) decodificando con enc.
func eachLine(ctx context.Context, path string, enc Encoding, fn func(lineNo int, line string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(transform.NewReader(f, enc.orDefault().decode.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := fn(lineNo, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	return nil
}
