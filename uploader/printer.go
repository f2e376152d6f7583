package uploader

import (
	"fmt"
	"io"
)

const (
	ansiGreen = "\033[0;32m"
	ansiRed   = "\033[0;31m"
	ansiReset = "\033[0m"
)

// printer writes the human-readable report. Colors are cosmetic and only
// applied when enabled.
type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) green(s string) string {
	return p.paint(ansiGreen, s)
}

func (p *printer) red(s string) string {
	return p.paint(ansiRed, s)
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}
