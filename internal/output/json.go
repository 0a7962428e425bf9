package output

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// JSON writes data as JSON to stdout
func JSON(data interface{}) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as indented JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// Printer renders results in the selected format
type Printer struct {
	W      io.Writer
	Format string
	// Mark decorates fallback rows in tables; nil leaves them plain
	Mark func(string) string
}

// NewPrinter creates a Printer writing to stdout
func NewPrinter(format string, mark func(string) string) *Printer {
	return &Printer{W: os.Stdout, Format: format, Mark: mark}
}

// Print writes data in the printer's format
func (p *Printer) Print(data interface{}) error {
	switch p.Format {
	case "json":
		return JSONTo(p.W, data)
	case "table", "":
		return p.table(data)
	default:
		return fmt.Errorf("unknown output format: %s", p.Format)
	}
}

// Output writes data in the specified format to stdout
func Output(format string, data interface{}) error {
	return NewPrinter(format, nil).Print(data)
}
