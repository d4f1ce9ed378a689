package layout

import (
	"io"

	"github.com/a-h/templ"
)

// Printer writes HTML fragments, escaping text and remembering the first
// write error so components can check it once at the end
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Raw writes trusted markup verbatim
func (p *Printer) Raw(s string) *Printer {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
	return p
}

// Text writes s as escaped element content
func (p *Printer) Text(s string) *Printer {
	return p.Raw(templ.EscapeString(s))
}

// Attr writes s as an escaped attribute value
func (p *Printer) Attr(s string) *Printer {
	return p.Raw(templ.EscapeString(s))
}

// URL writes u as an attribute value, dropping unsafe schemes
func (p *Printer) URL(u string) *Printer {
	return p.Raw(templ.EscapeString(string(templ.URL(u))))
}

// Err returns the first write error
func (p *Printer) Err() error {
	return p.err
}
