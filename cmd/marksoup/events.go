package main

import (
	"fmt"
	"io"

	"github.com/heathj/marksoup/parser"
)

// eventPrinter is a document handler that writes one line per event,
// indented by element depth. Handy for eyeballing what the pipeline
// actually delivers.
type eventPrinter struct {
	out   io.Writer
	depth int
}

func (p *eventPrinter) line(format string, args ...interface{}) error {
	for i := 0; i < p.depth; i++ {
		if _, err := io.WriteString(p.out, "  "); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}

func (p *eventPrinter) StartDocument(loc *parser.Locator) error {
	p.depth = 0
	return p.line("startDocument %s", loc.SystemID)
}

func (p *eventPrinter) DoctypeDecl(name, publicID, systemID string) error {
	return p.line("doctype %s public=%q system=%q", name, publicID, systemID)
}

func (p *eventPrinter) Comment(text *parser.Span) error {
	return p.line("comment %q", text.String())
}

func (p *eventPrinter) ProcessingInstruction(target string, data *parser.Span) error {
	return p.line("pi %s %q", target, data.String())
}

func (p *eventPrinter) StartElement(name parser.QName, attrs *parser.Attributes) error {
	line := "startElement " + name.String()
	for i := 0; i < attrs.Len(); i++ {
		line += fmt.Sprintf(" %s=%q", attrs.Name(i).Raw, attrs.Value(i))
	}
	if err := p.line("%s", line); err != nil {
		return err
	}
	p.depth++
	return nil
}

func (p *eventPrinter) Characters(text *parser.Span) error {
	return p.line("characters %q", text.String())
}

func (p *eventPrinter) EndElement(name parser.QName) error {
	if p.depth > 0 {
		p.depth--
	}
	return p.line("endElement %s", name.String())
}

func (p *eventPrinter) EndDocument() error {
	return p.line("endDocument")
}
