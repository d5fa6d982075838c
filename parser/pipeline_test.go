package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// eventRecorder collects the event stream as comparable strings.
// Span contents are copied immediately, honoring the transient-view
// contract.
type eventRecorder struct {
	events []string
}

func (r *eventRecorder) add(format string, args ...interface{}) error {
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return nil
}

func (r *eventRecorder) StartDocument(loc *Locator) error {
	return r.add("startDocument")
}

func (r *eventRecorder) DoctypeDecl(name, publicID, systemID string) error {
	return r.add("doctype %s %q %q", name, publicID, systemID)
}

func (r *eventRecorder) Comment(text *Span) error {
	return r.add("comment %s", text.String())
}

func (r *eventRecorder) ProcessingInstruction(target string, data *Span) error {
	return r.add("pi %s %s", target, data.String())
}

func (r *eventRecorder) StartElement(name QName, attrs *Attributes) error {
	ev := "start " + name.Raw
	if name.URI != "" {
		ev = fmt.Sprintf("start {%s}%s", name.URI, name.Local)
	}
	for i := 0; i < attrs.Len(); i++ {
		ev += fmt.Sprintf(" %s=%s", attrs.Name(i).Raw, attrs.Value(i))
	}
	return r.add("%s", ev)
}

func (r *eventRecorder) Characters(text *Span) error {
	return r.add("characters %s", text.String())
}

func (r *eventRecorder) EndElement(name QName) error {
	if name.URI != "" {
		return r.add("end {%s}%s", name.URI, name.Local)
	}
	return r.add("end %s", name.Raw)
}

func (r *eventRecorder) EndDocument() error {
	return r.add("endDocument")
}

// errorRecorder collects reported conditions by severity.
type errorRecorder struct {
	warnings []string
	errors   []string
	fatals   []string
}

func (r *errorRecorder) Warning(err *ParseError) error {
	r.warnings = append(r.warnings, err.Msg)
	return nil
}

func (r *errorRecorder) Error(err *ParseError) error {
	r.errors = append(r.errors, err.Msg)
	return nil
}

func (r *errorRecorder) FatalError(err *ParseError) error {
	r.fatals = append(r.fatals, err.Msg)
	return nil
}

// parseString runs a full parse of input with the given feature
// overrides and returns what came out of the pipeline.
func parseString(t *testing.T, input string, features map[string]bool) (*eventRecorder, *errorRecorder, error) {
	t.Helper()
	c := NewConfiguration()
	for id, on := range features {
		require.NoError(t, c.SetFeature(id, on))
	}
	rec := &eventRecorder{}
	errs := &errorRecorder{}
	c.SetDocumentHandler(rec)
	c.SetErrorHandler(errs)
	err := c.Parse(NewReaderSource(strings.NewReader(input), "test"))
	return rec, errs, err
}
