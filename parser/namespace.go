package parser

import "fmt"

// Namespace URIs pre-bound in every document.
const (
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNamespace = "http://www.w3.org/2000/xmlns/"
)

type nsBinding struct {
	prefix string
	uri    string
}

// NamespaceBinder is the pipeline stage that resolves prefixes to
// namespace URIs. It keeps a scope stack matching element nesting:
// each start tag pushes the bindings its xmlns attributes declare, the
// matching end tag pops them. Use of an unbound non-default prefix is
// reported through the error reporter; all events are forwarded
// downstream either way.
type NamespaceBinder struct {
	handler DocumentHandler
	source  DocumentSource

	reporter *Reporter
	symbols  *SymbolTable

	// bindings is a flat stack of in-scope declarations; marks holds
	// the stack depth at each element level and names the raw name of
	// the element that pushed it, so only a real close pops a scope.
	bindings []nsBinding
	marks    []int
	names    []string
}

func NewNamespaceBinder() *NamespaceBinder {
	return &NamespaceBinder{
		reporter: newReporter(),
		symbols:  NewSymbolTable(),
	}
}

// Component contract.

func (b *NamespaceBinder) RecognizedFeatures() []string {
	return nil
}

func (b *NamespaceBinder) RecognizedProperties() []string {
	return []string{PropertySymbolTable, PropertyErrorReporter}
}

func (b *NamespaceBinder) SetFeature(id string, on bool) error {
	return nil
}

func (b *NamespaceBinder) SetProperty(id string, value interface{}) error {
	switch id {
	case PropertySymbolTable:
		t, ok := value.(*SymbolTable)
		if !ok {
			return &ConfigError{ID: id, Reason: "property requires a *SymbolTable"}
		}
		b.symbols = t
	case PropertyErrorReporter:
		r, ok := value.(*Reporter)
		if !ok {
			return &ConfigError{ID: id, Reason: "property requires a *Reporter"}
		}
		b.reporter = r
	}
	return nil
}

func (b *NamespaceBinder) Reset(cm ComponentManager) error {
	for _, id := range b.RecognizedProperties() {
		if v, err := cm.Property(id); err == nil && v != nil {
			if err := b.SetProperty(id, v); err != nil {
				return err
			}
		}
	}
	b.bindings = b.bindings[:0]
	b.marks = b.marks[:0]
	b.names = b.names[:0]
	return nil
}

// DocumentFilter contract.

func (b *NamespaceBinder) SetDocumentHandler(h DocumentHandler) {
	b.handler = h
}

func (b *NamespaceBinder) DocumentHandler() DocumentHandler {
	return b.handler
}

func (b *NamespaceBinder) SetDocumentSource(src DocumentSource) {
	b.source = src
}

// lookup resolves prefix against the innermost declaration. The empty
// prefix resolves to the default namespace, or "" when none is bound.
func (b *NamespaceBinder) lookup(prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return xmlNamespace, true
	case "xmlns":
		return xmlnsNamespace, true
	}
	for i := len(b.bindings) - 1; i >= 0; i-- {
		if b.bindings[i].prefix == prefix {
			return b.bindings[i].uri, true
		}
	}
	return "", prefix == ""
}

func (b *NamespaceBinder) resolve(name *QName, isAttr bool) error {
	if name.Prefix == "" {
		// unprefixed attributes are in no namespace, unprefixed
		// elements take the default one
		if !isAttr {
			name.URI, _ = b.lookup("")
		}
		return nil
	}
	uri, ok := b.lookup(name.Prefix)
	if !ok {
		return b.reporter.Error(fmt.Sprintf("prefix %q is not bound to a namespace", name.Prefix))
	}
	name.URI = uri
	return nil
}

func (b *NamespaceBinder) StartElement(name QName, attrs *Attributes) error {
	b.marks = append(b.marks, len(b.bindings))
	b.names = append(b.names, name.Raw)
	for i := 0; i < attrs.Len(); i++ {
		a := attrs.Name(i)
		switch {
		case a.Raw == "xmlns":
			b.bindings = append(b.bindings, nsBinding{prefix: "", uri: b.symbols.SymbolString(attrs.Value(i))})
		case a.Prefix == "xmlns":
			b.bindings = append(b.bindings, nsBinding{prefix: a.Local, uri: b.symbols.SymbolString(attrs.Value(i))})
		}
	}
	if err := b.resolve(&name, false); err != nil {
		return err
	}
	for i := 0; i < attrs.Len(); i++ {
		a := attrs.Name(i)
		if a.Prefix == "" || a.Prefix == "xmlns" {
			continue
		}
		if err := b.resolve(&a, true); err != nil {
			return err
		}
		attrs.setURI(i, a.URI)
	}
	return b.handler.StartElement(name, attrs)
}

func (b *NamespaceBinder) EndElement(name QName) error {
	if err := b.resolve(&name, false); err != nil {
		return err
	}
	err := b.handler.EndElement(name)
	// pop through the element this tag closes, taking implicitly closed
	// scopes with it; a stray end tag closing nothing leaves every
	// scope intact
	for i := len(b.names) - 1; i >= 0; i-- {
		if b.names[i] == name.Raw {
			b.bindings = b.bindings[:b.marks[i]]
			b.marks = b.marks[:i]
			b.names = b.names[:i]
			break
		}
	}
	return err
}

// The remaining events pass through untouched.

func (b *NamespaceBinder) StartDocument(loc *Locator) error {
	return b.handler.StartDocument(loc)
}

func (b *NamespaceBinder) DoctypeDecl(name, publicID, systemID string) error {
	return b.handler.DoctypeDecl(name, publicID, systemID)
}

func (b *NamespaceBinder) Comment(text *Span) error {
	return b.handler.Comment(text)
}

func (b *NamespaceBinder) ProcessingInstruction(target string, data *Span) error {
	return b.handler.ProcessingInstruction(target, data)
}

func (b *NamespaceBinder) Characters(text *Span) error {
	return b.handler.Characters(text)
}

func (b *NamespaceBinder) EndDocument() error {
	return b.handler.EndDocument()
}
