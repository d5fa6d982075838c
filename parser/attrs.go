package parser

// Attr is a single attribute on a start tag. Value is a span into the
// scanner's scratch buffer and is only valid for the duration of the
// StartElement call that delivered it.
type Attr struct {
	Name  QName
	Value Span
}

// Attributes is the ordered attribute list of a start tag. The scanner
// owns one instance and rebuilds it in place for every tag, so a
// handler that wants to keep attribute values must copy them out with
// Value.
type Attributes struct {
	attrs []Attr
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.attrs)
}

// Name returns the name of attribute i.
func (a *Attributes) Name(i int) QName {
	return a.attrs[i].Name
}

// Value copies attribute i's value out into an owned string.
func (a *Attributes) Value(i int) string {
	return a.attrs[i].Value.String()
}

// ValueSpan returns the transient span holding attribute i's value.
func (a *Attributes) ValueSpan(i int) *Span {
	return &a.attrs[i].Value
}

// Index returns the position of the attribute whose raw name is raw, or
// -1 if the tag has no such attribute.
func (a *Attributes) Index(raw string) int {
	for i := range a.attrs {
		if a.attrs[i].Name.Raw == raw {
			return i
		}
	}
	return -1
}

// Get copies out the value of the attribute named raw, reporting
// whether the tag carries it at all.
func (a *Attributes) Get(raw string) (string, bool) {
	if i := a.Index(raw); i >= 0 {
		return a.Value(i), true
	}
	return "", false
}

// setURI rebinds the namespace URI of attribute i. Used by the
// namespace binder after prefix resolution.
func (a *Attributes) setURI(i int, uri string) {
	a.attrs[i].Name.URI = uri
}

func (a *Attributes) clear() {
	a.attrs = a.attrs[:0]
}

// rebind points every value span at buf. The scanner calls this once a
// tag is fully scanned, after its scratch buffer has stopped growing.
func (a *Attributes) rebind(buf []byte) {
	for i := range a.attrs {
		a.attrs[i].Value.Buf = buf
	}
}

// add appends an attribute, refusing duplicates of an already-seen raw
// name. The first occurrence wins.
func (a *Attributes) add(name QName, value Span) bool {
	if a.Index(name.Raw) >= 0 {
		return false
	}
	a.attrs = append(a.attrs, Attr{Name: name, Value: value})
	return true
}
