package parser

// Locator describes a position in the input source. The scanner keeps a
// single Locator up to date as it consumes characters; errors and the
// start-document event reference it for diagnostics.
type Locator struct {
	// SystemID identifies the input source, usually a file path or URL.
	SystemID string
	// Line and Col are 1-based.
	Line int
	Col  int
	// Offset is the absolute character offset from the start of the input.
	Offset int
}

// QName is a qualified element or attribute name. All four fields hold
// interned symbols, so two QNames naming the same thing share the same
// string values across the whole pipeline.
type QName struct {
	// Prefix is the namespace prefix, or "" for an unprefixed name.
	Prefix string
	// Local is the name part after the prefix.
	Local string
	// Raw is the name exactly as written, prefix and all.
	Raw string
	// URI is the namespace bound to Prefix, filled in by the namespace
	// binder. "" when namespace processing is off or nothing is bound.
	URI string
}

func (q QName) String() string {
	if q.URI != "" {
		return "{" + q.URI + "}" + q.Local
	}
	return q.Raw
}

// DocumentHandler receives the event stream for a document. Spans
// passed to a handler are valid only for the duration of the call; see
// Span. Returning a non-nil error from any method aborts the parse and
// propagates the error out of Parse.
type DocumentHandler interface {
	StartDocument(loc *Locator) error
	DoctypeDecl(name, publicID, systemID string) error
	Comment(text *Span) error
	ProcessingInstruction(target string, data *Span) error
	StartElement(name QName, attrs *Attributes) error
	Characters(text *Span) error
	EndElement(name QName) error
	EndDocument() error
}

// DocumentSource is anything that feeds events to a DocumentHandler.
// The scanner and every pipeline filter are document sources; the
// configuration rewires their downstream handler when the chain is
// rebuilt.
type DocumentSource interface {
	SetDocumentHandler(h DocumentHandler)
	DocumentHandler() DocumentHandler
}

// DocumentFilter is a pipeline stage: it consumes events from an
// upstream source and produces (possibly transformed) events for a
// downstream handler.
type DocumentFilter interface {
	DocumentHandler
	DocumentSource
	SetDocumentSource(src DocumentSource)
}

// ErrorHandler receives the recoverable and fatal conditions met during
// a parse. Only a fatal error ends the parse; warnings and errors are
// reported and scanning continues. A handler can abort early by
// returning a non-nil error from any method.
type ErrorHandler interface {
	Warning(err *ParseError) error
	Error(err *ParseError) error
	FatalError(err *ParseError) error
}

// ComponentManager gives components validated access to the feature and
// property tables during their reset callback.
type ComponentManager interface {
	Feature(id string) (bool, error)
	Property(id string) (interface{}, error)
}

// Component is the lifecycle contract every pipeline piece implements
// so the configuration can drive it: a reset hook called before each
// parse, change notifications for the features and properties it
// declared interest in, and the bulk registration lists collected at
// construction time.
type Component interface {
	Reset(cm ComponentManager) error
	SetFeature(id string, on bool) error
	SetProperty(id string, value interface{}) error
	RecognizedFeatures() []string
	RecognizedProperties() []string
}
