package parser

import (
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

// Recognized feature identifiers.
const (
	// FeatureNamespaces turns namespace processing on. Structurally
	// relevant: flipping it swaps the namespace binder in or out of the
	// pipeline before the next parse.
	FeatureNamespaces = "namespaces"
	// FeatureBalanceTags makes the validator repair mismatched and
	// missing end tags instead of only reporting them.
	FeatureBalanceTags = "balance-tags"
	// FeatureStructureErrorsFatal ends the parse on the first
	// structural error.
	FeatureStructureErrorsFatal = "structure-errors-fatal"
	// FeatureReportWarnings delivers warnings to the error handler.
	FeatureReportWarnings = "report-warnings"
)

// Recognized property identifiers.
const (
	PropertySymbolTable     = "symbol-table"
	PropertyBufferSize      = "buffer-size"
	PropertyDefaultEncoding = "default-encoding"
	// PropertyErrorReporter carries the shared *Reporter to components
	// during reset. Settable mainly for tests.
	PropertyErrorReporter = "error-reporter"
)

type parseState uint

const (
	stateIdle parseState = iota
	stateScanning
	stateDone
	stateFailed
)

// Configuration owns the feature and property tables, assembles the
// component pipeline (scanner, optional namespace binder, validator,
// document handler) and drives parsing. One configuration supports one
// parse at a time; features and properties set during a parse take
// effect at the next one.
type Configuration struct {
	features   map[string]bool
	properties map[string]interface{}

	recognizedFeatures   map[string]struct{}
	recognizedProperties map[string]struct{}

	scanner   *Scanner
	binder    *NamespaceBinder
	validator *StructureValidator
	chain     []Component

	docHandler DocumentHandler
	errHandler ErrorHandler
	reporter   *Reporter

	state      parseState
	needRewire bool
	closers    []io.Closer
}

// NewConfiguration creates a configuration with the default pipeline:
// scanner, namespace binder, structural validator. Namespace processing
// and tag balancing start on.
func NewConfiguration() *Configuration {
	c := &Configuration{
		features:             make(map[string]bool),
		properties:           make(map[string]interface{}),
		recognizedFeatures:   make(map[string]struct{}),
		recognizedProperties: make(map[string]struct{}),
		scanner:              NewScanner(),
		binder:               NewNamespaceBinder(),
		validator:            NewStructureValidator(),
		reporter:             newReporter(),
		docHandler:           noopHandler{},
		needRewire:           true,
	}
	c.AddRecognizedFeatures(FeatureNamespaces, FeatureBalanceTags, FeatureStructureErrorsFatal, FeatureReportWarnings)
	c.AddRecognizedProperties(PropertySymbolTable, PropertyBufferSize, PropertyDefaultEncoding, PropertyErrorReporter)
	c.features[FeatureNamespaces] = true
	c.features[FeatureBalanceTags] = true
	c.features[FeatureStructureErrorsFatal] = false
	c.features[FeatureReportWarnings] = true
	c.properties[PropertySymbolTable] = NewSymbolTable()
	c.properties[PropertyBufferSize] = defaultBufferSize
	c.properties[PropertyDefaultEncoding] = ""
	c.properties[PropertyErrorReporter] = c.reporter

	for _, comp := range []Component{c.scanner, c.binder, c.validator} {
		c.addComponent(comp)
	}
	c.configurePipeline()
	return c
}

// addComponent registers a component's recognized identifiers and adds
// it to the reset chain.
func (c *Configuration) addComponent(comp Component) {
	c.chain = append(c.chain, comp)
	c.AddRecognizedFeatures(comp.RecognizedFeatures()...)
	c.AddRecognizedProperties(comp.RecognizedProperties()...)
}

// AddRecognizedFeatures registers feature identifiers so they can be
// set and queried. Registration only ever grows the set.
func (c *Configuration) AddRecognizedFeatures(ids ...string) {
	for _, id := range ids {
		c.recognizedFeatures[id] = struct{}{}
	}
}

// AddRecognizedProperties registers property identifiers.
func (c *Configuration) AddRecognizedProperties(ids ...string) {
	for _, id := range ids {
		c.recognizedProperties[id] = struct{}{}
	}
}

// Feature returns the state of a recognized feature.
func (c *Configuration) Feature(id string) (bool, error) {
	if _, ok := c.recognizedFeatures[id]; !ok {
		return false, errNotRecognized("feature", id)
	}
	return c.features[id], nil
}

// SetFeature sets a recognized feature. Changes to structurally
// relevant features rebuild the pipeline before the next parse.
func (c *Configuration) SetFeature(id string, on bool) error {
	if _, ok := c.recognizedFeatures[id]; !ok {
		return errNotRecognized("feature", id)
	}
	if c.features[id] == on {
		return nil
	}
	c.features[id] = on
	if id == FeatureNamespaces {
		c.needRewire = true
	}
	if id == FeatureReportWarnings {
		c.reporter.warnings = on
	}
	return nil
}

// Property returns the value of a recognized property.
func (c *Configuration) Property(id string) (interface{}, error) {
	if _, ok := c.recognizedProperties[id]; !ok {
		return nil, errNotRecognized("property", id)
	}
	return c.properties[id], nil
}

// SetProperty sets a recognized property.
func (c *Configuration) SetProperty(id string, value interface{}) error {
	if _, ok := c.recognizedProperties[id]; !ok {
		return errNotRecognized("property", id)
	}
	c.properties[id] = value
	return nil
}

// SetDocumentHandler replaces the terminal event receiver. The last
// pipeline stage is rewired immediately, even between parses.
func (c *Configuration) SetDocumentHandler(h DocumentHandler) {
	if h == nil {
		h = noopHandler{}
	}
	c.docHandler = h
	c.validator.SetDocumentHandler(h)
	if f, ok := h.(DocumentFilter); ok {
		f.SetDocumentSource(c.validator)
	}
}

// DocumentHandler returns the registered document handler.
func (c *Configuration) DocumentHandler() DocumentHandler {
	if _, ok := c.docHandler.(noopHandler); ok {
		return nil
	}
	return c.docHandler
}

// SetErrorHandler replaces the error handler collaborator.
func (c *Configuration) SetErrorHandler(h ErrorHandler) {
	c.errHandler = h
	c.reporter.SetHandler(h)
}

// ErrorHandler returns the registered error handler.
func (c *Configuration) ErrorHandler() ErrorHandler {
	return c.errHandler
}

// configurePipeline wires the chain for the current feature set:
// scanner -> binder -> validator -> document handler with namespaces
// on, scanner -> validator -> document handler with them off.
func (c *Configuration) configurePipeline() {
	ns := c.features[FeatureNamespaces]
	if ns {
		c.scanner.SetDocumentHandler(c.binder)
		c.binder.SetDocumentSource(c.scanner)
		c.binder.SetDocumentHandler(c.validator)
		c.validator.SetDocumentSource(c.binder)
	} else {
		c.scanner.SetDocumentHandler(c.validator)
		c.validator.SetDocumentSource(c.scanner)
	}
	c.validator.SetDocumentHandler(c.docHandler)
	if f, ok := c.docHandler.(DocumentFilter); ok {
		f.SetDocumentSource(c.validator)
	}
	c.needRewire = false
	logrus.WithField("namespaces", ns).Debug("pipeline configured")
}

// reset pushes the current feature and property values to every
// component that declared interest in them, then runs the components'
// reset hooks in chain order. Components never observe stale
// configuration mid-parse.
func (c *Configuration) reset() error {
	for _, comp := range c.chain {
		for _, id := range comp.RecognizedFeatures() {
			if err := comp.SetFeature(id, c.features[id]); err != nil {
				return err
			}
		}
		for _, id := range comp.RecognizedProperties() {
			if v, ok := c.properties[id]; ok && v != nil {
				if err := comp.SetProperty(id, v); err != nil {
					return err
				}
			}
		}
		if err := comp.Reset(c); err != nil {
			return err
		}
	}
	return nil
}

// SetInputSource prepares a pull-mode parse of src: the pipeline is
// rebuilt if needed, components are reset, and the source's streams are
// opened (the session owns them until Cleanup or completion). Follow
// with Scan calls.
func (c *Configuration) SetInputSource(src *InputSource) error {
	if c.state == stateScanning {
		return &ConfigError{Reason: "parse already in progress"}
	}
	if src == nil {
		return &ConfigError{Reason: "nil input source"}
	}
	if c.needRewire {
		c.configurePipeline()
	}
	if err := c.reset(); err != nil {
		return err
	}
	label := src.Encoding
	if label == "" {
		label, _ = c.properties[PropertyDefaultEncoding].(string)
	}
	var enc encoding.Encoding
	if label != "" {
		e, err := resolveEncoding(label)
		if err != nil {
			if err := c.reporter.Warning("unknown encoding label " + label + ", reading as utf-8"); err != nil {
				return err
			}
		} else {
			enc = e
		}
	}
	r, closers, err := src.open(enc)
	if err != nil {
		return err
	}
	c.closers = closers
	c.scanner.SetInput(r, src.SystemID)
	c.state = stateScanning
	return nil
}

// Scan pulls a bounded amount of work from the scanner: one event per
// call, or the whole rest of the document when complete is true. It
// reports whether more input remains. On completion or failure the
// session's streams are closed; a failed parse leaves the error state
// until Cleanup.
func (c *Configuration) Scan(complete bool) (bool, error) {
	if c.state == stateDone {
		return false, nil
	}
	if c.state == stateFailed {
		return false, &ConfigError{Reason: "parse failed; run Cleanup before scanning again"}
	}
	if c.state != stateScanning {
		return false, &ConfigError{Reason: "no parse in progress"}
	}
	for {
		more, err := c.scanner.Step()
		if err != nil {
			c.state = stateFailed
			c.closeStreams()
			return false, err
		}
		if !more {
			c.state = stateDone
			c.closeStreams()
			return false, nil
		}
		if !complete {
			return true, nil
		}
	}
}

// Parse parses src to completion. Synchronous and not reentrant:
// calling it while a parse is in progress fails fast with a
// configuration error and leaves the running parse untouched.
func (c *Configuration) Parse(src *InputSource) error {
	if err := c.SetInputSource(src); err != nil {
		return err
	}
	_, err := c.Scan(true)
	return err
}

// Cleanup releases every stream the session opened and forces the
// configuration back to idle. Idempotent; safe to call whether or not
// a parse is in progress or already finished.
func (c *Configuration) Cleanup() {
	c.closeStreams()
	c.state = stateIdle
}

func (c *Configuration) closeStreams() {
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			logrus.WithError(err).Debug("closing input stream")
		}
	}
	c.closers = nil
}

// noopHandler swallows events when no document handler is registered.
type noopHandler struct{}

func (noopHandler) StartDocument(*Locator) error              { return nil }
func (noopHandler) DoctypeDecl(string, string, string) error  { return nil }
func (noopHandler) Comment(*Span) error                       { return nil }
func (noopHandler) ProcessingInstruction(string, *Span) error { return nil }
func (noopHandler) StartElement(QName, *Attributes) error     { return nil }
func (noopHandler) Characters(*Span) error                    { return nil }
func (noopHandler) EndElement(QName) error                    { return nil }
func (noopHandler) EndDocument() error                        { return nil }
