package parser

// Reporter routes the conditions found by pipeline components to the
// registered error handler, stamping each one with the scanner's
// current location. It is owned by the configuration and shared with
// every component through the error-reporter property.
type Reporter struct {
	// Locator is kept current by the scanner as it consumes input.
	Locator Locator

	handler  ErrorHandler
	warnings bool
}

func newReporter() *Reporter {
	return &Reporter{warnings: true}
}

// SetHandler replaces the error handler. A nil handler drops warnings
// and errors silently; fatal conditions still end the parse.
func (r *Reporter) SetHandler(h ErrorHandler) {
	r.handler = h
}

// Warning reports a recoverable condition of the lowest severity.
// Returns non-nil only when the handler chose to abort.
func (r *Reporter) Warning(msg string) error {
	if r.handler == nil || !r.warnings {
		return nil
	}
	return r.handler.Warning(NewParseError(msg, &r.Locator))
}

// Error reports a recoverable condition. The parse continues unless the
// handler returns an abort error.
func (r *Reporter) Error(msg string) error {
	if r.handler == nil {
		return nil
	}
	return r.handler.Error(NewParseError(msg, &r.Locator))
}

// Fatal reports an unrecoverable condition and always returns a
// non-nil *ParseError for the caller to propagate, ending the parse.
// cause may be nil.
func (r *Reporter) Fatal(msg string, cause error) error {
	perr := NewParseError(msg, &r.Locator)
	if cause != nil {
		if err := perr.SetCause(cause); err != nil {
			return err
		}
	}
	if r.handler != nil {
		if err := r.handler.FatalError(perr); err != nil {
			return err
		}
	}
	return perr
}
