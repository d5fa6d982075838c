package parser

import "fmt"

// StructureValidator is the pipeline stage that tracks open-element
// nesting and reports structural problems: end tags that match nothing,
// end tags that skip over open elements, and input that ends with
// elements still open.
//
// With the balance-tags feature on (the default) it also repairs the
// stream for downstream consumers by synthesizing the missing end
// events; otherwise it only reports and drops stray end tags. With
// structure-errors-fatal on, the first structural error ends the parse.
type StructureValidator struct {
	handler DocumentHandler
	source  DocumentSource

	reporter *Reporter
	open     []QName

	balance bool
	fatal   bool
}

func NewStructureValidator() *StructureValidator {
	return &StructureValidator{
		reporter: newReporter(),
		balance:  true,
	}
}

// Component contract.

func (v *StructureValidator) RecognizedFeatures() []string {
	return []string{FeatureBalanceTags, FeatureStructureErrorsFatal}
}

func (v *StructureValidator) RecognizedProperties() []string {
	return []string{PropertyErrorReporter}
}

func (v *StructureValidator) SetFeature(id string, on bool) error {
	switch id {
	case FeatureBalanceTags:
		v.balance = on
	case FeatureStructureErrorsFatal:
		v.fatal = on
	}
	return nil
}

func (v *StructureValidator) SetProperty(id string, value interface{}) error {
	if id == PropertyErrorReporter {
		r, ok := value.(*Reporter)
		if !ok {
			return &ConfigError{ID: id, Reason: "property requires a *Reporter"}
		}
		v.reporter = r
	}
	return nil
}

func (v *StructureValidator) Reset(cm ComponentManager) error {
	if on, err := cm.Feature(FeatureBalanceTags); err == nil {
		v.balance = on
	}
	if on, err := cm.Feature(FeatureStructureErrorsFatal); err == nil {
		v.fatal = on
	}
	if r, err := cm.Property(PropertyErrorReporter); err == nil && r != nil {
		if err := v.SetProperty(PropertyErrorReporter, r); err != nil {
			return err
		}
	}
	v.open = v.open[:0]
	return nil
}

// DocumentFilter contract.

func (v *StructureValidator) SetDocumentHandler(h DocumentHandler) {
	v.handler = h
}

func (v *StructureValidator) DocumentHandler() DocumentHandler {
	return v.handler
}

func (v *StructureValidator) SetDocumentSource(src DocumentSource) {
	v.source = src
}

// report surfaces a structural error, escalating it to a parse-ending
// fatal error when the structure-errors-fatal feature is set.
func (v *StructureValidator) report(msg string) error {
	if v.fatal {
		return v.reporter.Fatal(msg, nil)
	}
	return v.reporter.Error(msg)
}

// find returns the stack index of the innermost open element with the
// given raw name, or -1. Raw names are interned, so this compares
// symbol identity.
func (v *StructureValidator) find(raw string) int {
	for i := len(v.open) - 1; i >= 0; i-- {
		if v.open[i].Raw == raw {
			return i
		}
	}
	return -1
}

func (v *StructureValidator) StartElement(name QName, attrs *Attributes) error {
	v.open = append(v.open, name)
	return v.handler.StartElement(name, attrs)
}

func (v *StructureValidator) EndElement(name QName) error {
	n := len(v.open)
	if n > 0 && v.open[n-1].Raw == name.Raw {
		v.open = v.open[:n-1]
		return v.handler.EndElement(name)
	}
	i := v.find(name.Raw)
	if i < 0 {
		if err := v.report(fmt.Sprintf("end tag </%s> matches no open element", name.Raw)); err != nil {
			return err
		}
		if v.balance {
			// repaired stream never sees the stray end tag
			return nil
		}
		return v.handler.EndElement(name)
	}
	// the end tag skips over still-open elements
	if err := v.report(fmt.Sprintf("end tag </%s> implicitly closes unclosed element <%s>", name.Raw, v.open[n-1].Raw)); err != nil {
		return err
	}
	for j := n - 1; j > i; j-- {
		if v.balance {
			if err := v.handler.EndElement(v.open[j]); err != nil {
				return err
			}
		}
	}
	v.open = v.open[:i]
	return v.handler.EndElement(name)
}

func (v *StructureValidator) EndDocument() error {
	for i := len(v.open) - 1; i >= 0; i-- {
		if err := v.report(fmt.Sprintf("input ended with element <%s> still open", v.open[i].Raw)); err != nil {
			return err
		}
		if v.balance {
			if err := v.handler.EndElement(v.open[i]); err != nil {
				return err
			}
		}
	}
	v.open = v.open[:0]
	return v.handler.EndDocument()
}

// The remaining events pass through untouched.

func (v *StructureValidator) StartDocument(loc *Locator) error {
	return v.handler.StartDocument(loc)
}

func (v *StructureValidator) DoctypeDecl(name, publicID, systemID string) error {
	return v.handler.DoctypeDecl(name, publicID, systemID)
}

func (v *StructureValidator) Comment(text *Span) error {
	return v.handler.Comment(text)
}

func (v *StructureValidator) ProcessingInstruction(target string, data *Span) error {
	return v.handler.ProcessingInstruction(target, data)
}

func (v *StructureValidator) Characters(text *Span) error {
	return v.handler.Characters(text)
}
