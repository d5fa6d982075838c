package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// defaultBufferSize is the initial size of the scanner's character
// buffer. The buffer grows as needed and is reused across refills.
const defaultBufferSize = 8192

// entityMax bounds how far the scanner looks for the ';' of an entity
// reference before deciding the '&' was literal text.
const entityMax = 32

// Scanner pulls characters from an input source and turns them into
// document events. It owns exactly one growable character buffer per
// input source; text is delivered as spans into that buffer (or into
// the scratch buffer when decoding was required), which become invalid
// as soon as the delivering call returns.
//
// The scanner is tolerant: malformed markup is reported through the
// error reporter and scanning continues wherever a sensible recovery
// exists. Only I/O failures and handler aborts end a parse.
type Scanner struct {
	src io.Reader

	// buf[pos:end] is the unread window of the input. fill compacts and
	// refills it, invalidating any previously issued span.
	buf      []byte
	pos, end int
	eof      bool

	// scratch holds entity-decoded or normalized characters for the
	// current event only.
	scratch []byte

	symbols  *SymbolTable
	reporter *Reporter
	handler  DocumentHandler
	attrs    Attributes
	text     Span

	namespaces bool
	bufSize    int

	started, done bool
}

// NewScanner creates a scanner with its own symbol table and reporter.
// A configuration replaces both through the component properties.
func NewScanner() *Scanner {
	return &Scanner{
		symbols:  NewSymbolTable(),
		reporter: newReporter(),
		bufSize:  defaultBufferSize,
	}
}

// Component contract.

func (s *Scanner) RecognizedFeatures() []string {
	return []string{FeatureNamespaces}
}

func (s *Scanner) RecognizedProperties() []string {
	return []string{PropertySymbolTable, PropertyBufferSize, PropertyErrorReporter}
}

func (s *Scanner) SetFeature(id string, on bool) error {
	if id == FeatureNamespaces {
		s.namespaces = on
	}
	return nil
}

func (s *Scanner) SetProperty(id string, value interface{}) error {
	switch id {
	case PropertySymbolTable:
		t, ok := value.(*SymbolTable)
		if !ok {
			return &ConfigError{ID: id, Reason: "property requires a *SymbolTable"}
		}
		s.symbols = t
	case PropertyBufferSize:
		n, ok := value.(int)
		if !ok || n < 64 {
			return &ConfigError{ID: id, Reason: "property requires an int >= 64"}
		}
		s.bufSize = n
	case PropertyErrorReporter:
		r, ok := value.(*Reporter)
		if !ok {
			return &ConfigError{ID: id, Reason: "property requires a *Reporter"}
		}
		s.reporter = r
	}
	return nil
}

func (s *Scanner) Reset(cm ComponentManager) error {
	if on, err := cm.Feature(FeatureNamespaces); err == nil {
		s.namespaces = on
	}
	for _, id := range s.RecognizedProperties() {
		if v, err := cm.Property(id); err == nil && v != nil {
			if err := s.SetProperty(id, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocumentSource contract.

func (s *Scanner) SetDocumentHandler(h DocumentHandler) {
	s.handler = h
}

func (s *Scanner) DocumentHandler() DocumentHandler {
	return s.handler
}

// SetInput points the scanner at a new character stream. Buffer state
// and the locator start over; systemID is used for diagnostics.
func (s *Scanner) SetInput(r io.Reader, systemID string) {
	s.src = r
	if cap(s.buf) < s.bufSize {
		s.buf = make([]byte, s.bufSize)
	} else {
		s.buf = s.buf[:cap(s.buf)]
	}
	s.pos, s.end = 0, 0
	s.scratch = s.scratch[:0]
	s.eof, s.started, s.done = false, false, false
	s.reporter.Locator = Locator{SystemID: systemID, Line: 1, Col: 1}
}

// Step scans one event and delivers it downstream, blocking on input
// reads as needed. It reports whether more input remains: callers loop
// until false for a full parse, or interleave other work between calls
// for pull-mode parsing.
func (s *Scanner) Step() (bool, error) {
	if s.done {
		return false, nil
	}
	if !s.started {
		s.started = true
		if err := s.handler.StartDocument(&s.reporter.Locator); err != nil {
			return false, err
		}
		return true, nil
	}
	ok, err := s.have(1)
	if err != nil {
		return false, err
	}
	if !ok {
		s.done = true
		if err := s.handler.EndDocument(); err != nil {
			return false, err
		}
		return false, nil
	}
	if s.peek(0) == '<' {
		err = s.scanMarkup()
	} else {
		err = s.scanText()
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// buffer plumbing

// fill compacts the unread window to the front of the buffer and reads
// more input behind it, growing the buffer when the window already
// fills it. Every previously issued span is invalid afterwards.
func (s *Scanner) fill() error {
	if s.eof {
		return nil
	}
	if s.pos > 0 {
		copy(s.buf, s.buf[s.pos:s.end])
		s.end -= s.pos
		s.pos = 0
	}
	if s.end == len(s.buf) {
		grown := make([]byte, len(s.buf)*2)
		copy(grown, s.buf[:s.end])
		s.buf = grown
		logrus.WithField("size", len(grown)).Debug("scanner buffer grown")
	}
	n, err := s.src.Read(s.buf[s.end:])
	s.end += n
	if err == io.EOF {
		s.eof = true
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading input source")
	}
	return nil
}

// have blocks until at least n unread characters are buffered,
// reporting false when the input ends first.
func (s *Scanner) have(n int) (bool, error) {
	for s.end-s.pos < n && !s.eof {
		if err := s.fill(); err != nil {
			return false, err
		}
	}
	return s.end-s.pos >= n, nil
}

func (s *Scanner) peek(i int) byte {
	return s.buf[s.pos+i]
}

// advance consumes n buffered characters, keeping the locator current.
func (s *Scanner) advance(n int) {
	loc := &s.reporter.Locator
	for i := 0; i < n; i++ {
		if s.buf[s.pos+i] == '\n' {
			loc.Line++
			loc.Col = 1
		} else {
			loc.Col++
		}
	}
	loc.Offset += n
	s.pos += n
}

func (s *Scanner) skipSpace() error {
	for {
		ok, err := s.have(1)
		if err != nil || !ok {
			return err
		}
		if !isSpace(s.peek(0)) {
			return nil
		}
		s.advance(1)
	}
}

// character classes

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == ':' || c >= 0x80
}

func isNameByte(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}

func equalFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c, d := b[i], s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if d >= 'a' && d <= 'z' {
			d -= 'a' - 'A'
		}
		if c != d {
			return false
		}
	}
	return true
}

// wholeRunes returns len(b) minus any trailing incomplete UTF-8
// sequence, so a text run is never cut in the middle of a character.
func wholeRunes(b []byte) int {
	n := len(b)
	if n == 0 {
		return 0
	}
	start := n - 1
	for start > 0 && n-start < utf8.UTFMax && !utf8.RuneStart(b[start]) {
		start--
	}
	if utf8.FullRune(b[start:]) {
		return n
	}
	return start
}

// names

// scanName consumes a name at the current position and returns it as
// an interned symbol. Returns "" when no name character is present.
func (s *Scanner) scanName() (string, error) {
	i := 0
	for {
		ok, err := s.have(i + 1)
		if err != nil {
			return "", err
		}
		if !ok || !isNameByte(s.buf[s.pos+i]) {
			break
		}
		i++
	}
	if i == 0 {
		return "", nil
	}
	sym := s.symbols.Symbol(s.buf[s.pos : s.pos+i])
	s.advance(i)
	return sym, nil
}

// qname splits raw into prefix and local part when namespace processing
// is on. A leading or trailing colon leaves the whole name as the local
// part.
func (s *Scanner) qname(raw string) QName {
	q := QName{Raw: raw, Local: raw}
	if !s.namespaces {
		return q
	}
	if i := strings.IndexByte(raw, ':'); i > 0 && i < len(raw)-1 {
		q.Prefix = s.symbols.SymbolString(raw[:i])
		q.Local = s.symbols.SymbolString(raw[i+1:])
	}
	return q
}

// text content

// scanText delivers one bounded run of character data. Runs without
// carriage returns, NULs or entity references are delivered as a span
// straight into the live buffer; anything needing decoding goes through
// the scratch buffer.
func (s *Scanner) scanText() error {
	n, plain := 0, true
scan:
	for {
		for n < s.end-s.pos {
			switch s.buf[s.pos+n] {
			case '<':
				break scan
			case '&', '\r', 0x00:
				plain = false
				break scan
			}
			n++
		}
		if s.eof {
			break
		}
		if s.end-s.pos == len(s.buf) {
			// window full: deliver what we have as one bounded run
			n = wholeRunes(s.buf[s.pos : s.pos+n])
			break
		}
		if err := s.fill(); err != nil {
			return err
		}
	}
	if plain {
		s.text.SetValues(s.buf, s.pos, n)
		s.advance(n)
		return s.handler.Characters(&s.text)
	}
	return s.scanTextDecoded()
}

// scanTextDecoded handles the slow path: carriage-return folding, NUL
// replacement and entity decoding into the scratch buffer.
func (s *Scanner) scanTextDecoded() error {
	s.scratch = s.scratch[:0]
	for len(s.scratch) < s.bufSize {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch c := s.peek(0); c {
		case '<':
			goto done
		case '&':
			if err := s.appendEntity(); err != nil {
				return err
			}
		case '\r':
			s.advance(1)
			if ok, err := s.have(1); err != nil {
				return err
			} else if ok && s.peek(0) == '\n' {
				s.advance(1)
			}
			s.scratch = append(s.scratch, '\n')
		case 0x00:
			s.advance(1)
			s.scratch = utf8.AppendRune(s.scratch, utf8.RuneError)
		default:
			s.scratch = append(s.scratch, c)
			s.advance(1)
		}
	}
done:
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.Characters(&s.text)
}

// appendEntity decodes one reference at the current '&' into scratch.
// References that never close or name an unknown entity are reported as
// warnings and copied through literally.
func (s *Scanner) appendEntity() error {
	j := 1
	for {
		ok, err := s.have(j + 1)
		if err != nil {
			return err
		}
		if !ok || j > entityMax {
			break
		}
		c := s.buf[s.pos+j]
		if c == ';' {
			return s.decodeEntity(j)
		}
		if c == '&' || c == '<' || isSpace(c) {
			break
		}
		j++
	}
	if err := s.reporter.Warning("entity reference must end with ';'"); err != nil {
		return err
	}
	s.scratch = append(s.scratch, '&')
	s.advance(1)
	return nil
}

// decodeEntity resolves buf[pos+1:pos+j] with the ';' at pos+j.
func (s *Scanner) decodeEntity(j int) error {
	name := s.buf[s.pos+1 : s.pos+j]
	if len(name) > 1 && name[0] == '#' {
		digits, base := string(name[1:]), 10
		if digits[0] == 'x' || digits[0] == 'X' {
			digits, base = digits[1:], 16
		}
		code, err := strconv.ParseInt(digits, base, 32)
		if err != nil || code <= 0 || !utf8.ValidRune(rune(code)) {
			if err := s.reporter.Warning(fmt.Sprintf("invalid character reference %q", "&"+string(name)+";")); err != nil {
				return err
			}
			s.scratch = append(s.scratch, s.buf[s.pos:s.pos+j+1]...)
		} else {
			s.scratch = utf8.AppendRune(s.scratch, rune(code))
		}
		s.advance(j + 1)
		return nil
	}
	var r byte
	switch string(name) {
	case "amp":
		r = '&'
	case "lt":
		r = '<'
	case "gt":
		r = '>'
	case "apos":
		r = '\''
	case "quot":
		r = '"'
	default:
		if err := s.reporter.Warning(fmt.Sprintf("unknown entity %q", "&"+string(name)+";")); err != nil {
			return err
		}
		s.scratch = append(s.scratch, s.buf[s.pos:s.pos+j+1]...)
		s.advance(j + 1)
		return nil
	}
	s.scratch = append(s.scratch, r)
	s.advance(j + 1)
	return nil
}

// markup

func (s *Scanner) scanMarkup() error {
	ok, err := s.have(2)
	if err != nil {
		return err
	}
	if !ok {
		if err := s.reporter.Error("unexpected end of input after '<'"); err != nil {
			return err
		}
		s.advance(1)
		return s.emitLiteral("<")
	}
	switch c := s.peek(1); {
	case c == '/':
		return s.scanEndTag()
	case c == '!':
		return s.scanDeclaration()
	case c == '?':
		return s.scanPI()
	case isNameStart(c):
		return s.scanStartTag()
	default:
		if err := s.reporter.Error(fmt.Sprintf("unexpected character %q after '<'", c)); err != nil {
			return err
		}
		s.advance(1)
		return s.emitLiteral("<")
	}
}

// emitLiteral delivers fixed characters through scratch, for recovery
// paths that re-emit markup as text.
func (s *Scanner) emitLiteral(lit string) error {
	s.scratch = append(s.scratch[:0], lit...)
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.Characters(&s.text)
}

func (s *Scanner) scanStartTag() error {
	s.advance(1)
	raw, err := s.scanName()
	if err != nil {
		return err
	}
	name := s.qname(raw)
	s.attrs.clear()
	s.scratch = s.scratch[:0]
	selfClosing := false
loop:
	for {
		if err := s.skipSpace(); err != nil {
			return err
		}
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error(fmt.Sprintf("unexpected end of input in tag <%s>", raw)); err != nil {
				return err
			}
			break
		}
		switch c := s.peek(0); c {
		case '>':
			s.advance(1)
			break loop
		case '/':
			ok, err := s.have(2)
			if err != nil {
				return err
			}
			if ok && s.peek(1) == '>' {
				selfClosing = true
				s.advance(2)
				break loop
			}
			if err := s.reporter.Error(fmt.Sprintf("unexpected '/' in tag <%s>", raw)); err != nil {
				return err
			}
			s.advance(1)
		default:
			if err := s.scanAttribute(raw); err != nil {
				return err
			}
		}
	}
	s.attrs.rebind(s.scratch)
	if err := s.handler.StartElement(name, &s.attrs); err != nil {
		return err
	}
	if selfClosing {
		return s.handler.EndElement(name)
	}
	return nil
}

// scanAttribute consumes one attribute at the current position. The
// decoded value lands in scratch; the span's buffer reference is
// patched in by the caller once the whole tag has been scanned.
func (s *Scanner) scanAttribute(tag string) error {
	i := 0
	for {
		ok, err := s.have(i + 1)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		c := s.buf[s.pos+i]
		if isSpace(c) || c == '=' || c == '>' || c == '/' {
			break
		}
		i++
	}
	if i == 0 {
		if err := s.reporter.Error(fmt.Sprintf("attribute name expected in tag <%s>", tag)); err != nil {
			return err
		}
		s.advance(1)
		return nil
	}
	raw := s.symbols.Symbol(s.buf[s.pos : s.pos+i])
	s.advance(i)
	name := s.qname(raw)

	if err := s.skipSpace(); err != nil {
		return err
	}
	valOff := len(s.scratch)
	if ok, err := s.have(1); err != nil {
		return err
	} else if ok && s.peek(0) == '=' {
		s.advance(1)
		if err := s.skipSpace(); err != nil {
			return err
		}
		if err := s.scanAttrValue(raw); err != nil {
			return err
		}
	}
	value := Span{Offset: valOff, Len: len(s.scratch) - valOff}
	if !s.attrs.add(name, value) {
		if err := s.reporter.Error(fmt.Sprintf("duplicate attribute %q in tag <%s>", raw, tag)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanAttrValue(attr string) error {
	ok, err := s.have(1)
	if err != nil {
		return err
	}
	if !ok {
		return s.reporter.Error(fmt.Sprintf("attribute %q has '=' but no value", attr))
	}
	quote := s.peek(0)
	if quote == '"' || quote == '\'' {
		s.advance(1)
		for {
			ok, err := s.have(1)
			if err != nil {
				return err
			}
			if !ok {
				return s.reporter.Error(fmt.Sprintf("unterminated value for attribute %q", attr))
			}
			switch c := s.peek(0); c {
			case quote:
				s.advance(1)
				return nil
			case '&':
				if err := s.appendEntity(); err != nil {
					return err
				}
			case '\r':
				s.advance(1)
				if ok, err := s.have(1); err != nil {
					return err
				} else if ok && s.peek(0) == '\n' {
					s.advance(1)
				}
				s.scratch = append(s.scratch, '\n')
			case 0x00:
				s.advance(1)
				s.scratch = utf8.AppendRune(s.scratch, utf8.RuneError)
			default:
				s.scratch = append(s.scratch, c)
				s.advance(1)
			}
		}
	}
	// unquoted value: runs to the next whitespace or tag end
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		c := s.peek(0)
		if isSpace(c) || c == '>' {
			return nil
		}
		if c == '&' {
			if err := s.appendEntity(); err != nil {
				return err
			}
			continue
		}
		s.scratch = append(s.scratch, c)
		s.advance(1)
	}
}

func (s *Scanner) scanEndTag() error {
	s.advance(2)
	raw, err := s.scanName()
	if err != nil {
		return err
	}
	if raw == "" {
		if err := s.reporter.Error("end tag name expected"); err != nil {
			return err
		}
	}
	reported := false
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error(fmt.Sprintf("unexpected end of input in end tag </%s>", raw)); err != nil {
				return err
			}
			break
		}
		c := s.peek(0)
		if c == '>' {
			s.advance(1)
			break
		}
		if !isSpace(c) && !reported {
			reported = true
			if err := s.reporter.Error(fmt.Sprintf("unexpected characters in end tag </%s>", raw)); err != nil {
				return err
			}
		}
		s.advance(1)
	}
	if raw == "" {
		return nil
	}
	return s.handler.EndElement(s.qname(raw))
}

func (s *Scanner) scanDeclaration() error {
	if ok, err := s.have(4); err != nil {
		return err
	} else if ok && s.peek(2) == '-' && s.peek(3) == '-' {
		return s.scanComment()
	}
	if ok, err := s.have(9); err != nil {
		return err
	} else if ok {
		if string(s.buf[s.pos+2:s.pos+9]) == "[CDATA[" {
			return s.scanCDATA()
		}
		if equalFold(s.buf[s.pos+2:s.pos+9], "DOCTYPE") {
			return s.scanDoctype()
		}
	}
	// bogus declaration: swallow it as a comment
	if err := s.reporter.Error("markup declaration expected after '<!'"); err != nil {
		return err
	}
	s.advance(2)
	s.scratch = s.scratch[:0]
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		c := s.peek(0)
		s.advance(1)
		if c == '>' {
			break
		}
		s.scratch = append(s.scratch, c)
	}
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.Comment(&s.text)
}

func (s *Scanner) scanComment() error {
	s.advance(4)
	s.scratch = s.scratch[:0]
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error("unterminated comment"); err != nil {
				return err
			}
			break
		}
		if s.peek(0) == '-' {
			if ok, err := s.have(3); err != nil {
				return err
			} else if ok && s.peek(1) == '-' && s.peek(2) == '>' {
				s.advance(3)
				break
			}
			if ok, err := s.have(4); err != nil {
				return err
			} else if ok && s.peek(1) == '-' && s.peek(2) == '!' && s.peek(3) == '>' {
				if err := s.reporter.Error("comment closed with '--!>'"); err != nil {
					return err
				}
				s.advance(4)
				break
			}
		}
		s.scratch = append(s.scratch, s.peek(0))
		s.advance(1)
	}
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.Comment(&s.text)
}

func (s *Scanner) scanCDATA() error {
	s.advance(9)
	s.scratch = s.scratch[:0]
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error("unterminated CDATA section"); err != nil {
				return err
			}
			break
		}
		if s.peek(0) == ']' {
			if ok, err := s.have(3); err != nil {
				return err
			} else if ok && s.peek(1) == ']' && s.peek(2) == '>' {
				s.advance(3)
				break
			}
		}
		s.scratch = append(s.scratch, s.peek(0))
		s.advance(1)
	}
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.Characters(&s.text)
}

func (s *Scanner) scanPI() error {
	s.advance(2)
	target, err := s.scanName()
	if err != nil {
		return err
	}
	if target == "" {
		if err := s.reporter.Error("processing instruction target expected"); err != nil {
			return err
		}
	}
	if err := s.skipSpace(); err != nil {
		return err
	}
	s.scratch = s.scratch[:0]
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error("unterminated processing instruction"); err != nil {
				return err
			}
			break
		}
		if s.peek(0) == '?' {
			if ok, err := s.have(2); err != nil {
				return err
			} else if ok && s.peek(1) == '>' {
				s.advance(2)
				break
			}
		}
		s.scratch = append(s.scratch, s.peek(0))
		s.advance(1)
	}
	if target == "" {
		return nil
	}
	s.text.SetValues(s.scratch, 0, len(s.scratch))
	return s.handler.ProcessingInstruction(target, &s.text)
}

func (s *Scanner) scanDoctype() error {
	s.advance(9)
	if err := s.skipSpace(); err != nil {
		return err
	}
	name, err := s.scanName()
	if err != nil {
		return err
	}
	if name == "" {
		if err := s.reporter.Error("doctype name expected"); err != nil {
			return err
		}
	}
	if err := s.skipSpace(); err != nil {
		return err
	}
	var publicID, systemID string
	if ok, err := s.have(6); err != nil {
		return err
	} else if ok {
		switch {
		case equalFold(s.buf[s.pos:s.pos+6], "PUBLIC"):
			s.advance(6)
			if publicID, err = s.scanExternalID("public identifier"); err != nil {
				return err
			}
			if systemID, err = s.scanOptionalID(); err != nil {
				return err
			}
		case equalFold(s.buf[s.pos:s.pos+6], "SYSTEM"):
			s.advance(6)
			if systemID, err = s.scanExternalID("system identifier"); err != nil {
				return err
			}
		}
	}
	// tolerate an internal subset and anything else up to '>'
	depth := 0
	for {
		ok, err := s.have(1)
		if err != nil {
			return err
		}
		if !ok {
			if err := s.reporter.Error("unterminated doctype declaration"); err != nil {
				return err
			}
			break
		}
		c := s.peek(0)
		s.advance(1)
		if c == '[' {
			depth++
		} else if c == ']' && depth > 0 {
			depth--
		} else if c == '>' && depth == 0 {
			break
		}
	}
	if name == "" {
		return nil
	}
	return s.handler.DoctypeDecl(name, publicID, systemID)
}

// scanExternalID reads one quoted identifier after PUBLIC or SYSTEM.
func (s *Scanner) scanExternalID(what string) (string, error) {
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	ok, err := s.have(1)
	if err != nil {
		return "", err
	}
	quote := byte(0)
	if ok {
		quote = s.peek(0)
	}
	if quote != '"' && quote != '\'' {
		return "", s.reporter.Error(fmt.Sprintf("quoted %s expected in doctype", what))
	}
	s.advance(1)
	s.scratch = s.scratch[:0]
	for {
		ok, err := s.have(1)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", s.reporter.Error(fmt.Sprintf("unterminated %s in doctype", what))
		}
		c := s.peek(0)
		s.advance(1)
		if c == quote {
			break
		}
		s.scratch = append(s.scratch, c)
	}
	return string(s.scratch), nil
}

// scanOptionalID reads the system identifier that may follow a public
// one, returning "" when the next character is not a quote.
func (s *Scanner) scanOptionalID() (string, error) {
	if err := s.skipSpace(); err != nil {
		return "", err
	}
	ok, err := s.have(1)
	if err != nil {
		return "", err
	}
	if !ok || s.peek(0) != '"' && s.peek(0) != '\'' {
		return "", nil
	}
	return s.scanExternalID("system identifier")
}
