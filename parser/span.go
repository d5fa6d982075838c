package parser

// unsetLength marks a Span that currently points at nothing.
const unsetLength = -1

// Span is a window into the scanner's live character buffer. The offset
// and length fields let the buffer be reused without allocating a new
// slice for every run of text.
//
// A Span handed to a callback is read-only and volatile: the underlying
// buffer is reused as soon as the callback returns, so receivers that
// need the text afterwards must copy it out (String does that). Never
// keep a reference to a Span or its buffer across calls.
type Span struct {
	Buf    []byte
	Offset int
	Len    int
}

// NewSpan creates a span preset with the given window.
func NewSpan(buf []byte, offset, length int) *Span {
	s := &Span{}
	s.SetValues(buf, offset, length)
	return s
}

// SetValues reinitializes the span in place to point at buf[offset:offset+length].
func (s *Span) SetValues(buf []byte, offset, length int) {
	s.Buf = buf
	s.Offset = offset
	s.Len = length
}

// SetSpan points this span at the same window as o. Only the slice header
// is copied, not the characters.
func (s *Span) SetSpan(o *Span) {
	s.SetValues(o.Buf, o.Offset, o.Len)
}

// Clear resets the span to the unset state.
func (s *Span) Clear() {
	s.Buf = nil
	s.Offset = 0
	s.Len = unsetLength
}

// Unset reports whether the span currently points at nothing.
func (s *Span) Unset() bool {
	return s.Len < 0
}

// Equals compares the span's characters against buf[offset:offset+length].
// An unset span or a nil buffer compares unequal to everything.
func (s *Span) Equals(buf []byte, offset, length int) bool {
	if buf == nil || s.Len != length || s.Len < 0 {
		return false
	}
	for i := 0; i < length; i++ {
		if s.Buf[s.Offset+i] != buf[offset+i] {
			return false
		}
	}
	return true
}

// EqualsString compares the span's characters against v.
func (s *Span) EqualsString(v string) bool {
	if s.Len < 0 || s.Len != len(v) {
		return false
	}
	for i := 0; i < s.Len; i++ {
		if s.Buf[s.Offset+i] != v[i] {
			return false
		}
	}
	return true
}

// String copies the window out into an owned string. Unset and empty
// spans both yield "".
func (s *Span) String() string {
	if s.Len <= 0 {
		return ""
	}
	return string(s.Buf[s.Offset : s.Offset+s.Len])
}
