package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type spanEqualityTestcase struct {
	name   string
	buf    string // backing buffer contents
	offset int
	length int
	other  string // sequence to compare against
	want   bool
}

var spanEqualityTests = []spanEqualityTestcase{
	{"identical window", "hello world", 0, 5, "hello", true},
	{"identical mid-buffer", "hello world", 6, 5, "world", true},
	{"differing length", "hello world", 0, 5, "hell", false},
	{"one differing character", "hello world", 0, 5, "hellx", false},
	{"empty against empty", "hello", 2, 0, "", true},
	{"window longer than other", "aaaa", 0, 4, "aaa", false},
}

func TestSpanEquals(t *testing.T) {
	for _, tt := range spanEqualityTests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpan([]byte(tt.buf), tt.offset, tt.length)
			other := []byte(tt.other)
			assert.Equal(t, tt.want, s.Equals(other, 0, len(other)))
			assert.Equal(t, tt.want, s.EqualsString(tt.other))
		})
	}
}

func TestSpanEqualsNilBuffer(t *testing.T) {
	s := NewSpan([]byte("abc"), 0, 3)
	assert.False(t, s.Equals(nil, 0, 3))
}

func TestSpanUnset(t *testing.T) {
	s := NewSpan([]byte("abc"), 0, 3)
	s.Clear()

	assert.True(t, s.Unset())
	assert.False(t, s.Equals([]byte("abc"), 0, 3))
	assert.False(t, s.Equals(nil, 0, 0))
	assert.False(t, s.EqualsString(""))
	assert.False(t, s.EqualsString("abc"))
	assert.Equal(t, "", s.String())
}

func TestSpanString(t *testing.T) {
	buf := []byte("hello world")
	s := NewSpan(buf, 6, 5)
	assert.Equal(t, "world", s.String())

	// the copy is owned: mutating the buffer afterwards must not
	// change an already materialized string
	got := s.String()
	buf[6] = 'W'
	assert.Equal(t, "world", got)

	s.SetValues(buf, 0, 0)
	assert.Equal(t, "", s.String())
}

func TestSpanSetValuesReuses(t *testing.T) {
	s := &Span{}
	s.Clear()
	assert.True(t, s.Unset())

	buf := []byte("reuse me")
	s.SetValues(buf, 0, 5)
	assert.True(t, s.EqualsString("reuse"))

	s.SetValues(buf, 6, 2)
	assert.True(t, s.EqualsString("me"))

	o := &Span{}
	o.SetSpan(s)
	assert.True(t, o.EqualsString("me"))
}
