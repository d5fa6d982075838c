package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scannerEventTestcase struct {
	name   string
	input  string
	events []string
}

var scannerEventTests = []scannerEventTestcase{
	{
		"nested elements",
		"<a><b>text</b></a>",
		[]string{"startDocument", "start a", "start b", "characters text", "end b", "end a", "endDocument"},
	},
	{
		"self closing element",
		"<a><b/></a>",
		[]string{"startDocument", "start a", "start b", "end b", "end a", "endDocument"},
	},
	{
		"comment",
		"<a><!-- note --></a>",
		[]string{"startDocument", "start a", "comment  note ", "end a", "endDocument"},
	},
	{
		"processing instruction",
		`<?xml version="1.0"?><a/>`,
		[]string{"startDocument", `pi xml version="1.0"`, "start a", "end a", "endDocument"},
	},
	{
		"cdata section",
		"<a><![CDATA[x < y & z]]></a>",
		[]string{"startDocument", "start a", "characters x < y & z", "end a", "endDocument"},
	},
	{
		"doctype with identifiers",
		`<!DOCTYPE html PUBLIC "-//W3C//DTD" "http://example.com/dtd"><html/>`,
		[]string{"startDocument", `doctype html "-//W3C//DTD" "http://example.com/dtd"`, "start html", "end html", "endDocument"},
	},
	{
		"doctype with internal subset",
		"<!DOCTYPE doc [ <!ENTITY x 'y'> ]><doc/>",
		[]string{"startDocument", `doctype doc "" ""`, "start doc", "end doc", "endDocument"},
	},
	{
		"predefined entities",
		"<a>1 &lt; 2 &amp;&amp; 3 &gt; 2</a>",
		[]string{"startDocument", "start a", "characters 1 < 2 && 3 > 2", "end a", "endDocument"},
	},
	{
		"numeric character references",
		"<a>&#65;&#x42;</a>",
		[]string{"startDocument", "start a", "characters AB", "end a", "endDocument"},
	},
	{
		"carriage returns fold to newlines",
		"<a>one\r\ntwo\rthree</a>",
		[]string{"startDocument", "start a", "characters one\ntwo\nthree", "end a", "endDocument"},
	},
	{
		"whitespace in end tag",
		"<a>x</a  >",
		[]string{"startDocument", "start a", "characters x", "end a", "endDocument"},
	},
}

func TestScannerEvents(t *testing.T) {
	for _, tt := range scannerEventTests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, errs, err := parseString(t, tt.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.events, rec.events)
			assert.Empty(t, errs.errors)
			assert.Empty(t, errs.fatals)
		})
	}
}

type scannerAttributeTestcase struct {
	input string
	attrs string // attribute part of the recorded start event
}

var scannerAttributeTests = []scannerAttributeTestcase{
	{"<script src='123' onload='test'></script>", " src=123 onload=test"},
	{`<script src="123"></script>`, " src=123"},
	{"<script src=123 onload=test></script>", " src=123 onload=test"},
	{"<script src></script>", " src="},
	{"<script src test></script>", " src= test="},
	{"<script src = '123'></script>", " src=123"},
	{"<a title='a&amp;b'></a>", " title=a&b"},
	{"<a href=/index.html></a>", " href=/index.html"},
}

func TestScannerAttributes(t *testing.T) {
	for _, tt := range scannerAttributeTests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			rec, _, err := parseString(t, tt.input, nil)
			require.NoError(t, err)
			require.NotEmpty(t, rec.events)
			start := rec.events[1]
			i := strings.IndexByte(start, ' ')
			require.Positive(t, i)
			j := strings.IndexByte(start[i+1:], ' ')
			if j < 0 {
				assert.Equal(t, tt.attrs, "")
				return
			}
			assert.Equal(t, tt.attrs, start[i+1+j:])
		})
	}
}

func TestScannerDuplicateAttribute(t *testing.T) {
	rec, errs, err := parseString(t, "<script src='123' src='456'></script>", nil)
	require.NoError(t, err)
	assert.Equal(t, "start script src=123", rec.events[1], "first occurrence wins")
	require.Len(t, errs.errors, 1)
	assert.Contains(t, errs.errors[0], "duplicate attribute")
}

type scannerRecoveryTestcase struct {
	name      string
	input     string
	events    []string
	wantError string // substring of the reported recoverable error
}

var scannerRecoveryTests = []scannerRecoveryTestcase{
	{
		"stray less-than is text",
		"<a>1 < 2</a>",
		[]string{"startDocument", "start a", "characters 1 ", "characters <", "characters  2", "end a", "endDocument"},
		"unexpected character",
	},
	{
		"unterminated comment",
		"<a><!-- oops",
		[]string{"startDocument", "start a", "comment  oops", "end a", "endDocument"},
		"unterminated comment",
	},
	{
		"bogus markup declaration",
		"<a><!junk></a>",
		[]string{"startDocument", "start a", "comment junk", "end a", "endDocument"},
		"markup declaration expected",
	},
	{
		"unterminated tag at eof",
		"<a><b attr='v'",
		[]string{"startDocument", "start a", "start b attr=v", "end b", "end a", "endDocument"},
		"unexpected end of input in tag",
	},
}

func TestScannerRecovery(t *testing.T) {
	for _, tt := range scannerRecoveryTests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, errs, err := parseString(t, tt.input, nil)
			require.NoError(t, err, "recoverable conditions must not end the parse")
			assert.Equal(t, tt.events, rec.events)
			found := false
			for _, m := range errs.errors {
				if strings.Contains(m, tt.wantError) {
					found = true
				}
			}
			assert.True(t, found, "expected a reported error containing %q, got %v", tt.wantError, errs.errors)
		})
	}
}

func TestScannerUnknownEntityWarning(t *testing.T) {
	rec, errs, err := parseString(t, "<a>&nope;</a>", nil)
	require.NoError(t, err)
	assert.Contains(t, rec.events, "characters &nope;")
	require.Len(t, errs.warnings, 1)
	assert.Contains(t, errs.warnings[0], "unknown entity")
}

func TestScannerWarningsSuppressed(t *testing.T) {
	_, errs, err := parseString(t, "<a>&nope;</a>", map[string]bool{FeatureReportWarnings: false})
	require.NoError(t, err)
	assert.Empty(t, errs.warnings)
}

// TestScannerLargeText makes sure runs bigger than the scanner buffer
// come through intact, possibly split across several character events.
func TestScannerLargeText(t *testing.T) {
	big := strings.Repeat("0123456789abcdef", 4096) // 64 KiB, several refills
	rec, _, err := parseString(t, "<a>"+big+"</a>", nil)
	require.NoError(t, err)

	var got strings.Builder
	for _, ev := range rec.events {
		if strings.HasPrefix(ev, "characters ") {
			got.WriteString(ev[len("characters "):])
		}
	}
	assert.Equal(t, big, got.String())
}

func TestScannerLocator(t *testing.T) {
	c := NewConfiguration()
	errs := &errorRecorder{}
	var reported *ParseError
	c.SetErrorHandler(&locatorProbe{rec: errs, captured: &reported})
	err := c.Parse(NewReaderSource(strings.NewReader("<a>\n<b>\n</wrong>"), "test"))
	require.NoError(t, err)
	require.NotNil(t, reported)
	assert.Equal(t, 3, reported.Line)
}

// locatorProbe keeps the first reported error with its location.
type locatorProbe struct {
	rec      *errorRecorder
	captured **ParseError
}

func (p *locatorProbe) Warning(err *ParseError) error { return p.rec.Warning(err) }

func (p *locatorProbe) Error(err *ParseError) error {
	if *p.captured == nil {
		*p.captured = err
	}
	return p.rec.Error(err)
}

func (p *locatorProbe) FatalError(err *ParseError) error { return p.rec.FatalError(err) }
