package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorMismatchedEndTag(t *testing.T) {
	rec, errs, err := parseString(t, "<a><b>text</a>", nil)
	require.NoError(t, err, "a structural error is recoverable by default")

	require.Len(t, errs.errors, 1, "exactly one structural error")
	assert.Contains(t, errs.errors[0], "<b>", "the error names the unclosed element")

	// balance-tags repairs the stream: the missing </b> is synthesized
	assert.Equal(t, []string{
		"startDocument", "start a", "start b", "characters text",
		"end b", "end a", "endDocument",
	}, rec.events)
}

func TestValidatorMismatchedEndTagReportOnly(t *testing.T) {
	rec, errs, err := parseString(t, "<a><b>text</a>", map[string]bool{FeatureBalanceTags: false})
	require.NoError(t, err)

	require.Len(t, errs.errors, 1)
	// report-only: no synthesized </b>
	assert.Equal(t, []string{
		"startDocument", "start a", "start b", "characters text",
		"end a", "endDocument",
	}, rec.events)
}

func TestValidatorMismatchedEndTagFatal(t *testing.T) {
	rec, errs, err := parseString(t, "<a><b>text</a><c/>", map[string]bool{FeatureStructureErrorsFatal: true})
	require.Error(t, err, "fatal-structural mode ends the parse at the first error")

	perr := &ParseError{}
	require.ErrorAs(t, err, &perr)
	require.Len(t, errs.fatals, 1)
	assert.Contains(t, errs.fatals[0], "<b>")
	assert.NotContains(t, rec.events, "start c", "nothing is scanned past the fatal error")
}

func TestValidatorStrayEndTag(t *testing.T) {
	rec, errs, err := parseString(t, "<a></b></a>", nil)
	require.NoError(t, err)
	require.Len(t, errs.errors, 1)
	assert.Contains(t, errs.errors[0], "</b>")
	assert.Contains(t, errs.errors[0], "matches no open element")
	// the stray end tag is dropped from the repaired stream
	assert.Equal(t, []string{"startDocument", "start a", "end a", "endDocument"}, rec.events)
}

func TestValidatorPrematureEOF(t *testing.T) {
	rec, errs, err := parseString(t, "<a><b>", nil)
	require.NoError(t, err)
	require.Len(t, errs.errors, 2, "one error per element left open")
	assert.Contains(t, errs.errors[0], "<b>")
	assert.Contains(t, errs.errors[1], "<a>")
	assert.Equal(t, []string{
		"startDocument", "start a", "start b", "end b", "end a", "endDocument",
	}, rec.events)
}
