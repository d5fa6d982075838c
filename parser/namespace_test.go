package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceResolution(t *testing.T) {
	input := `<x:root xmlns:x="http://example.com/x"><x:child attr="1" x:other="2"/></x:root>`
	rec, errs, err := parseString(t, input, nil)
	require.NoError(t, err)
	assert.Empty(t, errs.errors)

	assert.Equal(t, []string{
		"startDocument",
		`start {http://example.com/x}root xmlns:x=http://example.com/x`,
		`start {http://example.com/x}child attr=1 x:other=2`,
		"end {http://example.com/x}child",
		"end {http://example.com/x}root",
		"endDocument",
	}, rec.events)
}

func TestNamespaceDefault(t *testing.T) {
	input := `<root xmlns="http://example.com/d"><child/></root>`
	rec, _, err := parseString(t, input, nil)
	require.NoError(t, err)
	assert.Equal(t, `start {http://example.com/d}root xmlns=http://example.com/d`, rec.events[1])
	assert.Equal(t, `start {http://example.com/d}child`, rec.events[2])
}

func TestNamespaceScopePops(t *testing.T) {
	input := `<root><a xmlns:p="http://example.com/p"><p:x/></a><p:y/></root>`
	rec, errs, err := parseString(t, input, nil)
	require.NoError(t, err)

	assert.Contains(t, rec.events, "start {http://example.com/p}x")
	// p went out of scope with </a>; the self-closing p:y reports the
	// unbound prefix for its start and its end tag
	assert.Contains(t, rec.events, "start p:y")
	require.Len(t, errs.errors, 2)
	assert.Contains(t, errs.errors[0], `prefix "p"`)
}

func TestNamespaceSurvivesStrayEndTag(t *testing.T) {
	input := `<a xmlns:p="u"></b><p:y/></a>`
	rec, errs, err := parseString(t, input, nil)
	require.NoError(t, err)

	// the stray </b> closes nothing, so the binding declared on <a> is
	// still in scope for p:y
	assert.Contains(t, rec.events, "start {u}y")
	require.Len(t, errs.errors, 1)
	assert.Contains(t, errs.errors[0], "matches no open element")
}

func TestNamespaceImplicitCloseDropsScopes(t *testing.T) {
	input := `<r><a xmlns:p="u"><b></a><p:y/></r>`
	rec, errs, err := parseString(t, input, nil)
	require.NoError(t, err)

	// </a> implicitly closes <b> and takes both scopes with it, so the
	// later p:y is unbound again
	assert.Contains(t, rec.events, "start p:y")
	unbound := 0
	for _, m := range errs.errors {
		if strings.Contains(m, `prefix "p"`) {
			unbound++
		}
	}
	assert.Equal(t, 2, unbound, "reported for the start and the end tag of p:y")
}

func TestNamespaceUnboundPrefix(t *testing.T) {
	rec, errs, err := parseString(t, "<p:a/>", nil)
	require.NoError(t, err, "an unbound prefix is recoverable")
	require.Len(t, errs.errors, 2, "reported for the start and the end tag")
	assert.Contains(t, errs.errors[0], "not bound")
	assert.Contains(t, rec.events, "start p:a")
}

func TestNamespaceAttributesStayUnqualified(t *testing.T) {
	c := NewConfiguration()
	probe := &attrProbe{}
	c.SetDocumentHandler(probe)
	require.NoError(t, c.Parse(NewReaderSource(strings.NewReader(`<a xmlns:p="u" plain="1" p:q="2"/>`), "test")))

	require.Len(t, probe.uris, 3)
	assert.Equal(t, "", probe.uris[1], "unprefixed attributes are in no namespace")
	assert.Equal(t, "u", probe.uris[2])
}

// attrProbe records the namespace URI of every attribute on the first
// start tag.
type attrProbe struct {
	noopHandler
	uris []string
}

func (p *attrProbe) StartElement(name QName, attrs *Attributes) error {
	if p.uris == nil {
		for i := 0; i < attrs.Len(); i++ {
			p.uris = append(p.uris, attrs.Name(i).URI)
		}
	}
	return nil
}
