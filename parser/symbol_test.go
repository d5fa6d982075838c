package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableInterns(t *testing.T) {
	st := NewSymbolTable()

	a := st.Symbol([]byte("div"))
	b := st.Symbol([]byte("div"))
	c := st.SymbolString("div")

	assert.Equal(t, "div", a)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.True(t, st.Contains("div"))
	assert.False(t, st.Contains("span"))
	assert.Equal(t, "", st.Symbol(nil))
}
