package parser

// SymbolTable interns the recurring names of a document (element and
// attribute names, namespace prefixes and URIs) so that every pipeline
// stage sees the same string value for the same symbol. Downstream
// stages can then compare symbols directly instead of re-hashing them
// for every event.
type SymbolTable struct {
	symbols map[string]string
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]string)}
}

// Symbol returns the interned string for the characters in b, adding it
// to the table on first sight.
func (t *SymbolTable) Symbol(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if s, ok := t.symbols[string(b)]; ok {
		return s
	}
	s := string(b)
	t.symbols[s] = s
	return s
}

// SymbolString is Symbol for callers that already hold a string.
func (t *SymbolTable) SymbolString(v string) string {
	if v == "" {
		return ""
	}
	if s, ok := t.symbols[v]; ok {
		return s
	}
	t.symbols[v] = v
	return v
}

// Contains reports whether v has already been interned.
func (t *SymbolTable) Contains(v string) bool {
	_, ok := t.symbols[v]
	return ok
}
