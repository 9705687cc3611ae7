package assembler

import "sort"

// SymbolTable maps label text to its absolute 16-bit address. Built
// by pass 1 (address assignment), read-only during pass 2 (encoding).
type SymbolTable struct {
	addr map[string]uint16
	pos  map[string]Position
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addr: make(map[string]uint16), pos: make(map[string]Position)}
}

// Define records label at address, failing if the label was already defined.
func (st *SymbolTable) Define(label string, address uint16, pos Position) error {
	if _, exists := st.addr[label]; exists {
		return newError(pos, ErrorSymbol, label, "label %q already defined", label)
	}
	st.addr[label] = address
	st.pos[label] = pos
	return nil
}

// Lookup returns a label's address.
func (st *SymbolTable) Lookup(label string) (uint16, bool) {
	v, ok := st.addr[label]
	return v, ok
}

// Each calls fn for every defined label, ordered by ascending address.
func (st *SymbolTable) Each(fn func(label string, address uint16, pos Position)) {
	labels := make([]string, 0, len(st.addr))
	for label := range st.addr {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return st.addr[labels[i]] < st.addr[labels[j]]
	})
	for _, label := range labels {
		fn(label, st.addr[label], st.pos[label])
	}
}
