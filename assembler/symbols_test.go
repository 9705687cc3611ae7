package assembler_test

import (
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/assembler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable_EachOrdersByAscendingAddress(t *testing.T) {
	st := assembler.NewSymbolTable()
	require.NoError(t, st.Define("LOOP", 0x3005, assembler.Position{}))
	require.NoError(t, st.Define("START", 0x3000, assembler.Position{}))
	require.NoError(t, st.Define("DATA", 0x3010, assembler.Position{}))

	var labels []string
	st.Each(func(label string, address uint16, _ assembler.Position) {
		labels = append(labels, label)
	})

	assert.Equal(t, []string{"START", "LOOP", "DATA"}, labels)
}

func TestSymbolTable_DefineRejectsDuplicate(t *testing.T) {
	st := assembler.NewSymbolTable()
	require.NoError(t, st.Define("LOOP", 0x3000, assembler.Position{}))
	err := st.Define("LOOP", 0x3001, assembler.Position{})
	assert.Error(t, err)
}
