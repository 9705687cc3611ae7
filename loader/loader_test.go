package loader_test

import (
	"bytes"
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
	"github.com/lookbusy1344/lc3-toolchain/loader"
	"github.com/lookbusy1344/lc3-toolchain/object"
	"github.com/lookbusy1344/lc3-toolchain/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PlacesImageAndNotesOrigin(t *testing.T) {
	words := []uint16{0x3000, 0xF025}
	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, words))

	machine := vm.New(ioprovider.NewScriptedIO(""))
	require.NoError(t, loader.Load(machine, &buf))

	assert.Equal(t, uint16(0xF025), machine.Mem.ReadRaw(0x3000))
	assert.Equal(t, uint16(0x3000), machine.LoadedOrigin)
}

func TestLoad_ResetAfterLoadHonorsOrigin(t *testing.T) {
	words := []uint16{0x5000, 0xF025}
	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, words))

	machine := vm.New(ioprovider.NewScriptedIO(""))
	require.NoError(t, loader.Load(machine, &buf))
	machine.Reset()

	assert.Equal(t, uint16(0x5000), machine.Reg.PC())
}

func TestLoad_BadStreamIsFatal(t *testing.T) {
	machine := vm.New(ioprovider.NewScriptedIO(""))
	err := loader.Load(machine, bytes.NewReader([]byte{0x01}))
	assert.Error(t, err)
}

func TestLoad_ImageOverflowingAddressSpaceIsRejected(t *testing.T) {
	// Origin near the top of the address space plus two words walks
	// past 0xFFFF; Load must reject this rather than silently wrap
	// addr back to 0 and overwrite the image's own start.
	words := []uint16{0xFFFF, 0x1111, 0x2222}
	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, words))

	machine := vm.New(ioprovider.NewScriptedIO(""))
	err := loader.Load(machine, &buf)
	assert.Error(t, err)
}

func TestLoad_ImageEndingExactlyAtTopOfAddressSpaceIsAccepted(t *testing.T) {
	words := []uint16{0xFFFF, 0x1111}
	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, words))

	machine := vm.New(ioprovider.NewScriptedIO(""))
	require.NoError(t, loader.Load(machine, &buf))
	assert.Equal(t, uint16(0x1111), machine.Mem.ReadRaw(0xFFFF))
}
