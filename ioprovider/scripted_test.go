package ioprovider_test

import (
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedIO_PollDoesNotConsume(t *testing.T) {
	s := ioprovider.NewScriptedIO("A")
	assert.True(t, s.Poll())
	assert.True(t, s.Poll()) // calling Poll again must not advance pos

	b, err := s.GetChar()
	require.NoError(t, err)
	assert.Equal(t, byte('A'), b)
}

func TestScriptedIO_PollFalseWhenExhausted(t *testing.T) {
	s := ioprovider.NewScriptedIO("")
	assert.False(t, s.Poll())

	_, err := s.GetChar()
	assert.ErrorIs(t, err, ioprovider.ErrNoMoreInput)
}

func TestScriptedIO_GetCharConsumesInOrder(t *testing.T) {
	s := ioprovider.NewScriptedIO("Hi")

	b1, err := s.GetChar()
	require.NoError(t, err)
	assert.Equal(t, byte('H'), b1)
	assert.True(t, s.Poll())

	b2, err := s.GetChar()
	require.NoError(t, err)
	assert.Equal(t, byte('i'), b2)
	assert.False(t, s.Poll())
}

func TestScriptedIO_PutCharAndPrintCapture(t *testing.T) {
	s := ioprovider.NewScriptedIO("")
	require.NoError(t, s.PutChar('x'))
	require.NoError(t, s.Print("yz"))
	assert.Equal(t, "xyz", s.Output.String())
}
