package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateMachineAcceptsWellOrderedStream(t *testing.T) {
	sm := NewStateMachine()
	assert.NoError(t, sm.advance(IHDR))
	assert.NoError(t, sm.advance(IDAT))
	assert.NoError(t, sm.advance(IDAT))
	assert.NoError(t, sm.advance(IEND))
	assert.True(t, sm.Done())
}

func TestStateMachineRejectsIDATBeforeIHDR(t *testing.T) {
	sm := NewStateMachine()
	assert.Error(t, sm.advance(IDAT))
}

func TestStateMachineRejectsSplitIDATRun(t *testing.T) {
	sm := NewStateMachine()
	assert.NoError(t, sm.advance(IHDR))
	assert.NoError(t, sm.advance(IDAT))
	assert.NoError(t, sm.advance(TIME)) // ends the IDAT run
	assert.Error(t, sm.advance(IDAT))   // may not resume it
}

func TestStateMachineRejectsPaletteAfterIDAT(t *testing.T) {
	sm := NewStateMachine()
	sm.colorType = ColorIndexed
	assert.NoError(t, sm.advance(IHDR))
	assert.NoError(t, sm.advance(PLTE))
	assert.NoError(t, sm.advance(IDAT))
	assert.Error(t, sm.advance(PLTE))
}

func TestStateMachineRejectsIndexedColorWithoutPalette(t *testing.T) {
	sm := NewStateMachine()
	sm.colorType = ColorIndexed
	assert.NoError(t, sm.advance(IHDR))
	assert.Error(t, sm.advance(IDAT))
}

func TestStateMachineRejectsIENDWithoutIDAT(t *testing.T) {
	sm := NewStateMachine()
	assert.NoError(t, sm.advance(IHDR))
	assert.Error(t, sm.advance(IEND))
}

func TestDispatchIgnoresChunksAfterIEND(t *testing.T) {
	store := NewStore()
	sm := NewStateMachine()
	sm.advance(IHDR)
	sm.advance(IDAT)
	sm.advance(IEND)

	result := Dispatch(store, sm, Raw{Type: TEXT, Data: []byte("k\x00v")})
	assert.Nil(t, result.Err)
	assert.Nil(t, result.Warn)
	assert.Empty(t, store.TextEntries)
}

func TestDispatchRejectsUnknownCriticalChunk(t *testing.T) {
	store := NewStore()
	sm := NewStateMachine()
	sm.advance(IHDR)
	result := Dispatch(store, sm, Raw{Type: Type{"xXXx"}, Data: nil})
	assert.Nil(t, result.Err) // lowercase first letter: ancillary, ignored

	result = Dispatch(store, sm, Raw{Type: Type{"XXXX"}, Data: nil})
	assert.Error(t, result.Err)
}

func TestDispatchDowngradesAncillaryParseFailureToWarning(t *testing.T) {
	store := NewStore()
	sm := NewStateMachine()
	sm.advance(IHDR)
	result := Dispatch(store, sm, Raw{Type: GAMA, Data: []byte{1, 2}}) // too short
	assert.Nil(t, result.Err)
	assert.Error(t, result.Warn)
}
