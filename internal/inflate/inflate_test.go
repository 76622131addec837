package inflate

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
)

func TestConcatenateJoinsFragmentsInOrder(t *testing.T) {
	out := Concatenate([][]byte{{1, 2}, {3}, {4, 5, 6}})
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, out)
}

func TestConcatenateHandlesNoFragments(t *testing.T) {
	out := Concatenate(nil)
	assert.Empty(t, out)
}

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func TestInflateProducesExactPredictedSize(t *testing.T) {
	payload := []byte("some scanline bytes, filtered and packed")
	compressed := zlibCompress(t, payload)

	out, err := Inflate(compressed, len(payload))
	assert.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestInflateRejectsSizeMismatch(t *testing.T) {
	payload := []byte("twelve bytes")
	compressed := zlibCompress(t, payload)

	_, err := Inflate(compressed, len(payload)+1)
	assert.Error(t, err)
}

func TestInflateRejectsUnderestimatedPredictedSize(t *testing.T) {
	payload := []byte("abc")
	compressed := zlibCompress(t, payload)

	_, err := Inflate(compressed, 1) // decompressed stream has more than the predicted 1 byte
	assert.Error(t, err)
}
