package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestDeferredWriter_Flush(t *testing.T) {
	d := &DeferredWriter{}
	logger := zerolog.New(d)

	logger.Info().Msg("first")
	logger.Warn().Str("handle", "abc").Msg("second")
	require.Equal(t, 2, d.Len())

	var buf bytes.Buffer
	require.NoError(t, d.Flush(zerolog.ConsoleWriter{Out: &buf, NoColor: true}))

	out := buf.String()
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "handle=abc")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("first")), bytes.Index(buf.Bytes(), []byte("second")))
	assert.Equal(t, 0, d.Len(), "flush clears the buffer")
}

func TestDeferredWriter_FlushError(t *testing.T) {
	d := &DeferredWriter{}
	_, _ = d.Write([]byte("x"))

	err := d.Flush(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
