package tbf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moria.us/tbfdump/tbf"
)

func TestEncodedSizes(t *testing.T) {
	assert.Len(t, tbf.AppendBaseHeader(nil, &tbf.BaseHeader{}), tbf.BaseHeaderSize)
	assert.Len(t, tbf.AppendTlvHeader(nil, tbf.TlvHeader{}), tbf.TlvHeaderSize)
	assert.Len(t, tbf.AppendMainBlock(nil, &tbf.MainBlock{}), tbf.MainBlockSize)
	assert.Len(t, tbf.AppendLayoutHeader(nil, &tbf.LayoutHeader{}), tbf.LayoutHeaderSize)
}

// TestBaseHeaderRoundTrip decodes a header and re-encodes it; the bytes
// must come back identical.
func TestBaseHeaderRoundTrip(t *testing.T) {
	orig := tbf.AppendBaseHeader(nil, &tbf.BaseHeader{
		Version:    2,
		HeaderSize: 0x40,
		TotalSize:  0x10000,
		Flags:      3,
		Checksum:   0x1234abcd,
	})
	// Pad out to a full, valid image so Read accepts it.
	img := append(append([]byte{}, orig...), make([]byte, 0x40-tbf.BaseHeaderSize)...)
	img = tbf.AppendLayoutHeader(img, &tbf.LayoutHeader{GotSymStart: 40})

	decoded, err := tbf.Read(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, orig, tbf.AppendBaseHeader(nil, &decoded.Header))
}

func TestLayoutHeaderRoundTrip(t *testing.T) {
	layout := tbf.LayoutHeader{
		GotSymStart:  0x60,
		GotStart:     0x2000,
		GotSize:      0x20,
		DataSymStart: 0x80,
		DataStart:    0x2020,
		DataSize:     0x100,
		BssStart:     0x2120,
		BssSize:      0x400,
		ReldataStart: 0xa0,
		StackSize:    0x1000,
	}
	orig := tbf.AppendLayoutHeader(nil, &layout)

	spec := imageSpec{
		layout: layout,
		code:   make([]byte, 0x60-tbf.LayoutHeaderSize),
	}
	decoded, err := tbf.Read(bytes.NewReader(spec.build()))
	require.NoError(t, err)
	assert.Equal(t, orig, tbf.AppendLayoutHeader(nil, &decoded.Layout))
}
