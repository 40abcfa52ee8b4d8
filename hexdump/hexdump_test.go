package hexdump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moria.us/tbfdump/hexdump"
)

func TestEmpty(t *testing.T) {
	assert.Equal(t, "", hexdump.String(nil))
	assert.Equal(t, "", hexdump.String([]byte{}))
}

func TestFullRow(t *testing.T) {
	out := hexdump.String([]byte("0123456789abcdef"))
	want := "00000000  30 31 32 33 34 35 36 37  38 39 61 62 63 64 65 66  |0123456789abcdef|\n"
	assert.Equal(t, want, out)
}

func TestPartialRowOffsets(t *testing.T) {
	data := make([]byte, 17)
	for i := range data {
		data[i] = byte(i)
	}
	data[16] = 'g'
	out := hexdump.String(data)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "00000000  00 01 02 03"), "line %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "00000010  67"), "line %q", lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "|g|"), "line %q", lines[1])
	// Partial rows pad the hex columns so the gutters line up.
	assert.Equal(t, strings.Index(lines[0], "|"), strings.Index(lines[1], "|"))
}

func TestNonPrintable(t *testing.T) {
	out := hexdump.String([]byte{0x00, 'A', 0x7f, 0x1f, '~'})
	assert.True(t, strings.HasSuffix(out, "|.A..~|\n"), "got %q", out)
}
