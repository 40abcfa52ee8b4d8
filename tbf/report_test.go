package tbf_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moria.us/tbfdump/tbf"
)

func dumpImage(t *testing.T, raw []byte) string {
	t.Helper()
	img, err := tbf.Read(bytes.NewReader(raw))
	require.NoError(t, err)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	img.DumpText(w, "")
	require.NoError(t, w.Flush())
	return buf.String()
}

// TestReportOrder checks the fixed report order: base header fields, TLV
// records in stream order with their payload fields, then the layout
// header fields.
func TestReportOrder(t *testing.T) {
	spec := imageSpec{
		tlvs:   nameTlv("tock\x00"),
		layout: tbf.LayoutHeader{GotSymStart: 44},
		code:   []byte{1, 2, 3, 4},
	}
	out := dumpImage(t, spec.build())

	markers := []string{"version", "checksum", "type", "package_name", "got_sym_start", "stack_size"}
	last := -1
	for _, m := range markers {
		i := strings.Index(out, m)
		require.GreaterOrEqual(t, i, 0, "missing %q in report", m)
		assert.Greater(t, i, last, "%q out of order", m)
		last = i
	}
}

func TestReportFields(t *testing.T) {
	hdr := tbf.BaseHeader{
		Version:    2,
		HeaderSize: 25,
		TotalSize:  0x2000,
		Flags:      1,
		Checksum:   0xdeadbeef,
	}
	b := tbf.AppendBaseHeader(nil, &hdr)
	b = append(b, nameTlv("tock\x00")...)
	b = tbf.AppendLayoutHeader(b, &tbf.LayoutHeader{GotSymStart: 44})
	b = append(b, 1, 2, 3, 4)
	out := dumpImage(t, b)

	assert.Contains(t, out, "version      0x0002\n")
	assert.Contains(t, out, "total_size   0x00002000  8.0 KiB\n")
	assert.Contains(t, out, "flags        0x00000001  enabled\n")
	assert.Contains(t, out, "checksum     0xdeadbeef\n")
	assert.Contains(t, out, "type    0x0003  package name\n")
	assert.Contains(t, out, "length  0x0005\n")
	assert.Contains(t, out, `package_name  "tock\x00"`)
	assert.Contains(t, out, "got_sym_start   0x0000002c\n")
}

func TestReportFlashRegions(t *testing.T) {
	b := tbf.AppendTlvHeader(nil, tbf.TlvHeader{Kind: tbf.KindWriteableFlashRegions, Length: 8})
	b = append(b, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00)
	spec := imageSpec{
		tlvs:   b,
		layout: tbf.LayoutHeader{GotSymStart: 40},
	}
	out := dumpImage(t, spec.build())
	assert.Contains(t, out, "type    0x0002  writeable flash regions\n")
	assert.Contains(t, out, "region 0  0x00000400 + 0x00000100\n")
}
