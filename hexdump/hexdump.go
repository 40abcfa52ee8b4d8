// Package hexdump renders byte buffers as hex/ASCII panels, sixteen bytes
// per row: an eight-digit offset, two eight-byte hex columns, and a gutter
// showing printable ASCII.
package hexdump

import (
	"bufio"
	"io"
	"strings"
)

const hexDigits = "0123456789abcdef"

const rowBytes = 16

// Dump writes data to w, one panel row per sixteen bytes. Empty input
// writes nothing.
func Dump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += rowBytes {
		row := data[off:]
		if len(row) > rowBytes {
			row = row[:rowBytes]
		}
		writeRow(bw, uint32(off), row)
	}
	return bw.Flush()
}

// String renders data as with Dump and returns the result.
func String(data []byte) string {
	var sb strings.Builder
	Dump(&sb, data)
	return sb.String()
}

func writeRow(w *bufio.Writer, off uint32, row []byte) {
	for i := uint(8); i > 0; i-- {
		w.WriteByte(hexDigits[(off>>((i-1)*4))&15])
	}
	w.WriteString("  ")
	for i := 0; i < rowBytes; i++ {
		if i == 8 {
			w.WriteByte(' ')
		}
		if i < len(row) {
			c := row[i]
			w.WriteByte(hexDigits[c>>4])
			w.WriteByte(hexDigits[c&15])
		} else {
			w.WriteString("  ")
		}
		w.WriteByte(' ')
	}
	w.WriteString(" |")
	for _, c := range row {
		if 0x20 <= c && c <= 0x7e {
			w.WriteByte(c)
		} else {
			w.WriteByte('.')
		}
	}
	w.WriteString("|\n")
}
