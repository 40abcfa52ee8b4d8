package tbf

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const hexDigits = "0123456789abcdef"

func writeInt0(w *bufio.Writer, v uint32, sz uint) {
	for i := uint(sz * 2); i > 0; i-- {
		w.WriteByte(hexDigits[(v>>((i-1)*4))&15])
	}
}

func writeInt(w *bufio.Writer, v uint32, sz uint) {
	w.WriteString("0x")
	writeInt0(w, v, sz)
}

type field struct {
	name string
	data interface{}
	hint string
}

func dumpFields(w *bufio.Writer, prefix string, fields []field) {
	maxName := 0
	for _, f := range fields {
		if len(f.name) > maxName {
			maxName = len(f.name)
		}
	}
	for _, f := range fields {
		w.WriteString(prefix)
		w.WriteString(f.name)
		for i := len(f.name); i < maxName+2; i++ {
			w.WriteByte(' ')
		}
		switch v := f.data.(type) {
		case uint16:
			writeInt(w, uint32(v), 2)
		case uint32:
			writeInt(w, v, 4)
		case string:
			w.WriteString(strconv.Quote(v))
		case FlashRegion:
			writeInt(w, v.Offset, 4)
			w.WriteString(" + ")
			writeInt(w, v.Size, 4)
		default:
			panic("unknown field type for " + f.name)
		}
		if f.hint != "" {
			w.WriteString("  ")
			w.WriteString(f.hint)
		}
		w.WriteByte('\n')
	}
}

func flagNames(v uint32) string {
	var names []string
	if v&1 != 0 {
		names = append(names, "enabled")
	}
	if v&2 != 0 {
		names = append(names, "sticky")
	}
	return strings.Join(names, ", ")
}

// DumpText writes the base header, in text format, to the writer.
func (h *BaseHeader) DumpText(w *bufio.Writer, prefix string) {
	dumpFields(w, prefix, []field{
		{"version", h.Version, ""},
		{"header_size", h.HeaderSize, ""},
		{"total_size", h.TotalSize, humanize.IBytes(uint64(h.TotalSize))},
		{"flags", h.Flags, flagNames(h.Flags)},
		{"checksum", h.Checksum, ""},
	})
}

// DumpText writes the main block fields, in text format, to the writer.
func (m *MainBlock) DumpText(w *bufio.Writer, prefix string) {
	dumpFields(w, prefix, []field{
		{"init_fn_offset", m.InitFnOffset, ""},
		{"protected_size", m.ProtectedSize, ""},
		{"minimum_ram_size", m.MinimumRAMSize, humanize.IBytes(uint64(m.MinimumRAMSize))},
	})
}

// DumpText writes one TLV record with its payload fields to the writer.
func (r *Record) DumpText(w *bufio.Writer, prefix string) {
	dumpFields(w, prefix, []field{
		{"type", uint16(r.Tlv.Kind), r.Tlv.Kind.String()},
		{"length", r.Tlv.Length, ""},
	})
	switch {
	case r.Main != nil:
		r.Main.DumpText(w, prefix)
	case r.Name != nil:
		dumpFields(w, prefix, []field{
			{"package_name", r.Name.Text, ""},
		})
	case r.Regions != nil:
		fields := make([]field, len(r.Regions))
		for i, reg := range r.Regions {
			fields[i] = field{"region " + strconv.Itoa(i), reg, ""}
		}
		dumpFields(w, prefix, fields)
	}
}

// DumpText writes the layout header, in text format, to the writer.
func (l *LayoutHeader) DumpText(w *bufio.Writer, prefix string) {
	dumpFields(w, prefix, []field{
		{"got_sym_start", l.GotSymStart, ""},
		{"got_start", l.GotStart, ""},
		{"got_size", l.GotSize, ""},
		{"data_sym_start", l.DataSymStart, ""},
		{"data_start", l.DataStart, ""},
		{"data_size", l.DataSize, ""},
		{"bss_start", l.BssStart, ""},
		{"bss_size", l.BssSize, ""},
		{"reldata_start", l.ReldataStart, ""},
		{"stack_size", l.StackSize, humanize.IBytes(uint64(l.StackSize))},
	})
}

// DumpText writes the whole decoded image, in text format, to the writer:
// base header first, TLV records in stream order, then the layout header.
func (img *Image) DumpText(w *bufio.Writer, prefix string) {
	img.Header.DumpText(w, prefix)
	for i := range img.Records {
		w.WriteByte('\n')
		img.Records[i].DumpText(w, prefix)
	}
	w.WriteByte('\n')
	img.Layout.DumpText(w, prefix)
}
