package tbf

// codeSize returns the length of the executable region: the bytes between
// the end of the layout header and GotSymStart. A GotSymStart inside the
// layout header would make the range negative.
func (l *LayoutHeader) codeSize() (uint32, error) {
	if l.GotSymStart < LayoutHeaderSize {
		return 0, &BadLayoutError{
			Field: "got_sym_start",
			Value: l.GotSymStart,
			Min:   LayoutHeaderSize,
		}
	}
	return l.GotSymStart - LayoutHeaderSize, nil
}

// codeAddr returns the file offset of the first code byte. Disassembly uses
// file offsets as instruction addresses so its output lines up with a raw
// hex dump of the same image.
func codeAddr(h *BaseHeader, padding uint32) uint64 {
	return uint64(h.HeaderSize) + uint64(padding) + LayoutHeaderSize
}
