package tbf

import "encoding/binary"

// The Append functions are exact inverses of the readers. They exist to
// construct images, synthetic or otherwise; this package never rewrites an
// image it has read.

// AppendBaseHeader appends the 16-byte encoding of h to b.
func AppendBaseHeader(b []byte, h *BaseHeader) []byte {
	var d [BaseHeaderSize]byte
	binary.LittleEndian.PutUint16(d[0:], h.Version)
	binary.LittleEndian.PutUint16(d[2:], h.HeaderSize)
	binary.LittleEndian.PutUint32(d[4:], h.TotalSize)
	binary.LittleEndian.PutUint32(d[8:], h.Flags)
	binary.LittleEndian.PutUint32(d[12:], h.Checksum)
	return append(b, d[:]...)
}

// AppendTlvHeader appends the 4-byte encoding of t to b.
func AppendTlvHeader(b []byte, t TlvHeader) []byte {
	var d [TlvHeaderSize]byte
	binary.LittleEndian.PutUint16(d[0:], uint16(t.Kind))
	binary.LittleEndian.PutUint16(d[2:], t.Length)
	return append(b, d[:]...)
}

// AppendMainBlock appends the 12-byte encoding of m to b.
func AppendMainBlock(b []byte, m *MainBlock) []byte {
	var d [MainBlockSize]byte
	binary.LittleEndian.PutUint32(d[0:], m.InitFnOffset)
	binary.LittleEndian.PutUint32(d[4:], m.ProtectedSize)
	binary.LittleEndian.PutUint32(d[8:], m.MinimumRAMSize)
	return append(b, d[:]...)
}

// AppendLayoutHeader appends the 40-byte encoding of l to b.
func AppendLayoutHeader(b []byte, l *LayoutHeader) []byte {
	var d [LayoutHeaderSize]byte
	binary.LittleEndian.PutUint32(d[0:], l.GotSymStart)
	binary.LittleEndian.PutUint32(d[4:], l.GotStart)
	binary.LittleEndian.PutUint32(d[8:], l.GotSize)
	binary.LittleEndian.PutUint32(d[12:], l.DataSymStart)
	binary.LittleEndian.PutUint32(d[16:], l.DataStart)
	binary.LittleEndian.PutUint32(d[20:], l.DataSize)
	binary.LittleEndian.PutUint32(d[24:], l.BssStart)
	binary.LittleEndian.PutUint32(d[28:], l.BssSize)
	binary.LittleEndian.PutUint32(d[32:], l.ReldataStart)
	binary.LittleEndian.PutUint32(d[36:], l.StackSize)
	return append(b, d[:]...)
}
