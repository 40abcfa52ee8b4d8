// Package tbf reads Tock Binary Format (TBF) v2 application images.
//
// A TBF image is a fixed 16-byte base header, a TLV metadata block filling
// the rest of the declared header size, an optional protected (padding)
// region, a fixed 40-byte layout descriptor, the application code, and any
// trailing data. All multi-byte fields are little endian.
package tbf

// On-disk sizes of the fixed structures. Every structure is decoded
// field by field, so these are explicit constants rather than derived
// from Go struct layout.
const (
	// BaseHeaderSize is the size of the fixed header preamble.
	BaseHeaderSize = 16
	// TlvHeaderSize is the size of one TLV record header (kind + length).
	TlvHeaderSize = 4
	// MainBlockSize is the size of the Main TLV payload.
	MainBlockSize = 12
	// LayoutHeaderSize is the size of the post-header layout descriptor.
	LayoutHeaderSize = 40
	// FlashRegionSize is the size of one writeable flash region entry.
	FlashRegionSize = 8
)

// Version2 is the only TBF header version this package supports.
const Version2 = 2

// A TlvKind identifies the payload type of one TLV record.
type TlvKind uint16

const (
	// KindMain is the main block: entry point and memory requirements.
	KindMain TlvKind = 1
	// KindWriteableFlashRegions lists flash regions the app may write.
	KindWriteableFlashRegions TlvKind = 2
	// KindPackageName is the human-readable package name.
	KindPackageName TlvKind = 3
	// KindUnused is a reserved kind emitted by some toolchains.
	KindUnused TlvKind = 5
)

func (k TlvKind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindWriteableFlashRegions:
		return "writeable flash regions"
	case KindPackageName:
		return "package name"
	case KindUnused:
		return "unused"
	default:
		return "unknown"
	}
}

// A BaseHeader is the fixed preamble at the start of every TBF image.
type BaseHeader struct {
	Version    uint16 // header format version, must be 2
	HeaderSize uint16 // total header size including the TLV block
	TotalSize  uint32 // total image size, header included
	Flags      uint32 // enabled/sticky flags
	Checksum   uint32 // XOR checksum over the header, not verified here
}

// A TlvHeader is the kind and declared payload length of one TLV record.
type TlvHeader struct {
	Kind   TlvKind
	Length uint16
}

// A MainBlock is the payload of a Main TLV record.
type MainBlock struct {
	InitFnOffset   uint32 // entry point offset from the start of the image
	ProtectedSize  uint32 // padding bytes between header and layout header
	MinimumRAMSize uint32 // RAM the app needs to start
}

// A FlashRegion is one entry of a WriteableFlashRegions TLV payload.
type FlashRegion struct {
	Offset uint32 // offset of the region from the start of the image
	Size   uint32 // size of the region
}

// A LayoutHeader is the fixed descriptor that follows the protected region
// and gives the memory geometry of the application.
type LayoutHeader struct {
	GotSymStart  uint32 // end of the code region, relative to this header
	GotStart     uint32
	GotSize      uint32
	DataSymStart uint32
	DataStart    uint32
	DataSize     uint32
	BssStart     uint32
	BssSize      uint32
	ReldataStart uint32
	StackSize    uint32
}

// A Record is one TLV record in stream order. Exactly one of the payload
// fields is set, matching the kind; unknown kinds carry none.
type Record struct {
	Tlv     TlvHeader
	Main    *MainBlock    // kind KindMain
	Name    *PackageName  // kind KindPackageName
	Regions []FlashRegion // kind KindWriteableFlashRegions
}

// A PackageName is the decoded payload of a PackageName TLV record. Text is
// valid UTF-8; invalid input sequences are replaced, never fatal.
type PackageName struct {
	Text string
}

// An Image is the result of one inspection pass over a TBF v2 image.
type Image struct {
	Header  BaseHeader
	Records []Record
	Padding uint32 // protected-region bytes skipped, summed from Main blocks
	Layout  LayoutHeader

	// Code holds the executable region, the bytes between the end of the
	// layout header and GotSymStart. CodeAddr is the file offset of the
	// first code byte (headerSize + padding + layout header); reporting
	// file offsets keeps disassembly addresses in line with a raw hex
	// dump of the same image.
	Code     []byte
	CodeAddr uint64

	// Trailing holds everything after the code region, verbatim.
	Trailing []byte
}
