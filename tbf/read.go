package tbf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Open opens the named file with os.Open and reads the TBF image structure.
func Open(name string) (*Image, error) {
	fp, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Read(fp)
}

// Read parses one TBF v2 image from the stream in a single forward pass.
// The version field is peeked before anything is consumed: any version other
// than 2 fails with UnsupportedVersionError without reading past the first
// two bytes.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	v, err := br.Peek(2)
	if err != nil {
		return nil, truncated("version", err)
	}
	if version := binary.LittleEndian.Uint16(v); version != Version2 {
		return nil, &UnsupportedVersionError{Version: version}
	}

	img := new(Image)
	if err := readBaseHeader(br, &img.Header); err != nil {
		return nil, err
	}
	if img.Header.HeaderSize < BaseHeaderSize {
		return nil, &BadLayoutError{
			Field: "header_size",
			Value: uint32(img.Header.HeaderSize),
			Min:   BaseHeaderSize,
		}
	}

	// The TLV block is confined to the rest of the declared header size.
	lr := &io.LimitedReader{R: br, N: int64(img.Header.HeaderSize) - BaseHeaderSize}
	if err := walkTlvs(lr, img); err != nil {
		return nil, err
	}
	// Leftover bytes from a misaligned final record are not interpreted.
	if _, err := io.Copy(io.Discard, lr); err != nil {
		return nil, truncated("header region", err)
	}

	// Protected flash between the header and the layout descriptor carries
	// no content; its size is declared by the Main block(s).
	if img.Padding > 0 {
		if _, err := io.CopyN(io.Discard, br, int64(img.Padding)); err != nil {
			return nil, truncated("protected region", err)
		}
	}

	if err := readLayoutHeader(br, &img.Layout); err != nil {
		return nil, err
	}

	size, err := img.Layout.codeSize()
	if err != nil {
		return nil, err
	}
	img.CodeAddr = codeAddr(&img.Header, img.Padding)
	img.Code = make([]byte, size)
	if _, err := io.ReadFull(br, img.Code); err != nil {
		return nil, truncated("code region", err)
	}

	if img.Trailing, err = io.ReadAll(br); err != nil {
		return nil, truncated("trailing data", err)
	}
	return img, nil
}

func readBaseHeader(r io.Reader, h *BaseHeader) error {
	var buf [BaseHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return truncated("base header", err)
	}
	h.Version = binary.LittleEndian.Uint16(buf[0:2])
	h.HeaderSize = binary.LittleEndian.Uint16(buf[2:4])
	h.TotalSize = binary.LittleEndian.Uint32(buf[4:8])
	h.Flags = binary.LittleEndian.Uint32(buf[8:12])
	h.Checksum = binary.LittleEndian.Uint32(buf[12:16])
	return nil
}

// walkTlvs reads TLV records until the bounded region has fewer than four
// bytes left, which is the normal termination condition, not an error. A
// record whose declared length reaches past the region fails as truncation
// rather than reading into whatever follows the header.
func walkTlvs(lr *io.LimitedReader, img *Image) error {
	for lr.N >= TlvHeaderSize {
		var buf [TlvHeaderSize]byte
		if _, err := io.ReadFull(lr, buf[:]); err != nil {
			return truncated("TLV header", err)
		}
		tlv := TlvHeader{
			Kind:   TlvKind(binary.LittleEndian.Uint16(buf[0:2])),
			Length: binary.LittleEndian.Uint16(buf[2:4]),
		}
		if int64(tlv.Length) > lr.N {
			return truncated(fmt.Sprintf("TLV %v payload", tlv.Kind), io.ErrUnexpectedEOF)
		}

		rec := Record{Tlv: tlv}
		switch tlv.Kind {
		case KindMain:
			m, err := readMainBlock(lr)
			if err != nil {
				return err
			}
			rec.Main = m
			img.Padding += m.ProtectedSize
		case KindPackageName:
			n, err := readPackageName(lr, int(tlv.Length))
			if err != nil {
				return err
			}
			rec.Name = n
		case KindWriteableFlashRegions:
			regs, err := readFlashRegions(lr, int(tlv.Length))
			if err != nil {
				return err
			}
			rec.Regions = regs
		default:
			// Unknown kinds are a forward-compatibility mechanism:
			// skip the payload, keep walking.
			if _, err := io.CopyN(io.Discard, lr, int64(tlv.Length)); err != nil {
				return truncated(fmt.Sprintf("TLV %v payload", tlv.Kind), err)
			}
		}
		img.Records = append(img.Records, rec)
	}
	return nil
}

func readMainBlock(r io.Reader) (*MainBlock, error) {
	var buf [MainBlockSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, truncated("main block", err)
	}
	return &MainBlock{
		InitFnOffset:   binary.LittleEndian.Uint32(buf[0:4]),
		ProtectedSize:  binary.LittleEndian.Uint32(buf[4:8]),
		MinimumRAMSize: binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}

// readPackageName reads exactly length bytes and decodes them as UTF-8.
// Invalid sequences are replaced with U+FFFD instead of failing the parse;
// embedded NULs are preserved as-is.
func readPackageName(r io.Reader, length int) (*PackageName, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, truncated("package name", err)
	}
	text := string(buf)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return &PackageName{Text: text}, nil
}

// readFlashRegions decodes length/8 (offset, size) pairs. A trailing
// fragment shorter than one entry is consumed and discarded, the same way
// unknown kinds are skipped.
func readFlashRegions(r io.Reader, length int) ([]FlashRegion, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, truncated("writeable flash regions", err)
	}
	regs := make([]FlashRegion, 0, length/FlashRegionSize)
	for i := 0; i+FlashRegionSize <= length; i += FlashRegionSize {
		regs = append(regs, FlashRegion{
			Offset: binary.LittleEndian.Uint32(buf[i : i+4]),
			Size:   binary.LittleEndian.Uint32(buf[i+4 : i+8]),
		})
	}
	return regs, nil
}

func readLayoutHeader(r io.Reader, l *LayoutHeader) error {
	var buf [LayoutHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return truncated("layout header", err)
	}
	l.GotSymStart = binary.LittleEndian.Uint32(buf[0:4])
	l.GotStart = binary.LittleEndian.Uint32(buf[4:8])
	l.GotSize = binary.LittleEndian.Uint32(buf[8:12])
	l.DataSymStart = binary.LittleEndian.Uint32(buf[12:16])
	l.DataStart = binary.LittleEndian.Uint32(buf[16:20])
	l.DataSize = binary.LittleEndian.Uint32(buf[20:24])
	l.BssStart = binary.LittleEndian.Uint32(buf[24:28])
	l.BssSize = binary.LittleEndian.Uint32(buf[28:32])
	l.ReldataStart = binary.LittleEndian.Uint32(buf[32:36])
	l.StackSize = binary.LittleEndian.Uint32(buf[36:40])
	return nil
}
