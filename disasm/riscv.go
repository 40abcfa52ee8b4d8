package disasm

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/riscv64/riscv64asm"
)

// NewRV32 returns a stream decoding code as RISC-V, with pc the address of
// the first byte. Mnemonics use GNU syntax. Bytes that do not decode are
// reported as .short/.word data lines, so one bad word cannot stop the
// stream.
func NewRV32(code []byte, pc uint64) *Stream {
	return &Stream{code: code, pc: pc, decode: decodeRISCV}
}

// decodeRISCV decodes one instruction and reports how many bytes it used.
// Width comes from the encoding itself: low two bits != 0b11 marks a
// two-byte compressed instruction.
func decodeRISCV(code []byte, pc uint64) (Inst, int) {
	n := 4
	if code[0]&3 != 3 {
		n = 2
	}
	if len(code) < n {
		// Fragment narrower than its own encoding claims.
		return Inst{PC: pc, Text: fmt.Sprintf(".byte 0x%02x", code[0])}, 1
	}
	inst, err := riscv64asm.Decode(code[:n])
	if err != nil {
		if n == 2 {
			return Inst{PC: pc, Text: fmt.Sprintf(".short 0x%04x", binary.LittleEndian.Uint16(code))}, n
		}
		return Inst{PC: pc, Text: fmt.Sprintf(".word 0x%08x", binary.LittleEndian.Uint32(code))}, n
	}
	return Inst{PC: pc, Text: riscv64asm.GNUSyntax(inst)}, n
}
