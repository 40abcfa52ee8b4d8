// Package disasm decodes machine code into printable instruction listings.
package disasm

// An Inst is one decoded instruction.
type Inst struct {
	PC   uint64 // address of the instruction
	Text string // formatted disassembly
}

// A Stream is a lazy, forward-only sequence of decoded instructions. It is
// finite and non-restartable: each call to Next consumes one instruction
// from the underlying buffer.
type Stream struct {
	code   []byte
	pc     uint64
	decode func(code []byte, pc uint64) (Inst, int)
}

// Next returns the next instruction in address order. ok is false once the
// buffer is exhausted.
func (s *Stream) Next() (inst Inst, ok bool) {
	if len(s.code) == 0 {
		return Inst{}, false
	}
	inst, n := s.decode(s.code, s.pc)
	s.code = s.code[n:]
	s.pc += uint64(n)
	return inst, true
}
