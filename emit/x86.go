package emit

import "bytes"

// X86Emitter is a reference Emitter writing raw 32-bit x86 machine code
// into an in-memory buffer, adapted from the teacher's REX-prefixed
// AMD64/SSE encoder down to plain x86 register-to-register moves and
// x87 stack arithmetic — there is no REX prefix and no XMM file at this
// width, so conversions to/from FLOAT/DOUBLE round-trip through the x87
// top-of-stack via a scratch dword on the stack rather than a movd/movq
// to an XMM register.
type X86Emitter struct {
	text *bytes.Buffer
}

// NewX86Emitter returns an Emitter that appends to a fresh buffer.
func NewX86Emitter() *X86Emitter {
	return &X86Emitter{text: new(bytes.Buffer)}
}

// Bytes returns the machine code emitted so far.
func (x *X86Emitter) Bytes() []byte {
	return x.text.Bytes()
}

func (x *X86Emitter) emitBytes(b ...byte) {
	x.text.Write(b)
}

func modrmRegReg(dst, src Reg) byte {
	return 0xC0 | byte(dst)<<3 | byte(src)
}

// MOVSBL dst, src — 0F BE /r.
func (x *X86Emitter) MOVSBL(dst, src Reg) {
	x.emitBytes(0x0F, 0xBE, modrmRegReg(dst, src))
}

// MOVSWL dst, src — 0F BF /r.
func (x *X86Emitter) MOVSWL(dst, src Reg) {
	x.emitBytes(0x0F, 0xBF, modrmRegReg(dst, src))
}

// MOVZBL dst, src — 0F B6 /r.
func (x *X86Emitter) MOVZBL(dst, src Reg) {
	x.emitBytes(0x0F, 0xB6, modrmRegReg(dst, src))
}

// MOVZWL dst, src — 0F B7 /r.
func (x *X86Emitter) MOVZWL(dst, src Reg) {
	x.emitBytes(0x0F, 0xB7, modrmRegReg(dst, src))
}

// CGenConvertLongToFloat pushes src to the stack, loads it onto the x87
// stack with FILD, then restores the stack pointer. The double flag
// names the eventual store precision; loading itself is always full
// x87 extended precision, so it has no bearing on the bytes emitted
// here.
func (x *X86Emitter) CGenConvertLongToFloat(src Reg, double bool) {
	_ = double
	x.emitBytes(0x50 + byte(src)) // PUSH r32
	x.emitBytes(0xDB, 0x04, 0x24) // FILD dword [esp]
	x.emitBytes(0x83, 0xC4, 0x04) // ADD esp, 4
}

// CGenConvertFloatToLong reserves a scratch dword, truncates the x87
// top-of-stack toward zero into it with FISTTP, and pops the result
// into dst.
func (x *X86Emitter) CGenConvertFloatToLong(dst Reg) {
	x.emitBytes(0x83, 0xEC, 0x04) // SUB esp, 4
	x.emitBytes(0xDB, 0x0C, 0x24) // FISTTP dword [esp]
	x.emitBytes(0x58 + byte(dst)) // POP r32
}
