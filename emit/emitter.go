// Package emit is the Code Emission Hook: the narrow interface the
// conversion core calls through to turn a cast primitive into actual
// machine bytes, plus a reference x86/x87 implementation and the
// TypeCast-tree walker that drives it.
package emit

// Emitter is the contract a code generator backend implements so the
// cast core can lower a primitive without knowing any instruction
// encoding itself. NOP and the PRESERVE_* primitives never reach an
// Emitter — they change no bits the generator needs to act on
// (castprim.Primitive.IsNoOp, IsPreserve).
type Emitter interface {
	// MOVSBL sign-extends the low byte of src into dst as a 32-bit value
	// (INT8_TO_INT32, and INT8_TO_INT16, whose result is the low word).
	MOVSBL(dst, src Reg)

	// MOVSWL sign-extends the low word of src into dst as a 32-bit value
	// (INT16_TO_INT32).
	MOVSWL(dst, src Reg)

	// MOVZBL zero-extends the low byte of src into dst as a 32-bit value
	// (UINT8_TO_UINT32, and UINT8_TO_UINT16, whose result is the low word).
	MOVZBL(dst, src Reg)

	// MOVZWL zero-extends the low word of src into dst as a 32-bit value
	// (UINT16_TO_UINT32).
	MOVZWL(dst, src Reg)

	// CGenConvertLongToFloat pushes the 32-bit integer in src onto the
	// x87 stack as a float or double (INT32_TO_FLOAT, INT32_TO_DOUBLE).
	// The double flag selects double precision.
	CGenConvertLongToFloat(src Reg, double bool)

	// CGenConvertFloatToLong pops the top of the x87 stack, truncates
	// toward zero, and stores the result into dst as a 32-bit integer
	// (FLOAT_TO_INT32, DOUBLE_TO_INT32).
	CGenConvertFloatToLong(dst Reg)
}

// Reg is a 32-bit general-purpose register operand. The cast core never
// allocates registers itself (spec.md §4.5); Reg is an opaque token a
// caller supplies, naming which GPR already holds the value to convert.
type Reg int

const (
	EAX Reg = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
)

func (r Reg) String() string {
	names := [...]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}
	if int(r) < 0 || int(r) >= len(names) {
		return "?"
	}
	return names[r]
}
