package emit

import (
	"github.com/arc-language/core-cast/castprim"
	"github.com/arc-language/core-cast/expr"
)

// Lowerer walks a TypeCast tree and drives an Emitter, the same
// switch-on-opcode shape the teacher's instruction selector uses for
// ir.Opcode (arch/amd64/ops.go), retargeted to castprim.Primitive.
type Lowerer struct {
	Emitter Emitter
}

// Lower emits the instruction sequence for node, assuming its innermost
// non-cast operand already lives in reg. It returns the register (or,
// for a result left on the x87 stack, the same token passed in — the
// x87 domain has no addressable register file) holding the final
// value.
//
// FLOAT_TO_DOUBLE and DOUBLE_TO_FLOAT join NOP and the PRESERVE_*
// primitives in emitting nothing: the x87 stack always carries full
// extended precision, so widening or narrowing between FLOAT and
// DOUBLE only changes what a later store instruction truncates to, not
// anything the top of the stack itself holds.
func (l *Lowerer) Lower(node expr.Expr, reg Reg) Reg {
	tc, ok := node.(expr.TypeCast)
	if !ok {
		return reg
	}
	reg = l.Lower(tc.Inner, reg)

	switch tc.Kind {
	case castprim.NOP, castprim.PRESERVE_INT8, castprim.PRESERVE_INT16:
		return reg
	case castprim.INT8_TO_INT16, castprim.INT8_TO_INT32:
		l.Emitter.MOVSBL(reg, reg)
		return reg
	case castprim.INT16_TO_INT32:
		l.Emitter.MOVSWL(reg, reg)
		return reg
	case castprim.UINT8_TO_UINT16, castprim.UINT8_TO_UINT32:
		l.Emitter.MOVZBL(reg, reg)
		return reg
	case castprim.UINT16_TO_UINT32:
		l.Emitter.MOVZWL(reg, reg)
		return reg
	case castprim.INT32_TO_FLOAT:
		l.Emitter.CGenConvertLongToFloat(reg, false)
		return reg
	case castprim.INT32_TO_DOUBLE:
		l.Emitter.CGenConvertLongToFloat(reg, true)
		return reg
	case castprim.FLOAT_TO_INT32, castprim.DOUBLE_TO_INT32:
		l.Emitter.CGenConvertFloatToLong(reg)
		return reg
	case castprim.FLOAT_TO_DOUBLE, castprim.DOUBLE_TO_FLOAT:
		return reg
	default:
		return reg
	}
}
