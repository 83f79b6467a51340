package emit_test

import (
	"testing"

	"github.com/arc-language/core-cast/castprim"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/emit"
	"github.com/arc-language/core-cast/env"
	"github.com/arc-language/core-cast/expr"
)

// recordingEmitter counts calls instead of encoding real instructions,
// so the lowering walker can be checked independently of the concrete
// x86 byte sequences.
type recordingEmitter struct {
	calls []string
}

func (r *recordingEmitter) MOVSBL(dst, src emit.Reg) { r.calls = append(r.calls, "MOVSBL") }
func (r *recordingEmitter) MOVSWL(dst, src emit.Reg) { r.calls = append(r.calls, "MOVSWL") }
func (r *recordingEmitter) MOVZBL(dst, src emit.Reg) { r.calls = append(r.calls, "MOVZBL") }
func (r *recordingEmitter) MOVZWL(dst, src emit.Reg) { r.calls = append(r.calls, "MOVZWL") }
func (r *recordingEmitter) CGenConvertLongToFloat(src emit.Reg, double bool) {
	r.calls = append(r.calls, "CGenConvertLongToFloat")
}
func (r *recordingEmitter) CGenConvertFloatToLong(dst emit.Reg) {
	r.calls = append(r.calls, "CGenConvertFloatToLong")
}

func TestLowerNopEmitsNothing(t *testing.T) {
	rec := &recordingEmitter{}
	l := emit.Lowerer{Emitter: rec}
	inner := expr.NewValue("v", ctypes.TLong(ctypes.Qualifiers{}), env.Zero)
	cast := expr.NewTypeCast(castprim.NOP, inner, ctypes.TLong(ctypes.Qualifiers{}), env.Zero)

	l.Lower(cast, emit.EAX)
	if len(rec.calls) != 0 {
		t.Errorf("NOP should emit nothing, got %v", rec.calls)
	}
}

func TestLowerPreserveEmitsNothing(t *testing.T) {
	rec := &recordingEmitter{}
	l := emit.Lowerer{Emitter: rec}
	inner := expr.NewValue("v", ctypes.TLong(ctypes.Qualifiers{}), env.Zero)
	cast := expr.NewTypeCast(castprim.PRESERVE_INT8, inner, ctypes.TChar(ctypes.Qualifiers{}), env.Zero)

	l.Lower(cast, emit.EAX)
	if len(rec.calls) != 0 {
		t.Errorf("PRESERVE_INT8 should emit nothing, got %v", rec.calls)
	}
}

func TestLowerFloatDoubleRoundTripEmitsNothing(t *testing.T) {
	rec := &recordingEmitter{}
	l := emit.Lowerer{Emitter: rec}
	inner := expr.NewValue("v", ctypes.TDouble(ctypes.Qualifiers{}), env.Zero)
	narrowed := expr.NewTypeCast(castprim.DOUBLE_TO_FLOAT, inner, ctypes.TFloat(ctypes.Qualifiers{}), env.Zero)
	cast := expr.NewTypeCast(castprim.FLOAT_TO_DOUBLE, narrowed, ctypes.TDouble(ctypes.Qualifiers{}), env.Zero)

	l.Lower(cast, emit.EAX)
	if len(rec.calls) != 0 {
		t.Errorf("DOUBLE_TO_FLOAT then FLOAT_TO_DOUBLE should emit nothing (x87 stays extended precision), got %v", rec.calls)
	}
}

func TestLowerChainedCasts(t *testing.T) {
	rec := &recordingEmitter{}
	l := emit.Lowerer{Emitter: rec}
	inner := expr.NewValue("v", ctypes.TDouble(ctypes.Qualifiers{}), env.Zero)
	step1 := expr.NewTypeCast(castprim.DOUBLE_TO_INT32, inner, ctypes.TLong(ctypes.Qualifiers{}), env.Zero)
	step2 := expr.NewTypeCast(castprim.PRESERVE_INT16, step1, ctypes.TUShort(ctypes.Qualifiers{}), env.Zero)

	l.Lower(step2, emit.EAX)
	want := []string{"CGenConvertFloatToLong"}
	if len(rec.calls) != len(want) || rec.calls[0] != want[0] {
		t.Errorf("expected %v, got %v", want, rec.calls)
	}
}

func TestLowerWideningPrimitive(t *testing.T) {
	rec := &recordingEmitter{}
	l := emit.Lowerer{Emitter: rec}
	inner := expr.NewValue("v", ctypes.TChar(ctypes.Qualifiers{}), env.Zero)
	cast := expr.NewTypeCast(castprim.INT8_TO_INT32, inner, ctypes.TLong(ctypes.Qualifiers{}), env.Zero)

	l.Lower(cast, emit.EAX)
	if len(rec.calls) != 1 || rec.calls[0] != "MOVSBL" {
		t.Errorf("expected a single MOVSBL call, got %v", rec.calls)
	}
}
