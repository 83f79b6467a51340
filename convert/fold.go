package convert

import (
	"github.com/arc-language/core-cast/castprim"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/env"
	"github.com/arc-language/core-cast/expr"
)

// integralBits returns the raw 32-bit pattern backing a constant
// integral expression (sign- or zero-extended into the low bits as the
// source kind dictates) and whether e is such a constant.
func integralBits(e expr.Expr) (uint32, bool) {
	switch c := e.(type) {
	case expr.ConstLong:
		return uint32(c.Value), true
	case expr.ConstULong:
		return c.Value, true
	default:
		return 0, false
	}
}

// floatValue returns a constant FLOAT or DOUBLE's value as a float64,
// and whether e is such a constant.
func floatValue(e expr.Expr) (float64, bool) {
	switch c := e.(type) {
	case expr.ConstFloat:
		return float64(c.Value), true
	case expr.ConstDouble:
		return c.Value, true
	default:
		return 0, false
	}
}

// foldIntegralTo builds the Const* variant for destKind out of a raw
// 32-bit pattern, truncating with the host's two's-complement semantics
// — spec.md §9(d): "specify it explicitly so an implementation on a
// non-standard target does not drift."
func foldIntegralTo(bits uint32, destKind ctypes.Kind, environment env.Handle) expr.Expr {
	switch destKind {
	case ctypes.CHAR:
		return expr.NewConstLong(ctypes.CHAR, int32(int8(bits)), environment)
	case ctypes.SHORT:
		return expr.NewConstLong(ctypes.SHORT, int32(int16(bits)), environment)
	case ctypes.LONG:
		return expr.NewConstLong(ctypes.LONG, int32(bits), environment)
	case ctypes.UCHAR:
		return expr.NewConstULong(ctypes.UCHAR, uint32(uint8(bits)), environment)
	case ctypes.USHORT:
		return expr.NewConstULong(ctypes.USHORT, uint32(uint16(bits)), environment)
	case ctypes.ULONG:
		return expr.NewConstULong(ctypes.ULONG, bits, environment)
	default:
		panic("convert: foldIntegralTo called with non-integral destKind " + destKind.String())
	}
}

// foldIntegralToFloating builds a ConstFloat or ConstDouble out of a raw
// 32-bit pattern, interpreted as signed or unsigned per the signed flag.
// Both engine call sites pass true, so unsigned sources are read as
// signed too (see UnsignedIntegralToArithIn).
func foldIntegralToFloating(bits uint32, signed bool, destKind ctypes.Kind, environment env.Handle) expr.Expr {
	var v float64
	if signed {
		v = float64(int32(bits))
	} else {
		v = float64(bits)
	}
	if destKind == ctypes.FLOAT {
		return expr.NewConstFloat(float32(v), environment)
	}
	return expr.NewConstDouble(v, environment)
}

// foldFloatingToIntegral truncates a floating constant toward zero into
// an int32, then reuses foldIntegralTo for the final narrowing — the
// same two-step pipeline the non-constant path uses (FLOAT_TO_INT32 /
// DOUBLE_TO_INT32 followed by PRESERVE_INT8/PRESERVE_INT16).
func foldFloatingToIntegral(v float64, destKind ctypes.Kind, environment env.Handle) expr.Expr {
	truncated := int32(v) // Go truncates float-to-int toward zero
	return foldIntegralTo(uint32(truncated), destKind, environment)
}

// wrap builds a non-constant TypeCast applying primitive p to inner,
// producing a value of type t tagged with environment.
func wrap(p castprim.Primitive, inner expr.Expr, t ctypes.Type, environment env.Handle) expr.Expr {
	return expr.NewTypeCast(p, inner, t, environment)
}

func typeOfKind(k ctypes.Kind, q ctypes.Qualifiers) ctypes.Type {
	switch k {
	case ctypes.CHAR:
		return ctypes.TChar(q)
	case ctypes.UCHAR:
		return ctypes.TUChar(q)
	case ctypes.SHORT:
		return ctypes.TShort(q)
	case ctypes.USHORT:
		return ctypes.TUShort(q)
	case ctypes.LONG:
		return ctypes.TLong(q)
	case ctypes.ULONG:
		return ctypes.TULong(q)
	case ctypes.FLOAT:
		return ctypes.TFloat(q)
	case ctypes.DOUBLE:
		return ctypes.TDouble(q)
	default:
		panic("convert: typeOfKind called with non-arithmetic kind " + k.String())
	}
}
