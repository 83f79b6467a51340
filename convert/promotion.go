package convert

import (
	"github.com/arc-language/core-cast/cerrors"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/expr"
)

// IntegralPromotion widens a CHAR/SHORT (or unsigned counterpart) to
// LONG/ULONG. A source already at LONG/ULONG is returned unchanged via
// MakeCast's equal-type shortcut, so repeated promotion is a fixpoint.
func IntegralPromotion(e expr.Expr) (expr.Expr, error) {
	t := e.Type()
	if !t.IsIntegral() {
		return nil, cerrors.New(cerrors.NonIntegralPromotion, "integralPromotion", "not an integral type: "+t.Kind().String())
	}
	if t.IsSigned() {
		return MakeCast(e, ctypes.TLong(t.Qualifiers()))
	}
	return MakeCast(e, ctypes.TULong(t.Qualifiers()))
}

// rankKind picks the result kind of the usual arithmetic conversion
// between two already-promoted operand types, by priority DOUBLE >
// FLOAT > ULONG > LONG. Qualifiers are not decided here — each operand
// keeps its own (spec.md §4.4: "qualifiers of each operand are preserved
// on its own side").
func rankKind(a, b ctypes.Kind) ctypes.Kind {
	if a == ctypes.DOUBLE || b == ctypes.DOUBLE {
		return ctypes.DOUBLE
	}
	if a == ctypes.FLOAT || b == ctypes.FLOAT {
		return ctypes.FLOAT
	}
	if a == ctypes.ULONG || b == ctypes.ULONG {
		return ctypes.ULONG
	}
	return ctypes.LONG
}

// UsualArithmeticConversion promotes both operands, then converts each
// to the common result type by the DOUBLE > FLOAT > ULONG > LONG
// priority, returning both converted operands.
func UsualArithmeticConversion(a, b expr.Expr) (expr.Expr, expr.Expr, error) {
	pa, pb := a, b
	var err error
	if a.Type().IsIntegral() {
		pa, err = IntegralPromotion(a)
		if err != nil {
			return nil, nil, err
		}
	}
	if b.Type().IsIntegral() {
		pb, err = IntegralPromotion(b)
		if err != nil {
			return nil, nil, err
		}
	}
	targetKind := rankKind(pa.Type().Kind(), pb.Type().Kind())
	ca, err := MakeCast(pa, typeOfKind(targetKind, pa.Type().Qualifiers()))
	if err != nil {
		return nil, nil, err
	}
	cb, err := MakeCast(pb, typeOfKind(targetKind, pb.Type().Qualifiers()))
	if err != nil {
		return nil, nil, err
	}
	return ca, cb, nil
}

// UsualScalarConversion extends UsualArithmeticConversion to operands
// where one or both sides may be a pointer: a pointer operand is first
// reduced to ULONG via FromPointer, tagged with the *other* operand's
// environment, then the two results go through the ordinary arithmetic
// conversion.
func UsualScalarConversion(a, b expr.Expr) (expr.Expr, expr.Expr, error) {
	aIsPtr := a.Type().Kind() == ctypes.POINTER
	bIsPtr := b.Type().Kind() == ctypes.POINTER
	if !aIsPtr && !bIsPtr {
		return UsualArithmeticConversion(a, b)
	}

	aa, bb := a, b
	var err error
	if aIsPtr {
		aa, err = FromPointerIn(a, ctypes.TULong(ctypes.Qualifiers{}), b.Env())
		if err != nil {
			return nil, nil, err
		}
	}
	if bIsPtr {
		bb, err = FromPointerIn(b, ctypes.TULong(ctypes.Qualifiers{}), a.Env())
		if err != nil {
			return nil, nil, err
		}
	}
	return UsualArithmeticConversion(aa, bb)
}
