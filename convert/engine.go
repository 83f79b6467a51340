// Package convert is the Conversion Engine: MakeCast and the sub-engines
// it dispatches to, each either folding a constant directly or building a
// primitive-chain TypeCast out of the closed castprim set.
package convert

import (
	"github.com/arc-language/core-cast/castprim"
	"github.com/arc-language/core-cast/cerrors"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/env"
	"github.com/arc-language/core-cast/expr"
)

// MakeCast converts e to dest, tagging any new node with e's own
// environment. Use MakeCastIn directly when the result must carry a
// different environment (a pointer conversion crossing a declaration
// boundary, spec.md §9).
func MakeCast(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return MakeCastIn(e, dest, e.Env())
}

// MakeCastIn implements the decision order: an identical type is a
// no-op; a pointer source or destination hands off to FromPointer/
// ToPointer; otherwise dispatch by source kind to the matching
// arithmetic sub-engine.
func MakeCastIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	src := e.Type()
	if ctypes.EqualType(src, dest) {
		return e, nil
	}
	if src.Kind() == ctypes.POINTER {
		return FromPointerIn(e, dest, environment)
	}
	if dest.Kind() == ctypes.POINTER {
		return ToPointerIn(e, dest, environment)
	}
	switch src.Kind() {
	case ctypes.CHAR, ctypes.SHORT, ctypes.LONG:
		return SignedIntegralToArithIn(e, dest, environment)
	case ctypes.UCHAR, ctypes.USHORT, ctypes.ULONG:
		return UnsignedIntegralToArithIn(e, dest, environment)
	case ctypes.FLOAT, ctypes.DOUBLE:
		return FloatToArithIn(e, dest, environment)
	default:
		return nil, cerrors.New(cerrors.UnsupportedSource, "makeCast", "unsupported source kind: "+src.Kind().String())
	}
}

func rank(k ctypes.Kind) int {
	switch k {
	case ctypes.CHAR, ctypes.UCHAR:
		return 1
	case ctypes.SHORT, ctypes.USHORT:
		return 2
	default: // LONG, ULONG
		return 4
	}
}

func signedIntegralPrimitive(srcKind, destKind ctypes.Kind) castprim.Primitive {
	srcRank, destRank := rank(srcKind), rank(destKind)
	if srcRank == destRank {
		return castprim.NOP
	}
	if srcRank < destRank {
		switch {
		case srcKind == ctypes.CHAR && destRank == 2:
			return castprim.INT8_TO_INT16
		case srcKind == ctypes.CHAR && destRank == 4:
			return castprim.INT8_TO_INT32
		default: // SHORT -> LONG
			return castprim.INT16_TO_INT32
		}
	}
	if destRank == 1 {
		return castprim.PRESERVE_INT8
	}
	return castprim.PRESERVE_INT16
}

func unsignedIntegralPrimitive(srcKind, destKind ctypes.Kind) castprim.Primitive {
	srcRank, destRank := rank(srcKind), rank(destKind)
	if srcRank == destRank {
		return castprim.NOP
	}
	if srcRank < destRank {
		switch {
		case srcKind == ctypes.UCHAR && destRank == 2:
			return castprim.UINT8_TO_UINT16
		case srcKind == ctypes.UCHAR && destRank == 4:
			return castprim.UINT8_TO_UINT32
		default: // USHORT -> ULONG
			return castprim.UINT16_TO_UINT32
		}
	}
	if destRank == 1 {
		return castprim.PRESERVE_INT8
	}
	return castprim.PRESERVE_INT16
}

// SignedIntegralToArith converts a CHAR/SHORT/LONG source to an
// arithmetic destination, tagging the result with e's environment.
func SignedIntegralToArith(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return SignedIntegralToArithIn(e, dest, e.Env())
}

// SignedIntegralToArithIn is SignedIntegralToArith with an explicit
// result environment.
func SignedIntegralToArithIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	if !dest.IsArith() {
		return nil, cerrors.New(cerrors.UnsupportedConversion, "signedIntegralToArith", "destination is not arithmetic: "+dest.Kind().String())
	}
	srcKind := e.Type().Kind()
	destKind := dest.Kind()

	if dest.IsIntegral() {
		if bits, ok := integralBits(e); ok {
			return foldIntegralTo(bits, destKind, environment), nil
		}
		prim := signedIntegralPrimitive(srcKind, destKind)
		if prim == castprim.NOP {
			return wrap(castprim.NOP, e, typeOfKind(destKind, dest.Qualifiers()), environment), nil
		}
		return wrap(prim, e, typeOfKind(destKind, dest.Qualifiers()), environment), nil
	}

	// destKind is FLOAT or DOUBLE.
	if bits, ok := integralBits(e); ok {
		return foldIntegralToFloating(bits, true, destKind, environment), nil
	}
	widened := widenSignedTo32(e, srcKind, environment)
	prim := castprim.INT32_TO_FLOAT
	if destKind == ctypes.DOUBLE {
		prim = castprim.INT32_TO_DOUBLE
	}
	return wrap(prim, widened, typeOfKind(destKind, dest.Qualifiers()), environment), nil
}

func widenSignedTo32(e expr.Expr, srcKind ctypes.Kind, environment env.Handle) expr.Expr {
	if srcKind == ctypes.LONG {
		return e
	}
	prim := signedIntegralPrimitive(srcKind, ctypes.LONG)
	return wrap(prim, e, ctypes.TLong(ctypes.Qualifiers{}), environment)
}

// UnsignedIntegralToArith converts a UCHAR/USHORT/ULONG source to an
// arithmetic destination, tagging the result with e's environment.
func UnsignedIntegralToArith(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return UnsignedIntegralToArithIn(e, dest, e.Env())
}

// UnsignedIntegralToArithIn is UnsignedIntegralToArith with an explicit
// result environment.
//
// Converting an unsigned source to FLOAT/DOUBLE reuses INT32_TO_FLOAT /
// INT32_TO_DOUBLE on the raw bit pattern, since no unsigned-source
// primitive exists in the closed set — a ULONG value with the high bit
// set is therefore reinterpreted as negative, matching the machine code
// the primitive set can actually express (spec.md §9 open question).
func UnsignedIntegralToArithIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	if !dest.IsArith() {
		return nil, cerrors.New(cerrors.UnsupportedConversion, "unsignedIntegralToArith", "destination is not arithmetic: "+dest.Kind().String())
	}
	srcKind := e.Type().Kind()
	destKind := dest.Kind()

	if dest.IsIntegral() {
		if bits, ok := integralBits(e); ok {
			return foldIntegralTo(bits, destKind, environment), nil
		}
		prim := unsignedIntegralPrimitive(srcKind, destKind)
		return wrap(prim, e, typeOfKind(destKind, dest.Qualifiers()), environment), nil
	}

	// destKind is FLOAT or DOUBLE: reuse the signed primitive on the raw
	// bits, reproducing the high-bit sign misinterpretation.
	if bits, ok := integralBits(e); ok {
		return foldIntegralToFloating(bits, true, destKind, environment), nil
	}
	widened := widenUnsignedTo32(e, srcKind, environment)
	prim := castprim.INT32_TO_FLOAT
	if destKind == ctypes.DOUBLE {
		prim = castprim.INT32_TO_DOUBLE
	}
	return wrap(prim, widened, typeOfKind(destKind, dest.Qualifiers()), environment), nil
}

func widenUnsignedTo32(e expr.Expr, srcKind ctypes.Kind, environment env.Handle) expr.Expr {
	if srcKind == ctypes.ULONG {
		return e
	}
	prim := unsignedIntegralPrimitive(srcKind, ctypes.ULONG)
	return wrap(prim, e, ctypes.TULong(ctypes.Qualifiers{}), environment)
}

// FloatToArith converts a FLOAT/DOUBLE source to an arithmetic
// destination, tagging the result with e's environment.
func FloatToArith(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return FloatToArithIn(e, dest, e.Env())
}

// FloatToArithIn is FloatToArith with an explicit result environment.
//
// FLOAT to UCHAR has no primitive path and is rejected outright
// (spec.md §8 testable property 2, the one cell excluded from the
// arithmetic cross-product). DOUBLE to CHAR/SHORT is routed through an
// intermediate FLOAT conversion rather than straight to INT32, so a
// double that would round differently after narrowing to float produces
// the same result the primitive chain does; DOUBLE to UCHAR/USHORT does
// not detour, since FLOAT_TO_INT32/DOUBLE_TO_INT32 plus PRESERVE_INT8/16
// cover it directly.
func FloatToArithIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	if !dest.IsArith() {
		return nil, cerrors.New(cerrors.UnsupportedConversion, "floatToArith", "destination is not arithmetic: "+dest.Kind().String())
	}
	srcKind := e.Type().Kind()
	destKind := dest.Kind()

	if srcKind == ctypes.FLOAT && destKind == ctypes.UCHAR {
		return nil, cerrors.New(cerrors.UnsupportedConversion, "floatToArith", "float to unsigned char has no primitive")
	}

	if srcKind == ctypes.DOUBLE && (destKind == ctypes.CHAR || destKind == ctypes.SHORT) {
		floatType := ctypes.TFloat(ctypes.Qualifiers{})
		viaFloat, err := FloatToArithIn(e, floatType, environment)
		if err != nil {
			return nil, err
		}
		return FloatToArithIn(viaFloat, dest, environment)
	}

	if destKind == ctypes.FLOAT || destKind == ctypes.DOUBLE {
		if v, ok := floatValue(e); ok {
			if destKind == ctypes.FLOAT {
				return expr.NewConstFloat(float32(v), environment), nil
			}
			return expr.NewConstDouble(v, environment), nil
		}
		if srcKind == destKind {
			return wrap(castprim.NOP, e, dest, environment), nil
		}
		prim := castprim.FLOAT_TO_DOUBLE
		if srcKind == ctypes.DOUBLE {
			prim = castprim.DOUBLE_TO_FLOAT
		}
		return wrap(prim, e, typeOfKind(destKind, dest.Qualifiers()), environment), nil
	}

	// destKind is integral.
	if v, ok := floatValue(e); ok {
		return foldFloatingToIntegral(v, destKind, environment), nil
	}
	toInt32 := castprim.FLOAT_TO_INT32
	if srcKind == ctypes.DOUBLE {
		toInt32 = castprim.DOUBLE_TO_INT32
	}
	asLong := wrap(toInt32, e, ctypes.TLong(ctypes.Qualifiers{}), environment)
	switch destKind {
	case ctypes.LONG:
		return wrap(castprim.NOP, asLong, ctypes.TLong(dest.Qualifiers()), environment), nil
	case ctypes.ULONG:
		return wrap(castprim.NOP, asLong, ctypes.TULong(dest.Qualifiers()), environment), nil
	case ctypes.CHAR, ctypes.UCHAR:
		return wrap(castprim.PRESERVE_INT8, asLong, typeOfKind(destKind, dest.Qualifiers()), environment), nil
	default: // SHORT, USHORT
		return wrap(castprim.PRESERVE_INT16, asLong, typeOfKind(destKind, dest.Qualifiers()), environment), nil
	}
}

// FromPointer converts a pointer source to dest, tagging the result
// with e's environment.
func FromPointer(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return FromPointerIn(e, dest, e.Env())
}

// FromPointerIn is FromPointer with an explicit result environment —
// used when the caller already holds the destination's own environment,
// distinct from the pointer expression's (spec.md §9).
func FromPointerIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	if dest.Kind() == ctypes.POINTER {
		if c, ok := e.(expr.ConstPtr); ok {
			return expr.NewConstPtr(c.Value, dest, environment), nil
		}
		return wrap(castprim.NOP, e, dest, environment), nil
	}
	if !dest.IsIntegral() {
		return nil, cerrors.New(cerrors.UnsupportedConversion, "fromPointer", "pointer cannot convert to "+dest.Kind().String())
	}

	var asULong expr.Expr
	if c, ok := e.(expr.ConstPtr); ok {
		asULong = expr.NewConstULong(ctypes.ULONG, c.Value, environment)
	} else {
		asULong = wrap(castprim.NOP, e, ctypes.TULong(ctypes.Qualifiers{}), environment)
	}
	if dest.Kind() == ctypes.ULONG {
		return asULong, nil
	}
	return UnsignedIntegralToArithIn(asULong, dest, environment)
}

// ToPointer converts a source expression to a pointer type dest,
// tagging the result with e's environment.
func ToPointer(e expr.Expr, dest ctypes.Type) (expr.Expr, error) {
	return ToPointerIn(e, dest, e.Env())
}

// ToPointerIn is ToPointer with an explicit result environment.
func ToPointerIn(e expr.Expr, dest ctypes.Type, environment env.Handle) (expr.Expr, error) {
	src := e.Type()
	switch {
	case src.Kind() == ctypes.POINTER:
		if c, ok := e.(expr.ConstPtr); ok {
			return expr.NewConstPtr(c.Value, dest, environment), nil
		}
		return wrap(castprim.NOP, e, dest, environment), nil

	case src.IsIntegral():
		var asULong expr.Expr
		var err error
		ulongType := ctypes.TULong(ctypes.Qualifiers{})
		if src.IsSigned() {
			asULong, err = SignedIntegralToArithIn(e, ulongType, environment)
		} else {
			asULong, err = UnsignedIntegralToArithIn(e, ulongType, environment)
		}
		if err != nil {
			return nil, err
		}
		if c, ok := asULong.(expr.ConstULong); ok {
			return expr.NewConstPtr(c.Value, dest, environment), nil
		}
		return wrap(castprim.NOP, asULong, dest, environment), nil

	case src.Kind() == ctypes.FUNCTION:
		refType, err := ctypes.RefType(dest)
		if err != nil {
			return nil, err
		}
		if !ctypes.EqualType(refType, src) {
			return nil, cerrors.New(cerrors.IncompatibleFunctionPointer, "toPointer", "function type does not match pointer referent")
		}
		return wrap(castprim.NOP, e, dest, environment), nil

	case src.Kind() == ctypes.ARRAY:
		return wrap(castprim.NOP, e, dest, environment), nil

	default:
		return nil, cerrors.New(cerrors.UnsupportedConversion, "toPointer", src.Kind().String()+" cannot convert to pointer")
	}
}
