// Package expr is the Typed Expression Model: a polymorphic expression
// node carrying a type, an environment handle, an lvalue flag, and a
// constant-expression flag, plus the concrete variants spec.md §3 names.
package expr

import (
	"fmt"

	"github.com/arc-language/core-cast/castprim"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/env"
)

// Expr is the common interface every typed expression node implements.
// Variants beyond the ones in this package ("all other expression
// forms", spec.md §3) are out of scope for this module; convert and emit
// only ever need the variants defined here.
type Expr interface {
	Type() ctypes.Type
	Env() env.Handle
	IsLValue() bool
	IsConstExpr() bool
}

// base carries the four fields every node has, per spec.md §3.
type base struct {
	typ       ctypes.Type
	env       env.Handle
	isLValue  bool
	isConstEx bool
}

func (b base) Type() ctypes.Type { return b.typ }
func (b base) Env() env.Handle   { return b.env }
func (b base) IsLValue() bool    { return b.isLValue }
func (b base) IsConstExpr() bool { return b.isConstEx }

// --- Constant variants ---

// ConstLong is a constant of a signed 32-bit-or-narrower integral kind
// (CHAR, SHORT, or LONG), stored sign-extended to int32.
type ConstLong struct {
	base
	Value int32
}

// NewConstLong builds a signed integral constant of kind k (CHAR, SHORT,
// or LONG) carrying value v.
func NewConstLong(k ctypes.Kind, v int32, e env.Handle) ConstLong {
	return ConstLong{base: base{typ: arithType(k), env: e, isConstEx: true}, Value: v}
}

// ConstULong is a constant of an unsigned integral kind (UCHAR, USHORT,
// or ULONG), stored zero-extended to uint32.
type ConstULong struct {
	base
	Value uint32
}

// NewConstULong builds an unsigned integral constant of kind k (UCHAR,
// USHORT, or ULONG) carrying value v.
func NewConstULong(k ctypes.Kind, v uint32, e env.Handle) ConstULong {
	return ConstULong{base: base{typ: arithType(k), env: e, isConstEx: true}, Value: v}
}

// ConstFloat is an IEEE-754 single-precision constant.
type ConstFloat struct {
	base
	Value float32
}

// NewConstFloat builds a FLOAT constant.
func NewConstFloat(v float32, e env.Handle) ConstFloat {
	return ConstFloat{base: base{typ: ctypes.TFloat(ctypes.Qualifiers{}), env: e, isConstEx: true}, Value: v}
}

// ConstDouble is an IEEE-754 double-precision constant.
type ConstDouble struct {
	base
	Value float64
}

// NewConstDouble builds a DOUBLE constant.
func NewConstDouble(v float64, e env.Handle) ConstDouble {
	return ConstDouble{base: base{typ: ctypes.TDouble(ctypes.Qualifiers{}), env: e, isConstEx: true}, Value: v}
}

// ConstPtr is a pointer constant: a 32-bit address (0 for NULL) tagged
// with its pointer type.
type ConstPtr struct {
	base
	Value uint32
}

// NewConstPtr builds a pointer constant of type t (which must have
// Kind() == ctypes.POINTER) carrying address v.
func NewConstPtr(v uint32, t ctypes.Type, e env.Handle) ConstPtr {
	return ConstPtr{base: base{typ: t, env: e, isConstEx: true}, Value: v}
}

func arithType(k ctypes.Kind) ctypes.Type {
	q := ctypes.Qualifiers{}
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
	default:
		panic(fmt.Sprintf("expr: not an integral kind: %s", k))
	}
}

// --- Cast primitive variant ---

// TypeCast is the single node type realizing every cast primitive:
// spec.md's design note calls for "a tagged-variant ... with one arm per
// cast primitive," which Kind here provides without fifteen near-
// identical struct types (mirroring the teacher's ir.CastInst{Opcode}).
//
// Invariant: a TypeCast is never an lvalue, and never a constant
// expression — constant folding always produces one of the Const*
// variants instead, never a TypeCast wrapping a constant (spec.md §3,
// §4.3 "Constant folding").
type TypeCast struct {
	base
	Kind  castprim.Primitive
	Inner Expr
}

// NewTypeCast builds a cast-primitive node tagged with the given
// environment. It always reports IsLValue() == false and
// IsConstExpr() == false, regardless of Inner.
func NewTypeCast(kind castprim.Primitive, inner Expr, resultType ctypes.Type, e env.Handle) TypeCast {
	return TypeCast{
		base:  base{typ: resultType, env: e, isLValue: false, isConstEx: false},
		Kind:  kind,
		Inner: inner,
	}
}

// --- Non-constant stand-in ---

// Value is a minimal stand-in for the expression forms spec.md §3 leaves
// unspecified ("all other expression forms"), analogous to a variable
// reference (clight.Evar in the retrieval pack). The conversion engine
// and its tests use it whenever a non-constant operand of a given type
// is needed.
type Value struct {
	base
	Name string
}

// NewValue builds a named, non-constant lvalue of type t.
func NewValue(name string, t ctypes.Type, e env.Handle) Value {
	return Value{base: base{typ: t, env: e, isLValue: true, isConstEx: false}, Name: name}
}

// NewRValue builds a named, non-constant non-lvalue of type t (e.g. the
// result of a prior arithmetic operation, not itself addressable).
func NewRValue(name string, t ctypes.Type, e env.Handle) Value {
	return Value{base: base{typ: t, env: e, isLValue: false, isConstEx: false}, Name: name}
}

// WithEnv returns a copy of v re-tagged with a different environment
// handle. Cast constructors that cross a declaration boundary use this
// shape (spec.md §9: "the constructor must accept an explicit
// environment argument").
func (v Value) WithEnv(e env.Handle) Value {
	v.env = e
	return v
}

// Retag returns a copy of e carrying a different environment handle,
// leaving every other field untouched. Cast constructors that cross a
// scope boundary (pointer conversions re-tagged into a different scope,
// spec.md §9) use this instead of mutating e, since every node here is
// immutable once constructed.
func Retag(e Expr, newEnv env.Handle) Expr {
	switch v := e.(type) {
	case ConstLong:
		v.env = newEnv
		return v
	case ConstULong:
		v.env = newEnv
		return v
	case ConstFloat:
		v.env = newEnv
		return v
	case ConstDouble:
		v.env = newEnv
		return v
	case ConstPtr:
		v.env = newEnv
		return v
	case TypeCast:
		v.env = newEnv
		return v
	case Value:
		v.env = newEnv
		return v
	default:
		return e
	}
}
