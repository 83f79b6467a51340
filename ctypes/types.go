// Package ctypes is the closed algebraic description of C types used by
// the cast core: arithmetic kinds, pointer, array (complete and
// incomplete), function, struct/union, and void, plus qualifiers and the
// derived predicates/operations every conversion rule dispatches on.
package ctypes

// Kind is the closed set of type kinds spec.md §3 names.
type Kind int

const (
	CHAR Kind = iota
	UCHAR
	SHORT
	USHORT
	LONG
	ULONG
	FLOAT
	DOUBLE
	POINTER
	ARRAY
	INCOMPLETE_ARRAY
	FUNCTION
	STRUCT_OR_UNION
	VOID
)

func (k Kind) String() string {
	switch k {
	case CHAR:
		return "char"
	case UCHAR:
		return "unsigned char"
	case SHORT:
		return "short"
	case USHORT:
		return "unsigned short"
	case LONG:
		return "long"
	case ULONG:
		return "unsigned long"
	case FLOAT:
		return "float"
	case DOUBLE:
		return "double"
	case POINTER:
		return "pointer"
	case ARRAY:
		return "array"
	case INCOMPLETE_ARRAY:
		return "incomplete array"
	case FUNCTION:
		return "function"
	case STRUCT_OR_UNION:
		return "struct/union"
	case VOID:
		return "void"
	default:
		return "unknown"
	}
}

// Qualifiers carries the two C type qualifiers the core tracks.
type Qualifiers struct {
	Const    bool
	Volatile bool
}

// Field is one member of a struct or union.
type Field struct {
	Name string
	Type Type
}

// FuncSig describes a FUNCTION type's signature.
type FuncSig struct {
	Return   *Type
	Params   []Type
	Variadic bool
}

// Type is a value describing one C type. It is immutable once
// constructed and compared with EqualType, never with ==, since two
// structurally-equal struct/array types may carry different qualifiers.
type Type struct {
	kind Kind
	qual Qualifiers

	elem *Type // POINTER referent, ARRAY/INCOMPLETE_ARRAY element type

	length int64 // ARRAY length (element count)

	sig *FuncSig // FUNCTION signature

	tag      string  // STRUCT_OR_UNION tag, for diagnostics only
	isUnion  bool    // STRUCT_OR_UNION: union vs struct
	complete bool    // STRUCT_OR_UNION: true once fields are known
	fields   []Field // STRUCT_OR_UNION members, once complete
}

// Kind returns the type's kind.
func (t Type) Kind() Kind { return t.kind }

// Qualifiers returns the type's own qualifiers.
func (t Type) Qualifiers() Qualifiers { return t.qual }

// IsConst reports the type's own const qualifier.
func (t Type) IsConst() bool { return t.qual.Const }

// IsVolatile reports the type's own volatile qualifier.
func (t Type) IsVolatile() bool { return t.qual.Volatile }

// --- Constructors ---
//
// Every constructor takes explicit qualifier flags, mirroring the
// consumed-interface contract in spec.md §6 ("constructors ...
// each taking qualifier flags").

func arith(k Kind, q Qualifiers) Type { return Type{kind: k, qual: q} }

func TChar(q Qualifiers) Type   { return arith(CHAR, q) }
func TUChar(q Qualifiers) Type  { return arith(UCHAR, q) }
func TShort(q Qualifiers) Type  { return arith(SHORT, q) }
func TUShort(q Qualifiers) Type { return arith(USHORT, q) }
func TLong(q Qualifiers) Type   { return arith(LONG, q) }
func TULong(q Qualifiers) Type  { return arith(ULONG, q) }
func TFloat(q Qualifiers) Type  { return arith(FLOAT, q) }
func TDouble(q Qualifiers) Type { return arith(DOUBLE, q) }
func TVoid(q Qualifiers) Type   { return arith(VOID, q) }

// TPointer builds a pointer-to-elem type.
func TPointer(elem Type, q Qualifiers) Type {
	e := elem
	return Type{kind: POINTER, qual: q, elem: &e}
}

// TArray builds a complete array type of the given element and length.
func TArray(elem Type, length int64, q Qualifiers) Type {
	e := elem
	return Type{kind: ARRAY, qual: q, elem: &e, length: length}
}

// TIncompleteArray builds an array type whose length is not yet known
// (e.g. `extern int a[];`).
func TIncompleteArray(elem Type, q Qualifiers) Type {
	e := elem
	return Type{kind: INCOMPLETE_ARRAY, qual: q, elem: &e}
}

// TFunction builds a function type.
func TFunction(ret Type, params []Type, variadic bool, q Qualifiers) Type {
	r := ret
	return Type{kind: FUNCTION, qual: q, sig: &FuncSig{Return: &r, Params: params, Variadic: variadic}}
}

// TStruct builds a complete struct type.
func TStruct(tag string, fields []Field, q Qualifiers) Type {
	return Type{kind: STRUCT_OR_UNION, qual: q, tag: tag, fields: fields, complete: true}
}

// TUnion builds a complete union type.
func TUnion(tag string, fields []Field, q Qualifiers) Type {
	return Type{kind: STRUCT_OR_UNION, qual: q, tag: tag, fields: fields, complete: true, isUnion: true}
}

// TIncompleteStruct builds a struct type with a tag but no known members
// yet (a forward declaration).
func TIncompleteStruct(tag string, q Qualifiers) Type {
	return Type{kind: STRUCT_OR_UNION, qual: q, tag: tag}
}

// TIncompleteUnion builds a union type with a tag but no known members yet.
func TIncompleteUnion(tag string, q Qualifiers) Type {
	return Type{kind: STRUCT_OR_UNION, qual: q, tag: tag, isUnion: true}
}

// --- Predicates ---

// IsIntegral reports whether t is one of CHAR..ULONG.
func (t Type) IsIntegral() bool {
	switch t.kind {
	case CHAR, UCHAR, SHORT, USHORT, LONG, ULONG:
		return true
	default:
		return false
	}
}

// IsArith reports whether t is integral or floating.
func (t Type) IsArith() bool {
	return t.IsIntegral() || t.kind == FLOAT || t.kind == DOUBLE
}

// IsScalar reports whether t is arithmetic or a pointer.
func (t Type) IsScalar() bool {
	return t.IsArith() || t.kind == POINTER
}

// IsSigned reports whether t is one of the signed integral kinds.
func (t Type) IsSigned() bool {
	switch t.kind {
	case CHAR, SHORT, LONG:
		return true
	default:
		return false
	}
}

// IsUnion reports whether a STRUCT_OR_UNION type is a union.
func (t Type) IsUnion() bool { return t.kind == STRUCT_OR_UNION && t.isUnion }

// Tag returns a struct/union type's tag name.
func (t Type) Tag() string { return t.tag }

// Fields returns a struct/union type's members. Empty for an incomplete
// type.
func (t Type) Fields() []Field { return t.fields }

// Length returns an ARRAY type's element count. Meaningless for any
// other kind.
func (t Type) Length() int64 { return t.length }

// Signature returns a FUNCTION type's signature, or nil for any other
// kind.
func (t Type) Signature() *FuncSig { return t.sig }

// Elem returns the POINTER referent or ARRAY/INCOMPLETE_ARRAY element
// type, or nil for any other kind. Prefer RefType for pointers, which
// reports InvalidType instead of returning nil.
func (t Type) Elem() *Type { return t.elem }

// withQualifiers returns a copy of t with different top-level
// qualifiers, keeping kind-specific payload untouched.
func (t Type) withQualifiers(q Qualifiers) Type {
	t.qual = q
	return t
}

// Unqualified returns t with both qualifiers cleared.
func (t Type) Unqualified() Type { return t.withQualifiers(Qualifiers{}) }

// EqualType reports structural equality, ignoring the two types' own
// top-level qualifiers but honoring qualifiers nested in a pointer
// referent, array element, struct/union field, or function parameter —
// "ignores top-level qualifiers exactly when the standard requires"
// (spec.md §3).
func EqualType(a, b Type) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case POINTER, ARRAY, INCOMPLETE_ARRAY:
		return equalQualified(*a.elem, *b.elem) && (a.kind != ARRAY || a.length == b.length)
	case FUNCTION:
		return equalFuncSig(a.sig, b.sig)
	case STRUCT_OR_UNION:
		return a.isUnion == b.isUnion && a.tag == b.tag && a.complete == b.complete && equalFields(a.fields, b.fields)
	default:
		return true // arithmetic kinds and VOID differ only by Kind, already checked
	}
}

// equalQualified compares two types including their own qualifiers; used
// for positions where the standard does care (referent, element, field,
// parameter types).
func equalQualified(a, b Type) bool {
	return a.qual == b.qual && EqualType(a, b)
}

func equalFuncSig(a, b *FuncSig) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
		return false
	}
	if !equalQualified(*a.Return, *b.Return) {
		return false
	}
	for i := range a.Params {
		if !equalQualified(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

func equalFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !equalQualified(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
