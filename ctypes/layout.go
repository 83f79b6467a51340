package ctypes

import "github.com/arc-language/core-cast/cerrors"

// Byte sizes of the fixed-width kinds (spec.md §3: "LONG/ULONG denote
// 32-bit signed/unsigned; CHAR/SHORT are 8/16-bit; FLOAT/DOUBLE are
// IEEE-754 32/64-bit").
const (
	sizeChar    = 1
	sizeShort   = 2
	sizeLong    = 4
	sizeFloat   = 4
	sizePointer = 4
	sizeDouble  = 8
)

// IsComplete reports whether t has a known size. Arrays and struct/union
// types may be incomplete; every other kind is always complete.
func IsComplete(t Type) bool {
	switch t.kind {
	case INCOMPLETE_ARRAY:
		return false
	case STRUCT_OR_UNION:
		return t.complete
	default:
		return true
	}
}

// SizeOf returns t's size in bytes, per the rule in spec.md §4.1: "fails
// InvalidType if asked for sizeOf of an incomplete array or incomplete
// struct/union."
func SizeOf(t Type) (int, error) {
	switch t.kind {
	case CHAR, UCHAR:
		return sizeChar, nil
	case SHORT, USHORT:
		return sizeShort, nil
	case LONG, ULONG:
		return sizeLong, nil
	case FLOAT:
		return sizeFloat, nil
	case DOUBLE:
		return sizeDouble, nil
	case POINTER:
		return sizePointer, nil
	case ARRAY:
		elemSize, err := SizeOf(*t.elem)
		if err != nil {
			return 0, err
		}
		return int(t.length) * elemSize, nil
	case INCOMPLETE_ARRAY:
		return 0, cerrors.New(cerrors.InvalidType, "sizeOf", "incomplete array has no size")
	case STRUCT_OR_UNION:
		if !t.complete {
			return 0, cerrors.New(cerrors.InvalidType, "sizeOf", "incomplete "+unionOrStruct(t)+" has no size")
		}
		if t.isUnion {
			return unionSize(t)
		}
		return structSize(t)
	default:
		return 0, cerrors.New(cerrors.InvalidType, "sizeOf", "no defined size for "+t.kind.String())
	}
}

// AlignOf returns t's alignment requirement in bytes.
func AlignOf(t Type) (int, error) {
	switch t.kind {
	case CHAR, UCHAR:
		return sizeChar, nil
	case SHORT, USHORT:
		return sizeShort, nil
	case LONG, ULONG, FLOAT, POINTER:
		return sizeLong, nil // all 4-byte arithmetic/pointer kinds align to 4
	case DOUBLE:
		return sizeDouble, nil
	case ARRAY:
		return AlignOf(*t.elem)
	case INCOMPLETE_ARRAY:
		return AlignOf(*t.elem)
	case STRUCT_OR_UNION:
		if !t.complete {
			return 0, cerrors.New(cerrors.InvalidType, "alignOf", "incomplete "+unionOrStruct(t)+" has no alignment")
		}
		return aggregateAlign(t), nil
	default:
		return 0, cerrors.New(cerrors.InvalidType, "alignOf", "no defined alignment for "+t.kind.String())
	}
}

// RefType returns the referent type of a pointer. spec.md §4.1: "fails
// InvalidType ... of refType of a non-pointer."
func RefType(t Type) (Type, error) {
	if t.kind != POINTER {
		return Type{}, cerrors.New(cerrors.InvalidType, "refType", "not a pointer: "+t.kind.String())
	}
	return *t.elem, nil
}

func unionOrStruct(t Type) string {
	if t.isUnion {
		return "union"
	}
	return "struct"
}

func aggregateAlign(t Type) int {
	maxAlign := 1
	for _, f := range t.fields {
		a, err := AlignOf(f.Type)
		if err != nil {
			continue // unreachable for a complete aggregate: every field must itself be complete
		}
		if a > maxAlign {
			maxAlign = a
		}
	}
	return maxAlign
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	if n%align != 0 {
		n += align - (n % align)
	}
	return n
}

// structSize lays fields out in declaration order, padding each to its
// own alignment, then pads the total to the struct's own alignment.
func structSize(t Type) (int, error) {
	offset := 0
	for _, f := range t.fields {
		align, err := AlignOf(f.Type)
		if err != nil {
			return 0, err
		}
		size, err := SizeOf(f.Type)
		if err != nil {
			return 0, err
		}
		offset = alignUp(offset, align) + size
	}
	return alignUp(offset, aggregateAlign(t)), nil
}

// unionSize is the size of the largest member, padded to the union's own
// alignment.
func unionSize(t Type) (int, error) {
	maxSize := 0
	for _, f := range t.fields {
		size, err := SizeOf(f.Type)
		if err != nil {
			return 0, err
		}
		if size > maxSize {
			maxSize = size
		}
	}
	return alignUp(maxSize, aggregateAlign(t)), nil
}

// FieldOffset returns the byte offset of the named field within a
// complete struct or union. Returns InvalidType if the field does not
// exist or t is not a complete struct/union.
func FieldOffset(t Type, name string) (int, error) {
	if t.kind != STRUCT_OR_UNION || !t.complete {
		return 0, cerrors.New(cerrors.InvalidType, "fieldOffset", "not a complete struct/union")
	}
	if t.isUnion {
		for _, f := range t.fields {
			if f.Name == name {
				return 0, nil
			}
		}
		return 0, cerrors.New(cerrors.InvalidType, "fieldOffset", "no such field: "+name)
	}
	offset := 0
	for _, f := range t.fields {
		align, err := AlignOf(f.Type)
		if err != nil {
			return 0, err
		}
		offset = alignUp(offset, align)
		if f.Name == name {
			return offset, nil
		}
		size, err := SizeOf(f.Type)
		if err != nil {
			return 0, err
		}
		offset += size
	}
	return 0, cerrors.New(cerrors.InvalidType, "fieldOffset", "no such field: "+name)
}
