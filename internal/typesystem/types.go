// Package typesystem implements Hexen's closed type union and the
// coercion graph that drives comptime-literal adaptation and explicit
// conversions. Unlike the teacher's Hindley-Milner system (TVar, TApp,
// TForall, Subst, unification), Hexen's type set is small and fixed,
// so a closed Go type-switch replaces unification entirely — there is
// nothing to infer, only to classify and widen.
package typesystem

import "fmt"

// Kind enumerates every concrete type Hexen's analyzer can produce.
// The set is closed: there is no user-defined type declaration syntax,
// so an exhaustive switch over Kind is always complete.
type Kind int

const (
	Unknown Kind = iota // sentinel: a prior error already reported, suppress cascades
	Uninitialized
	Void
	Bool
	String
	I32
	I64
	Usize
	F32
	F64
	ComptimeInt
	ComptimeFloat
	ArrayKind
	ComptimeArrayKind
	RangeKind
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Uninitialized:
		return "undef"
	case Void:
		return "void"
	case Bool:
		return "bool"
	case String:
		return "string"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Usize:
		return "usize"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case ComptimeInt:
		return "comptime_int"
	case ComptimeFloat:
		return "comptime_float"
	case ArrayKind:
		return "array"
	case ComptimeArrayKind:
		return "comptime_array"
	case RangeKind:
		return "range"
	default:
		return "?"
	}
}

// Type is a resolved Hexen type. Array and ComptimeArray carry an
// Element and Dims, Range carries an Element; every other kind is a
// singleton value type.
type Type struct {
	Kind    Kind
	Element *Type // set for ArrayKind/ComptimeArrayKind/RangeKind
	Dims    []int // element counts per dimension; -1 means inferred/unknown size
}

// Singletons for the scalar kinds, safe to compare by value since Type
// is small and immutable once constructed.
var (
	TUnknown       = Type{Kind: Unknown}
	TUninitialized = Type{Kind: Uninitialized}
	TVoid          = Type{Kind: Void}
	TBool          = Type{Kind: Bool}
	TString        = Type{Kind: String}
	TI32           = Type{Kind: I32}
	TI64           = Type{Kind: I64}
	TUsize         = Type{Kind: Usize}
	TF32           = Type{Kind: F32}
	TF64           = Type{Kind: F64}
	TComptimeInt   = Type{Kind: ComptimeInt}
	TComptimeFloat = Type{Kind: ComptimeFloat}
)

// Array constructs a fixed/inferred-size array type.
func Array(element Type, dims []int) Type {
	e := element
	return Type{Kind: ArrayKind, Element: &e, Dims: dims}
}

// ComptimeArray constructs the comptime-adapting array-literal type.
func ComptimeArray(element Type, dims []int) Type {
	e := element
	return Type{Kind: ComptimeArrayKind, Element: &e, Dims: dims}
}

// Range constructs a materializable range-of-element type.
func Range(element Type) Type {
	e := element
	return Type{Kind: RangeKind, Element: &e}
}

func (t Type) String() string {
	switch t.Kind {
	case ArrayKind, ComptimeArrayKind:
		s := ""
		for _, d := range t.Dims {
			if d < 0 {
				s += "[]"
			} else {
				s += fmt.Sprintf("[%d]", d)
			}
		}
		elem := "?"
		if t.Element != nil {
			elem = t.Element.String()
		}
		return s + elem
	case RangeKind:
		elem := "?"
		if t.Element != nil {
			elem = t.Element.String()
		}
		return "range<" + elem + ">"
	default:
		return t.Kind.String()
	}
}

// Equal reports structural equality, including nested array/range
// element types and dimensions.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ArrayKind, ComptimeArrayKind:
		if len(t.Dims) != len(other.Dims) {
			return false
		}
		for i := range t.Dims {
			if t.Dims[i] != other.Dims[i] {
				return false
			}
		}
		if (t.Element == nil) != (other.Element == nil) {
			return false
		}
		if t.Element != nil && !t.Element.Equal(*other.Element) {
			return false
		}
		return true
	case RangeKind:
		if (t.Element == nil) != (other.Element == nil) {
			return false
		}
		if t.Element != nil && !t.Element.Equal(*other.Element) {
			return false
		}
		return true
	default:
		return true
	}
}

// ---- classification predicates (§4.1) ----

// IsComptime reports whether t is one of the adaptive literal types.
func IsComptime(t Type) bool {
	return t.Kind == ComptimeInt || t.Kind == ComptimeFloat || t.Kind == ComptimeArrayKind
}

// IsInteger reports whether t is a concrete or comptime integer.
func IsInteger(t Type) bool {
	switch t.Kind {
	case I32, I64, Usize, ComptimeInt:
		return true
	}
	return false
}

// IsSignedInteger reports whether t is a signed concrete integer.
// Usize is excluded: it has no sign bit. It widens implicitly only to
// i64 and f64, and an operation mixing it with a signed integer
// resolves only through a target type both operands reach or an
// explicit conversion (§4.1).
func IsSignedInteger(t Type) bool {
	return t.Kind == I32 || t.Kind == I64
}

// IsFloat reports whether t is a concrete or comptime float.
func IsFloat(t Type) bool {
	return t.Kind == F32 || t.Kind == F64 || t.Kind == ComptimeFloat
}

// IsNumeric reports whether t is any integer or float kind.
func IsNumeric(t Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsConcrete reports whether t is fully resolved: neither a comptime
// adaptive type nor Unknown/Uninitialized.
func IsConcrete(t Type) bool {
	switch t.Kind {
	case Unknown, Uninitialized, ComptimeInt, ComptimeFloat, ComptimeArrayKind:
		return false
	}
	return true
}

// IsArray reports whether t is a concrete or comptime array.
func IsArray(t Type) bool {
	return t.Kind == ArrayKind || t.Kind == ComptimeArrayKind
}
