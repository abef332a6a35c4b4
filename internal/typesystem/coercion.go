package typesystem

// Coercion describes how a value of one type may become another
// without an explicit conversion operator.
type Coercion int

const (
	// NoCoercion means the two types are unrelated; an explicit
	// conversion is required (and may still be rejected if lossy in a
	// way the language never permits, e.g. string -> i32).
	NoCoercion Coercion = iota
	// Identity means the types are already equal.
	Identity
	// ComptimeAdapts means a comptime literal adapts to the concrete
	// target type implicitly — this is the core of Hexen's literal
	// ergonomics (§4.1, §4.3).
	ComptimeAdapts
	// LosslessWiden means a concrete numeric type widens to another
	// concrete numeric type without loss (i32 -> i64, i32 -> f64, ...).
	LosslessWiden
)

// Coerce classifies whether a value of type `from` may be used where
// `to` is expected without an explicit `:Type` conversion.
func Coerce(from, to Type) Coercion {
	if from.Equal(to) {
		return Identity
	}

	switch from.Kind {
	case ComptimeInt:
		switch to.Kind {
		case I32, I64, Usize, F32, F64:
			return ComptimeAdapts
		}
		return NoCoercion
	case ComptimeFloat:
		switch to.Kind {
		case F32, F64:
			return ComptimeAdapts
		}
		return NoCoercion
	case ComptimeArrayKind:
		if to.Kind == ArrayKind && from.Element != nil && to.Element != nil {
			if Coerce(*from.Element, *to.Element) != NoCoercion {
				return ComptimeAdapts
			}
		}
		return NoCoercion
	}

	if IsConcrete(from) && IsConcrete(to) {
		if losslessWiden(from.Kind, to.Kind) {
			return LosslessWiden
		}
	}

	return NoCoercion
}

// losslessWiden is the concrete-to-concrete widening graph (§4.1):
// i32 -> i64, i32 -> f32, i32 -> f64, i64 -> f64, f32 -> f64,
// usize -> i64, usize -> f64. The reverse of every edge, and any pair
// not listed (usize and i32 in either direction, i64 -> usize),
// requires an explicit conversion.
func losslessWiden(from, to Kind) bool {
	switch from {
	case I32:
		return to == I64 || to == F32 || to == F64
	case I64:
		return to == F64
	case F32:
		return to == F64
	case Usize:
		return to == I64 || to == F64
	}
	return false
}

// CanExplicitlyConvert reports whether `value:TargetType` is a
// permitted explicit conversion between two concrete types. It is a
// superset of Coerce: every coercion is also a valid explicit
// conversion, plus narrowing numeric conversions and usize<->integer
// conversions that coercion disallows.
func CanExplicitlyConvert(from, to Type) bool {
	if Coerce(from, to) != NoCoercion {
		return true
	}
	if IsNumeric(from) && IsNumeric(to) {
		return true
	}
	return false
}

// ResolveComptime resolves a comptime type against a target context,
// returning the concrete type it adapts to. Callers must first check
// Coerce(from, target) == ComptimeAdapts.
func ResolveComptime(from, target Type) Type {
	if from.Kind == ComptimeArrayKind && target.Kind == ArrayKind {
		elem := ResolveComptime(*from.Element, *target.Element)
		return Array(elem, target.Dims)
	}
	return target
}

// DefaultConcrete returns the type a comptime value resolves to when
// no target context constrains it (e.g. a bare expression statement,
// or an array literal whose element type nothing else pins down).
// Integers default to i32, floats to f64 — Hexen's literal defaults.
func DefaultConcrete(t Type) Type {
	switch t.Kind {
	case ComptimeInt:
		return TI32
	case ComptimeFloat:
		return TF64
	case ComptimeArrayKind:
		elem := DefaultConcrete(*t.Element)
		return Array(elem, t.Dims)
	default:
		return t
	}
}
