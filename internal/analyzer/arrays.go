package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/typesystem"
)

func (w *walker) VisitArrayType(n *ast.ArrayType) interface{}      { return nil }
func (w *walker) VisitArrayDimension(n *ast.ArrayDimension) interface{} { return nil }

// VisitArrayLiteral implements §4.10: every element must agree on a
// single (possibly comptime) element type, which then adapts to the
// expected array's element type if one is in context. An empty
// literal with no expected element type cannot be typed at all.
func (w *walker) VisitArrayLiteral(n *ast.ArrayLiteral) interface{} {
	var expectElem typesystem.Type
	if typesystem.IsArray(w.expected) && w.expected.Element != nil {
		expectElem = *w.expected.Element
	}

	if len(n.Elements) == 1 {
		if rng, ok := n.Elements[0].(*ast.RangeExpr); ok {
			return w.materializeRange(n, rng, expectElem)
		}
	}

	if len(n.Elements) == 0 {
		if expectElem.Kind == typesystem.Unknown {
			w.diags.Errorf(diagnostics.CodeEmptyArrayNeedsContext, n.Token, w.file,
				"cannot infer element type of empty array literal without a target type")
			return typesystem.TUnknown
		}
		return typesystem.Array(expectElem, []int{0})
	}

	elemType := w.analyzeExpression(n.Elements[0], expectElem)
	for _, el := range n.Elements[1:] {
		t := w.analyzeExpression(el, elemType)
		if t.Kind == typesystem.Unknown || elemType.Kind == typesystem.Unknown {
			elemType = typesystem.TUnknown
			continue
		}
		if !t.Equal(elemType) {
			if typesystem.Coerce(t, elemType) == typesystem.ComptimeAdapts {
				continue
			}
			if typesystem.Coerce(elemType, t) == typesystem.ComptimeAdapts {
				elemType = t
				continue
			}
			w.diags.Errorf(diagnostics.CodeArraySizeMismatch, n.Token, w.file,
				"array literal elements have mismatched types %s and %s", elemType, t)
			elemType = typesystem.TUnknown
		}
	}

	if elemType.Kind == typesystem.Unknown {
		return typesystem.TUnknown
	}
	if typesystem.IsComptime(elemType) {
		return typesystem.ComptimeArray(elemType, []int{len(n.Elements)})
	}
	return typesystem.Array(elemType, []int{len(n.Elements)})
}

// materializeRange implements `[a..b]` materialization (§4.10): an
// array literal whose sole element is a range expands into a
// concrete-size array drawn from the range's bounds, rather than a
// generic one-element array literal holding a range value. Both
// bounds must be constant integers (and, if present, a nonzero
// constant step) for the size to be known at analysis time.
func (w *walker) materializeRange(n *ast.ArrayLiteral, rng *ast.RangeExpr, expectElem typesystem.Type) typesystem.Type {
	rngType := w.analyzeExpression(rng, typesystem.Range(expectElem))
	if rngType.Kind != typesystem.RangeKind {
		return typesystem.TUnknown
	}
	elem := typesystem.TI32
	if rngType.Element != nil {
		elem = *rngType.Element
	}

	start, startOK := constIntValue(rng.Start)
	end, endOK := constIntValue(rng.End)
	if !startOK || !endOK {
		w.diags.Errorf(diagnostics.CodeRangeMaterializationNeedsBounds, n.Token, w.file,
			"materializing a range into an array requires both bounds to be constant integers")
		return typesystem.TUnknown
	}

	step := int64(1)
	if rng.Step != nil {
		s, ok := constIntValue(rng.Step)
		if !ok || s == 0 {
			w.diags.Errorf(diagnostics.CodeRangeMaterializationNeedsBounds, n.Token, w.file,
				"materializing a stepped range into an array requires a nonzero constant integer step")
			return typesystem.TUnknown
		}
		step = s
	}

	count := (end - start) / step
	if rng.Inclusive {
		count++
	}
	if count < 0 {
		count = 0
	}

	return typesystem.Array(elem, []int{int(count)})
}

// constIntValue folds a constant (possibly negated) integer literal,
// the only shape range materialization can size statically.
func constIntValue(e ast.Expression) (int64, bool) {
	switch v := e.(type) {
	case *ast.ComptimeInt:
		return v.Value, true
	case *ast.UnaryOperation:
		if v.Operator == "-" {
			if inner, ok := constIntValue(v.Operand); ok {
				return -inner, true
			}
		}
	}
	return 0, false
}

// VisitArrayAccess implements indexing (`arr[i]`, index must be a
// usize/integer) and bounded slicing (`arr[lo..hi]`, when Index is a
// RangeExpr the result is itself an array of the same element type).
func (w *walker) VisitArrayAccess(n *ast.ArrayAccess) interface{} {
	arrType := w.analyzeExpression(n.Array, typesystem.TUnknown)
	if arrType.Kind == typesystem.Unknown {
		w.analyzeExpression(n.Index, typesystem.TUnknown)
		return typesystem.TUnknown
	}
	if !typesystem.IsArray(arrType) {
		w.diags.Errorf(diagnostics.CodeIndexOnNonArray, n.Token, w.file,
			"cannot index into non-array type %s", arrType)
		w.analyzeExpression(n.Index, typesystem.TUnknown)
		return typesystem.TUnknown
	}

	if rng, ok := n.Index.(*ast.RangeExpr); ok {
		w.analyzeExpression(rng, typesystem.TUsize)
		return arrType
	}

	idxType := w.analyzeExpression(n.Index, typesystem.TUsize)
	if idxType.Kind != typesystem.Unknown && !typesystem.IsInteger(idxType) {
		w.diags.Errorf(diagnostics.CodeIndexNotInteger, n.Token, w.file,
			"array index must be an integer, got %s", idxType)
	}
	if arrType.Element == nil {
		return typesystem.TUnknown
	}
	return *arrType.Element
}

// VisitArrayCopy implements `arr[..]`: a full, eager copy of every
// element, always typed identically to its operand (as opposed to a
// RangeExpr-indexed ArrayAccess, which can slice a sub-range).
func (w *walker) VisitArrayCopy(n *ast.ArrayCopy) interface{} {
	arrType := w.analyzeExpression(n.Array, typesystem.TUnknown)
	if arrType.Kind != typesystem.Unknown && !typesystem.IsArray(arrType) {
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
			"cannot copy non-array type %s", arrType)
		return typesystem.TUnknown
	}
	return arrType
}

// VisitPropertyAccess implements the closed property set: only
// `.length` on an array, yielding usize (§9 Open Question resolved:
// property access is not a general field-access mechanism, Hexen has
// no structs, so the property name set is fixed at just "length").
func (w *walker) VisitPropertyAccess(n *ast.PropertyAccess) interface{} {
	objType := w.analyzeExpression(n.Object, typesystem.TUnknown)
	if objType.Kind == typesystem.Unknown {
		return typesystem.TUnknown
	}
	if n.Property != "length" {
		w.diags.Errorf(diagnostics.CodeInvalidPropertyName, n.Token, w.file,
			"unknown property %q", n.Property)
		return typesystem.TUnknown
	}
	if !typesystem.IsArray(objType) {
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
			"property 'length' is only valid on arrays, got %s", objType)
		return typesystem.TUnknown
	}
	return typesystem.TUsize
}
