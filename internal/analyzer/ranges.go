package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/typesystem"
)

// VisitRangeExpr implements §4.10's range forms: bounded (`a..b`,
// `a..=b`), unbounded-below/above (`..b`, `a..`, `..`), and any of
// those with a trailing `:step`. Every present bound and the step must
// agree on a single integer (or, with an explicit step, float) element
// type; an absent bound does not constrain it. A zero step is rejected
// as InvalidRange. Ranges materialize into arrays only via an explicit
// `[a..b]` array literal context, handled by the caller that requests
// this range with an array-typed `expected`; used directly (e.g. as a
// for-in iterable) a range never allocates.
func (w *walker) VisitRangeExpr(n *ast.RangeExpr) interface{} {
	elemExpect := typesystem.TUnknown
	if w.expected.Kind == typesystem.RangeKind && w.expected.Element != nil {
		elemExpect = *w.expected.Element
	} else if typesystem.IsInteger(w.expected) {
		elemExpect = w.expected
	}

	var elem typesystem.Type
	if n.Start != nil {
		elem = w.analyzeExpression(n.Start, elemExpect)
	}
	if n.End != nil {
		endExpect := elemExpect
		if endExpect.Kind == typesystem.Unknown {
			endExpect = elem
		}
		t := w.analyzeExpression(n.End, endExpect)
		if elem.Kind == typesystem.Unknown || typesystem.Coerce(elem, t) == typesystem.ComptimeAdapts {
			elem = t
		} else if t.Kind != typesystem.Unknown && !t.Equal(elem) && typesystem.Coerce(t, elem) != typesystem.ComptimeAdapts {
			w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file, "range bounds have mismatched types %s and %s", elem, t)
			return typesystem.TUnknown
		}
	}
	if n.Step != nil {
		t := w.analyzeExpression(n.Step, elem)
		if typesystem.Coerce(elem, t) == typesystem.ComptimeAdapts {
			elem = t
		} else if elem.Kind != typesystem.Unknown && t.Kind != typesystem.Unknown && !t.Equal(elem) && typesystem.Coerce(t, elem) != typesystem.ComptimeAdapts {
			w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file, "range step type %s does not match bound type %s", t, elem)
			return typesystem.TUnknown
		}
	}

	if elem.Kind == typesystem.Unknown {
		elem = typesystem.TI32
	}

	if typesystem.IsFloat(elem) && n.Step == nil {
		w.diags.Errorf(diagnostics.CodeFloatRangeNeedsStep, n.Token, w.file,
			"float range bounds require an explicit step")
		return typesystem.TUnknown
	}
	if !typesystem.IsInteger(elem) && !typesystem.IsFloat(elem) {
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
			"range bounds must be integers or (stepped) floats, got %s", elem)
		return typesystem.TUnknown
	}

	if stepInt, ok := n.Step.(*ast.ComptimeInt); ok && stepInt.Value == 0 {
		w.diags.Errorf(diagnostics.CodeInvalidRange, n.Token, w.file, "range step cannot be zero")
		return typesystem.TUnknown
	}
	if stepFloat, ok := n.Step.(*ast.ComptimeFloat); ok && stepFloat.Value == 0 {
		w.diags.Errorf(diagnostics.CodeInvalidRange, n.Token, w.file, "range step cannot be zero")
		return typesystem.TUnknown
	}

	return typesystem.Range(typesystem.DefaultConcrete(elem))
}

func (w *walker) VisitRangeType(n *ast.RangeType) interface{} { return nil }
