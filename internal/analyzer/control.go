package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/typesystem"
)

func (w *walker) VisitReturnStatement(n *ast.ReturnStatement) interface{} {
	if w.fn == nil {
		w.diags.Errorf(diagnostics.CodeReturnOutsideFunc, n.Token, w.file, "return outside function")
		return nil
	}

	w.fn.sawReturn = true

	if n.Value == nil {
		if w.fn.returnType.Kind != typesystem.Void {
			w.diags.Errorf(diagnostics.CodeBareReturnInNonVoid, n.Token, w.file,
				"bare return in function %q returning %s", w.fn.name, w.fn.returnType)
		}
		return nil
	}

	if w.fn.returnType.Kind == typesystem.Void {
		w.diags.Errorf(diagnostics.CodeValueReturnInVoid, n.Token, w.file,
			"function %q returns void, cannot return a value", w.fn.name)
		w.analyzeExpression(n.Value, typesystem.TUnknown)
		return nil
	}

	valueType := w.analyzeExpression(n.Value, w.fn.returnType)
	if valueType.Kind != typesystem.Unknown && typesystem.Coerce(valueType, w.fn.returnType) == typesystem.NoCoercion {
		w.diags.Errorf(diagnostics.CodeReturnTypeMismatch, n.Token, w.file,
			"cannot return value of type %s from function %q returning %s", valueType, w.fn.name, w.fn.returnType)
	}
	return nil
}

func (w *walker) checkBoolCondition(cond ast.Expression, condType typesystem.Type) {
	if condType.Kind != typesystem.Unknown && !condType.Equal(typesystem.TBool) {
		w.diags.Errorf(diagnostics.CodeNonBoolCondition, cond.GetToken(), w.file,
			"condition must be bool, got %s", condType)
	}
}

// VisitConditionalStatement implements both the statement and
// expression forms of §4.8. w.exprContext (set by analyzeExpression)
// tells which one is in play: used bare, the branches are ordinary
// statement blocks; used as a value, they're expression blocks whose
// yielded types must unify.
func (w *walker) VisitConditionalStatement(n *ast.ConditionalStatement) interface{} {
	condType := w.analyzeExpression(n.Condition, typesystem.TBool)
	w.checkBoolCondition(n.Condition, condType)

	if w.exprContext {
		return w.analyzeConditionalExpression(n)
	}

	w.symbols.EnterScope(false)
	w.analyzeBlock(n.Then, statementBlockCtx, typesystem.TUnknown)
	w.reportUnusedInScope()
	w.symbols.ExitScope()

	if n.Else != nil {
		n.Else.Accept(w)
	}
	return nil
}

// analyzeConditionalExpression implements §4.8's branch unification:
// an `else` is mandatory whenever a target type is in context (there
// would otherwise be no value for the untaken path), and when both
// branches yield, their types must either match directly or both be
// reachable from a target type by implicit coercion.
func (w *walker) analyzeConditionalExpression(n *ast.ConditionalStatement) typesystem.Type {
	target := w.expected

	w.symbols.EnterScope(false)
	thenType, thenYields := w.analyzeBlock(n.Then, expressionBlockCtx, target)
	w.reportUnusedInScope()
	w.symbols.ExitScope()

	var elseType typesystem.Type
	elseYields := false
	if n.Else != nil {
		elseType, elseYields = w.analyzeElseClauseExpr(n.Else, target)
	} else if target.Kind != typesystem.Unknown {
		w.diags.Errorf(diagnostics.CodeMissingElseBranch, n.Token, w.file,
			"conditional expression needs an 'else' branch to always produce a value of type %s", target)
	}

	switch {
	case thenYields && elseYields:
		return w.unifyBranchTypes(n, thenType, elseType, target)
	case thenYields:
		return thenType
	case elseYields:
		return elseType
	case target.Kind != typesystem.Unknown:
		return target
	default:
		return typesystem.TUnknown
	}
}

func (w *walker) analyzeElseClauseExpr(n *ast.ElseClause, target typesystem.Type) (typesystem.Type, bool) {
	if n.If != nil {
		t := w.analyzeExpression(n.If, target)
		return t, t.Kind != typesystem.Unknown
	}
	w.symbols.EnterScope(false)
	t, yields := w.analyzeBlock(n.Block, expressionBlockCtx, target)
	w.reportUnusedInScope()
	w.symbols.ExitScope()
	return t, yields
}

func (w *walker) unifyBranchTypes(n *ast.ConditionalStatement, a, b, target typesystem.Type) typesystem.Type {
	if a.Kind == typesystem.Unknown || b.Kind == typesystem.Unknown {
		return typesystem.TUnknown
	}
	if target.Kind != typesystem.Unknown {
		if typesystem.Coerce(a, target) != typesystem.NoCoercion && typesystem.Coerce(b, target) != typesystem.NoCoercion {
			return target
		}
		w.diags.Errorf(diagnostics.CodeBranchTypeMismatch, n.Token, w.file,
			"branch types %s and %s do not both adapt to %s", a, b, target)
		return typesystem.TUnknown
	}
	if a.Equal(b) {
		return a
	}
	if typesystem.Coerce(a, b) == typesystem.ComptimeAdapts {
		return b
	}
	if typesystem.Coerce(b, a) == typesystem.ComptimeAdapts {
		return a
	}
	w.diags.Errorf(diagnostics.CodeBranchTypeMismatch, n.Token, w.file,
		"branch types %s and %s must match without a target type", a, b)
	return typesystem.TUnknown
}

func (w *walker) VisitElseClause(n *ast.ElseClause) interface{} {
	if n.If != nil {
		n.If.Accept(w)
		return nil
	}
	w.symbols.EnterScope(false)
	w.analyzeBlock(n.Block, statementBlockCtx, typesystem.TUnknown)
	w.reportUnusedInScope()
	w.symbols.ExitScope()
	return nil
}

func (w *walker) VisitWhileLoop(n *ast.WhileLoop) interface{} {
	condType := w.analyzeExpression(n.Condition, typesystem.TBool)
	w.checkBoolCondition(n.Condition, condType)

	w.pushLoop(n.Label)
	w.symbols.EnterScope(false)
	w.analyzeBlock(n.Body, statementBlockCtx, typesystem.TUnknown)
	w.reportUnusedInScope()
	w.symbols.ExitScope()
	w.popLoop()
	return nil
}

// VisitForInLoop implements §4.9: the iterable is either a range
// expression (the loop variable takes the range's element type
// directly, no materialization) or an array-valued expression (the
// loop variable takes the array's element type). w.exprContext
// distinguishes the statement form (body is an ordinary statement
// block, nothing produced) from the expression form (body is a
// loop-body block whose `->` values accumulate into a result array).
func (w *walker) VisitForInLoop(n *ast.ForInLoop) interface{} {
	var elemType typesystem.Type

	if rng, ok := n.Iterable.(*ast.RangeExpr); ok {
		rngType := w.analyzeExpression(rng, typesystem.TUnknown)
		if rngType.Kind == typesystem.RangeKind && rngType.Element != nil {
			elemType = *rngType.Element
		}
	} else {
		iterType := w.analyzeExpression(n.Iterable, typesystem.TUnknown)
		if typesystem.IsArray(iterType) && iterType.Element != nil {
			elemType = *iterType.Element
		} else if iterType.Kind != typesystem.Unknown {
			w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
				"for-in requires a range or array, got %s", iterType)
		}
	}
	if elemType.Kind == typesystem.Unknown {
		elemType = typesystem.TI32
	}

	w.pushLoop(n.Label)
	w.symbols.EnterScope(false)
	sym := loopVarSymbol(n.VarName, elemType, n.Token)
	w.symbols.Define(&sym)

	if w.exprContext {
		target := w.expected
		var elemTarget typesystem.Type
		if typesystem.IsArray(target) && target.Element != nil {
			elemTarget = *target.Element
		}

		yieldType, sawYield := w.analyzeBlock(n.Body, loopBodyBlockCtx, elemTarget)
		w.reportUnusedInScope()
		w.symbols.ExitScope()

		lc := w.findLoop(n.Label)
		finalElem := yieldType
		if lc != nil && lc.sawYield && lc.yieldType != nil {
			if finalElem.Kind == typesystem.Unknown {
				finalElem = *lc.yieldType
				sawYield = true
			} else if !finalElem.Equal(*lc.yieldType) && typesystem.Coerce(*lc.yieldType, finalElem) == typesystem.NoCoercion {
				w.diags.Errorf(diagnostics.CodeBranchTypeMismatch, n.Token, w.file,
					"break value type %s does not match the loop's yielded element type %s", *lc.yieldType, finalElem)
			}
		}
		w.popLoop()

		if !sawYield {
			// §9 Open Question resolved: a loop-expression that never
			// reaches its '->' (e.g. it breaks immediately) still
			// produces a well-typed, zero-length array rather than an
			// error, typed from the target context if one exists.
			if elemTarget.Kind != typesystem.Unknown {
				return typesystem.Array(elemTarget, []int{0})
			}
			return typesystem.Array(typesystem.TUnknown, []int{0})
		}
		// With a one-dimensional array target whose element type the
		// yielded values reach, the loop takes the target's type; the
		// iteration count is not checked against the target's size.
		if typesystem.IsArray(target) && len(target.Dims) == 1 && elemTarget.Kind != typesystem.Unknown &&
			typesystem.Coerce(finalElem, elemTarget) != typesystem.NoCoercion {
			return target
		}
		return typesystem.Array(finalElem, []int{-1})
	}

	w.analyzeBlock(n.Body, statementBlockCtx, typesystem.TUnknown)
	w.reportUnusedInScope()
	w.symbols.ExitScope()
	w.popLoop()
	return nil
}

func (w *walker) VisitBreakStatement(n *ast.BreakStatement) interface{} {
	lc := w.findLoop(n.Label)
	if lc == nil {
		if n.Label != "" {
			w.diags.Errorf(diagnostics.CodeUnknownLabel, n.Token, w.file, "unknown label %q", n.Label)
		} else {
			w.diags.Errorf(diagnostics.CodeBreakOutsideLoop, n.Token, w.file, "break outside loop")
		}
		if n.Value != nil {
			w.analyzeExpression(n.Value, typesystem.TUnknown)
		}
		return nil
	}

	if n.Value == nil {
		return nil
	}

	// First `break value` in this loop fixes the yielded type; every
	// later one must agree with it. A bare `break` carries no value and
	// is not checked against the valued ones.
	valueType := w.analyzeExpression(n.Value, typesystem.TUnknown)
	if !lc.sawYield {
		t := valueType
		lc.yieldType = &t
		lc.sawYield = true
		return nil
	}
	if lc.yieldType != nil && valueType.Kind != typesystem.Unknown && !valueType.Equal(*lc.yieldType) &&
		typesystem.Coerce(valueType, *lc.yieldType) == typesystem.NoCoercion {
		w.diags.Errorf(diagnostics.CodeTypeMismatch, n.Token, w.file,
			"break value type %s does not match earlier break value type %s in this loop", valueType, *lc.yieldType)
	}
	return nil
}

func (w *walker) VisitContinueStatement(n *ast.ContinueStatement) interface{} {
	lc := w.findLoop(n.Label)
	if lc == nil {
		if n.Label != "" {
			w.diags.Errorf(diagnostics.CodeUnknownLabel, n.Token, w.file, "unknown label %q", n.Label)
		} else {
			w.diags.Errorf(diagnostics.CodeContinueOutsideLoop, n.Token, w.file, "continue outside loop")
		}
	}
	return nil
}

func (w *walker) VisitLabeledStatement(n *ast.LabeledStatement) interface{} {
	n.Statement.Accept(w)
	return nil
}
