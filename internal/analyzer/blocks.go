package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/typesystem"
)

// blockResult is VisitBlock's return payload: the value (if any) of
// its trailing `->` yield statement, a distinct shape from
// typesystem.Type so analyzeBlock's type assertion never collides
// with an expression node's own return value.
type blockResult struct {
	yieldType typesystem.Type
	sawYield  bool
}

// analyzeBlock is the single entry point every block consumer (the
// function body, conditional branches, loop bodies) goes through: it
// stashes the ambient §4.7 BlockContext and target type on the walker
// before dispatching to VisitBlock, mirroring analyzeExpression's
// `expected`-field threading. Scope entry/exit remains the caller's
// responsibility, unchanged from the block's original design.
func (w *walker) analyzeBlock(b *ast.Block, ctx blockContext, expected typesystem.Type) (typesystem.Type, bool) {
	savedCtx, savedExpected, savedExprCtx := w.blockCtx, w.blockExpected, w.exprContext
	w.blockCtx, w.blockExpected = ctx, expected
	// The block's own statements are statements even when the block
	// itself is consumed as a value.
	w.exprContext = false
	res, _ := b.Accept(w).(blockResult)
	w.blockCtx, w.blockExpected, w.exprContext = savedCtx, savedExpected, savedExprCtx
	return res.yieldType, res.sawYield
}

// VisitBlock analyzes a unified block's statement list in the current
// scope (§4.7): the same node shape serves a function body, an
// if/else branch, and a loop body alike, distinguished only by the
// ambient blockCtx. A `->` yield statement is legal only as the final
// statement of an Expression or LoopBody block; its value becomes the
// block's result.
func (w *walker) VisitBlock(n *ast.Block) interface{} {
	ctx, expected := w.blockCtx, w.blockExpected
	producing := ctx == expressionBlockCtx || ctx == loopBodyBlockCtx

	var yieldType typesystem.Type
	sawYield := false

	for i, stmt := range n.Statements {
		if y, ok := stmt.(*ast.YieldStatement); ok {
			if !producing {
				w.diags.Errorf(diagnostics.CodeExpressionBlockMissingAssign, y.Token, w.file,
					"'->' is only legal as the final statement of an expression block")
			} else if i != len(n.Statements)-1 {
				w.diags.Errorf(diagnostics.CodeExpressionBlockMissingAssign, y.Token, w.file,
					"'->' must be the final statement of its block")
			}
			yieldType = w.analyzeExpression(y.Value, expected)
			sawYield = true
			continue
		}
		stmt.Accept(w)
	}

	if ctx == expressionBlockCtx && !sawYield {
		w.diags.Errorf(diagnostics.CodeExpressionBlockMissingAssign, n.Token, w.file,
			"expression block must end in a '-> value' statement")
	}

	return blockResult{yieldType: yieldType, sawYield: sawYield}
}

// VisitYieldStatement is reached only if a '->' is encountered outside
// VisitBlock's own dispatch (e.g. nested directly under another
// visitor that doesn't special-case it); VisitBlock intercepts every
// ordinary '->' before Accept is ever called on it.
func (w *walker) VisitYieldStatement(n *ast.YieldStatement) interface{} {
	w.diags.Errorf(diagnostics.CodeExpressionBlockMissingAssign, n.Token, w.file,
		"'->' is only legal as the final statement of an expression block")
	w.analyzeExpression(n.Value, typesystem.TUnknown)
	return nil
}

// reportUnusedInScope emits a non-fatal UnusedVariable warning for
// every declared-but-never-referenced binding in the innermost scope,
// called just before that scope closes (§4 SUPPLEMENTED FEATURES:
// Symbol.used is tracked but never consumed upstream; completing the
// warning here realizes it).
func (w *walker) reportUnusedInScope() {
	for _, sym := range w.symbols.CurrentScopeSymbols() {
		if !sym.Used {
			w.diags.Warnf(diagnostics.CodeUnusedVariable, sym.DeclToken, w.file,
				"variable %q declared but never used", sym.Name)
		}
	}
}
