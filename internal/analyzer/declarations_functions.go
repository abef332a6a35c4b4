package analyzer

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/symbols"
	"hexen/internal/typesystem"
)

// declareFunctionSignatures pre-registers every top-level function's
// name, parameter types, and return type before any body is analyzed,
// so forward references and mutual recursion resolve without a
// two-pass fixpoint over expressions.
func (w *walker) declareFunctionSignatures(prog *ast.Program) {
	w.funcSigs = make(map[string]*funcSignature)
	for _, fn := range prog.Functions {
		if _, exists := w.funcSigs[fn.Name]; exists {
			w.diags.Errorf(diagnostics.CodeRedeclaration, fn.Token, w.file,
				"function %q already declared", fn.Name)
			continue
		}
		paramTypes := make([]typesystem.Type, len(fn.Params.Params))
		for i, p := range fn.Params.Params {
			paramTypes[i] = w.resolveType(p.Type, p)
		}
		w.funcSigs[fn.Name] = &funcSignature{
			name:       fn.Name,
			paramTypes: paramTypes,
			returnType: w.resolveType(fn.ReturnType, fn),
			node:       fn,
		}
	}
}

func (w *walker) VisitProgram(n *ast.Program) interface{} {
	for _, fn := range n.Functions {
		fn.Accept(w)
	}
	return nil
}

func (w *walker) VisitFunction(n *ast.Function) interface{} {
	sig := w.funcSigs[n.Name]
	if sig == nil {
		return nil // redeclaration already reported
	}

	w.fn = &functionContext{name: n.Name, returnType: sig.returnType}
	w.symbols.EnterScope(true)

	for i, p := range n.Params.Params {
		mut := symbols.Immutable
		if p.IsMutable {
			mut = symbols.Mutable
		}
		w.symbols.Define(&symbols.Symbol{
			Name:        p.Name,
			Type:        sig.paramTypes[i],
			Mutability:  mut,
			Initialized: true,
			Used:        true, // parameters drive the unused-variable warning only for locals
			DeclToken:   p.Token,
		})
	}

	w.analyzeBlock(n.Body, functionBlockCtx, sig.returnType)

	if sig.returnType.Kind != typesystem.Void && !w.fn.sawReturn {
		w.diags.Errorf(diagnostics.CodeMissingReturn, n.Token, w.file,
			"function %q must return a value of type %s on every path", n.Name, sig.returnType)
	}

	w.reportUnusedInScope()
	w.symbols.ExitScope()
	w.fn = nil
	return nil
}

func (w *walker) VisitParameter(n *ast.Parameter) interface{} { return nil }

func (w *walker) VisitParameterList(n *ast.ParameterList) interface{} { return nil }
