// Package analyzer implements Hexen's semantic analysis pass: symbol
// resolution, mutability and initialization tracking, comptime literal
// adaptation, and type checking over the closed AST. It follows the
// teacher's walker pattern: all analysis state lives in one unexported
// struct threaded through a Visitor implementation, and every
// user-facing problem is appended to a diagnostics.List rather than
// returned as a Go error — Analyze never fails, it reports.
package analyzer

import (
	"github.com/google/uuid"

	"hexen/internal/ast"
	"hexen/internal/diagnostics"
	"hexen/internal/symbols"
	"hexen/internal/typesystem"
)

// Analyzer runs semantic analysis over a single parsed file.
type Analyzer struct {
	file string
}

// New returns an Analyzer for the given source file path (used only
// for diagnostic formatting).
func New(file string) *Analyzer {
	return &Analyzer{file: file}
}

// Result is the outcome of one Analyze call.
type Result struct {
	RunID       string
	Diagnostics *diagnostics.List
}

// Analyze walks prog and returns every diagnostic produced. It never
// panics on malformed user input; internal invariant violations are
// recovered and converted to an internal_error diagnostic tagged with
// the run ID so repeated CLI invocations can be correlated.
func (a *Analyzer) Analyze(prog *ast.Program) (result Result) {
	runID := uuid.New().String()
	w := &walker{
		file:    a.file,
		diags:   diagnostics.NewList(),
		symbols: symbols.New(),
		runID:   runID,
	}

	defer func() {
		if r := recover(); r != nil {
			w.diags.Errorf(diagnostics.CodeInternalError, prog.Token, a.file,
				"internal analysis error (run %s): %v", runID, r)
			result = Result{RunID: runID, Diagnostics: w.diags}
		}
	}()

	w.declareFunctionSignatures(prog)
	prog.Accept(w)

	return Result{RunID: runID, Diagnostics: w.diags}
}

// loopContext tracks one enclosing loop for break/continue/label
// resolution and for the break-before-first-yield rule on
// expression-producing loops (§9 Open Question: a labeled break with a
// value is only meaningful if every exit path agrees on a type; Hexen
// resolves this by requiring the loop's yielded type, if any, to be
// fixed by the first `break value` encountered and every subsequent
// one to match it).
type loopContext struct {
	label      string
	yieldType  *typesystem.Type
	sawYield   bool
}

// functionContext tracks the enclosing function for return-statement
// validation.
type functionContext struct {
	name       string
	returnType typesystem.Type
	sawReturn  bool
}

// walker is the teacher-style internal analyzer state object: every
// Visit method reads and mutates it instead of threading an explicit
// context struct through every call, while analyzeExpression still
// passes per-call target-type context explicitly where the grammar
// requires it (comptime adaptation needs to know its destination).
type walker struct {
	file    string
	diags   *diagnostics.List
	symbols *symbols.SymbolTable
	runID   string

	funcSigs map[string]*funcSignature

	fn    *functionContext
	loops []*loopContext

	// expected is the target type the expression currently being
	// visited should adapt toward, set by analyzeExpression before
	// calling Accept and consumed by the literal/array Visit methods.
	expected typesystem.Type

	// exprContext is true while the walker is underneath an
	// analyzeExpression call, as opposed to plain statement dispatch.
	// VisitConditionalStatement and VisitForInLoop consult it to tell
	// their statement form (§4.8/§4.9 "used bare") from their
	// expression form (§4.8/§4.9 "used as a value").
	exprContext bool

	// blockCtx/blockExpected are the ambient §4.7 BlockContext and
	// target type for the block currently being visited, set by
	// analyzeBlock just before dispatching to VisitBlock.
	blockCtx      blockContext
	blockExpected typesystem.Type
}

// blockContext mirrors §4.7's Function/Statement/Expression/LoopBody
// enum: it governs whether a `->` yield statement is legal inside a
// block, and whether the block as a whole produces a value.
type blockContext int

const (
	functionBlockCtx blockContext = iota
	statementBlockCtx
	expressionBlockCtx
	loopBodyBlockCtx
)

type funcSignature struct {
	name       string
	paramTypes []typesystem.Type
	returnType typesystem.Type
	node       *ast.Function
}

func (w *walker) pushLoop(label string) *loopContext {
	lc := &loopContext{label: label}
	w.loops = append(w.loops, lc)
	return lc
}

func (w *walker) popLoop() {
	w.loops = w.loops[:len(w.loops)-1]
}

func (w *walker) findLoop(label string) *loopContext {
	if label == "" {
		if len(w.loops) == 0 {
			return nil
		}
		return w.loops[len(w.loops)-1]
	}
	for i := len(w.loops) - 1; i >= 0; i-- {
		if w.loops[i].label == label {
			return w.loops[i]
		}
	}
	return nil
}
