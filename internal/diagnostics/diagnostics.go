// Package diagnostics defines the DiagnosticError shape the analyzer
// accumulates instead of returning Go errors for user-facing problems,
// grounded in the teacher's walker.addError/DiagnosticError pattern:
// semantic errors are data appended to a list, never panics or early
// returns up a call chain.
package diagnostics

import (
	"fmt"

	"hexen/internal/token"
)

// Severity distinguishes a hard error from a non-fatal warning such as
// the unused-variable diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code identifies the class of a diagnostic (§7).
type Code string

const (
	CodeTypeMismatch        Code = "type_mismatch"
	CodeUndefinedVariable   Code = "undefined_variable"
	CodeUndefinedFunction   Code = "undefined_function"
	CodeRedeclaration       Code = "redeclaration"
	CodeImmutableAssignment Code = "immutable_assignment"
	CodeUninitializedUse    Code = "uninitialized_use"
	CodeMissingInitializer  Code = "missing_initializer"
	CodeInvalidConversion   Code = "invalid_conversion"
	CodeArityMismatch       Code = "arity_mismatch"
	CodeReturnTypeMismatch  Code = "return_type_mismatch"
	CodeMissingReturn       Code = "missing_return"
	CodeReturnOutsideFunc   Code = "return_outside_function"
	CodeBreakOutsideLoop    Code = "break_outside_loop"
	CodeContinueOutsideLoop Code = "continue_outside_loop"
	CodeUnknownLabel        Code = "unknown_label"
	CodeDivisionByZero      Code = "division_by_zero"
	CodeIndexOutOfRange     Code = "index_out_of_range"
	CodeArraySizeMismatch   Code = "array_size_mismatch"
	CodeInvalidPropertyName Code = "invalid_property"
	CodeSyntaxError         Code = "syntax_error"
	CodeInternalError       Code = "internal_error"
	CodeUnusedVariable      Code = "unused_variable"

	// §7 Typing.
	CodePrecisionLoss                   Code = "precision_loss"
	CodeMixedConcreteRequiresAnnotation Code = "mixed_concrete_requires_annotation"
	CodeMixedComptimeRequiresAnnotation Code = "mixed_comptime_requires_annotation"
	CodeComparisonTypeMismatch          Code = "comparison_type_mismatch"
	CodeNonBoolCondition                Code = "non_bool_condition"
	CodeMissingElseBranch               Code = "missing_else_branch"
	CodeBranchTypeMismatch              Code = "branch_type_mismatch"
	CodeFloatInIntegerDivision          Code = "float_in_integer_division"

	// §7 Structural.
	CodeBareReturnInNonVoid        Code = "bare_return_in_non_void"
	CodeValueReturnInVoid          Code = "value_return_in_void"
	CodeExpressionBlockMissingAssign Code = "expression_block_missing_assign"

	// §7 Arrays/ranges.
	CodeInconsistentShape             Code = "inconsistent_shape"
	CodeEmptyArrayNeedsContext        Code = "empty_array_needs_context"
	CodeIndexNotInteger               Code = "index_not_integer"
	CodeIndexOnNonArray               Code = "index_on_non_array"
	CodeInvalidRange                  Code = "invalid_range"
	CodeFloatRangeNeedsStep           Code = "float_range_needs_step"
	CodeRangeMaterializationNeedsBounds Code = "range_materialization_needs_bounds"

	// §7 Function calls.
	CodeNotAFunction    Code = "not_a_function"
	CodeArgTypeMismatch Code = "arg_type_mismatch"

	// §8 scenario 4: "requires a float target" guidance that is distinct
	// from a generic type mismatch.
	CodeCannotInferType Code = "cannot_infer_type"
)

// DiagnosticError is a single reported problem, carrying enough source
// position to format a one-line message and enough structure to
// deduplicate cascades from the same root cause.
type DiagnosticError struct {
	Code       Code
	Severity   Severity
	Token      token.Token
	File       string
	Message    string
	Suggestion string // "" if none
}

func (e *DiagnosticError) Error() string {
	loc := fmt.Sprintf("%s:%d:%d", e.File, e.Token.Line, e.Token.Column)
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s[%s]: %s (%s)", loc, e.Severity, e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", loc, e.Severity, e.Code, e.Message)
}

// key is the dedup identity used by List.Add: the same (line, column,
// code) firing twice — typically because one malformed expression is
// visited from two directions — is recorded only once.
func (e *DiagnosticError) key() string {
	return fmt.Sprintf("%d:%d:%s", e.Token.Line, e.Token.Column, e.Code)
}

// List accumulates diagnostics for one analysis run, deduplicating by
// position+code exactly as the teacher's walker.errorSet does.
type List struct {
	seen  map[string]*DiagnosticError
	items []*DiagnosticError
}

// NewList returns an empty diagnostic list.
func NewList() *List {
	return &List{seen: make(map[string]*DiagnosticError)}
}

// Add appends a diagnostic, silently dropping exact (position, code)
// duplicates.
func (l *List) Add(d *DiagnosticError) {
	k := d.key()
	if _, ok := l.seen[k]; ok {
		return
	}
	l.seen[k] = d
	l.items = append(l.items, d)
}

// Errorf builds and adds an error-severity diagnostic.
func (l *List) Errorf(code Code, tok token.Token, file, format string, args ...interface{}) {
	l.Add(&DiagnosticError{
		Code:     code,
		Severity: SeverityError,
		Token:    tok,
		File:     file,
		Message:  fmt.Sprintf(format, args...),
	})
}

// ErrorfSuggest is Errorf plus a fix-it suggestion string.
func (l *List) ErrorfSuggest(code Code, tok token.Token, file, suggestion, format string, args ...interface{}) {
	l.Add(&DiagnosticError{
		Code:       code,
		Severity:   SeverityError,
		Token:      tok,
		File:       file,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: suggestion,
	})
}

// Warnf builds and adds a warning-severity diagnostic.
func (l *List) Warnf(code Code, tok token.Token, file, format string, args ...interface{}) {
	l.Add(&DiagnosticError{
		Code:     code,
		Severity: SeverityWarning,
		Token:    tok,
		File:     file,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Items returns every accumulated diagnostic in report order.
func (l *List) Items() []*DiagnosticError { return l.items }

// HasErrors reports whether any error-severity diagnostic (as opposed
// to warning-only) was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of error- and warning-severity diagnostics
// separately, for the driver's humanized summary line.
func (l *List) Count() (errs, warns int) {
	for _, d := range l.items {
		if d.Severity == SeverityError {
			errs++
		} else {
			warns++
		}
	}
	return
}
