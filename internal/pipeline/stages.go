package pipeline

import (
	"fmt"

	"hexen/internal/analyzer"
	"hexen/internal/lexer"
	"hexen/internal/parser"
)

// ParseProcessor lexes and parses ctx.Source into ctx.Program, setting
// ctx.Err to the first syntax error encountered.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	l := lexer.New(ctx.Source)
	p := parser.New(l, ctx.File)
	ctx.Program = p.Parse()
	if err := p.Err(); err != nil {
		ctx.Err = fmt.Errorf("syntax error: %w", err)
	}
	return ctx
}

// SemanticAnalyzerProcessor runs the analyzer over ctx.Program.
type SemanticAnalyzerProcessor struct{}

func (SemanticAnalyzerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	a := analyzer.New(ctx.File)
	res := a.Analyze(ctx.Program)
	ctx.Result = AnalysisResult{RunID: res.RunID, Diagnostics: res.Diagnostics}
	return ctx
}
