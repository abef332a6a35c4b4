// Package pipeline sequences the lex -> parse -> analyze stages behind
// a small Processor interface, grounded in the teacher's
// internal/pipeline.Pipeline/Processor shape: each stage reads and
// writes a shared PipelineContext and the driver runs them in order.
package pipeline

import (
	"hexen/internal/ast"
	"hexen/internal/diagnostics"
)

// PipelineContext threads state between stages. A stage that hits a
// fatal problem (source unreadable, syntax error) sets Err, and Run
// starts no later stage once Err is set.
type PipelineContext struct {
	File    string
	Source  string
	Program *ast.Program
	Result  AnalysisResult
	Err     error
}

// AnalysisResult is filled in by the analyzer stage.
type AnalysisResult struct {
	RunID       string
	Diagnostics *diagnostics.List
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs a fixed sequence of stages over one PipelineContext.
type Pipeline struct {
	processors []Processor
}

// New returns a Pipeline that runs processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order and stops before the next stage
// once one has set ctx.Err; the returned context still holds whatever
// the stages that ran put into it.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Err != nil {
			break
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
