// Command hexen is the semantic-analyzer driver: two subcommands,
// `parse` (syntax only) and `check` (full semantic analysis),
// grounded in original_source/cli.py's contract (two positional args,
// "Commands: 'parse' or 'check'" on misuse, a file-not-found path
// distinct from a parse error) and in the teacher's cmd/funxy/main.go
// error-printing convention (`"- %s\n"` per diagnostic, exit 1 on any
// error; a usage error exits 2).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"hexen/internal/config"
	"hexen/internal/diagnostics"
	"hexen/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: hexen <command> <file>")
		fmt.Fprintln(stderr, "Commands: 'parse' or 'check'")
		return 2
	}

	command, file := args[0], args[1]
	if command != "parse" && command != "check" {
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		fmt.Fprintln(stderr, "Commands: 'parse' or 'check'")
		return 2
	}

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "- cannot read %s: %v\n", file, err)
		return 1
	}

	proj, err := config.LoadProject(file)
	if err != nil {
		fmt.Fprintf(stderr, "- invalid hexen.yaml: %v\n", err)
		return 1
	}
	color := shouldColor(proj.Color, stdout)

	ctx := &pipeline.PipelineContext{File: file, Source: string(source)}

	var stages []pipeline.Processor
	stages = append(stages, pipeline.ParseProcessor{})
	if command == "check" {
		stages = append(stages, pipeline.SemanticAnalyzerProcessor{})
	}

	ctx = pipeline.New(stages...).Run(ctx)

	if ctx.Err != nil {
		fmt.Fprintf(stderr, "- %s\n", ctx.Err)
		return 1
	}

	if command == "parse" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ctx.Program); err != nil {
			fmt.Fprintf(stderr, "- cannot encode AST: %v\n", err)
			return 1
		}
		return 0
	}

	return reportCheck(ctx, stdout, color)
}

func reportCheck(ctx *pipeline.PipelineContext, out *os.File, color bool) int {
	items := ctx.Result.Diagnostics.Items()
	for _, d := range items {
		fmt.Fprintln(out, formatDiagnostic(d, color))
	}

	errs, warns := ctx.Result.Diagnostics.Count()
	fmt.Fprintln(out, summaryLine(errs, warns, ctx.Result.RunID))

	if errs > 0 {
		return 1
	}
	return 0
}

func summaryLine(errs, warns int, runID string) string {
	return fmt.Sprintf("%s, %s (run %s)",
		humanize.Comma(int64(errs))+" "+pluralize(errs, "error"),
		humanize.Comma(int64(warns))+" "+pluralize(warns, "warning"),
		runID)
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func formatDiagnostic(d *diagnostics.DiagnosticError, color bool) string {
	line := d.Error()
	if !color {
		return "- " + line
	}
	const red, yellow, reset = "\x1b[31m", "\x1b[33m", "\x1b[0m"
	code := red
	if d.Severity == diagnostics.SeverityWarning {
		code = yellow
	}
	return "- " + code + line + reset
}

func shouldColor(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}
}
