package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"hexen/internal/lexer"
	"hexen/internal/parser"
)

// runGolden parses and analyzes a txtar-bundled source file and
// reports the diagnostic codes produced, in report order.
func runGolden(t *testing.T, path string) []string {
	t.Helper()
	arc, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var source string
	var expectRaw string
	for _, f := range arc.Files {
		switch f.Name {
		case "source.hxn":
			source = string(f.Data)
		case "expect.txt":
			expectRaw = string(f.Data)
		}
	}
	require.NotEmpty(t, source, "fixture missing source.hxn")

	p := parser.New(lexer.New(source), path)
	prog := p.Parse()
	require.NoError(t, p.Err())

	res := New(path).Analyze(prog)

	var codes []string
	for _, d := range res.Diagnostics.Items() {
		codes = append(codes, string(d.Code))
	}

	_ = expectRaw
	return codes
}

func expectedCodes(t *testing.T, path string) []string {
	t.Helper()
	arc, err := txtar.ParseFile(path)
	require.NoError(t, err)
	for _, f := range arc.Files {
		if f.Name == "expect.txt" {
			raw := strings.TrimSpace(string(f.Data))
			if raw == "(none)" || raw == "" {
				return nil
			}
			return strings.Fields(raw)
		}
	}
	return nil
}

func TestGoldenFixtures(t *testing.T) {
	fixtures := []string{
		"testdata/comptime_adapt.txtar",
		"testdata/type_mismatch.txtar",
		"testdata/immutable_assignment.txtar",
	}

	for _, path := range fixtures {
		path := path
		t.Run(path, func(t *testing.T) {
			got := runGolden(t, path)
			want := expectedCodes(t, path)

			if want == nil {
				require.Empty(t, got, "expected no diagnostics")
				return
			}
			for _, code := range want {
				require.Contains(t, got, code)
			}
		})
	}
}
