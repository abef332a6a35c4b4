package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexen/internal/typesystem"
)

func TestDefineAndFind(t *testing.T) {
	tbl := New()
	ok := tbl.Define(&Symbol{Name: "x", Type: typesystem.TI32, Mutability: Immutable, Initialized: true})
	require.True(t, ok)

	sym := tbl.Find("x")
	require.NotNil(t, sym)
	require.Equal(t, typesystem.TI32, sym.Type)
}

func TestRedeclarationInSameScope(t *testing.T) {
	tbl := New()
	require.True(t, tbl.Define(&Symbol{Name: "x", Type: typesystem.TI32}))
	require.False(t, tbl.Define(&Symbol{Name: "x", Type: typesystem.TI64}))
}

func TestShadowingAcrossScopes(t *testing.T) {
	tbl := New()
	tbl.Define(&Symbol{Name: "x", Type: typesystem.TI32})

	tbl.EnterScope(false)
	require.False(t, tbl.IsDefinedLocally("x"))
	require.True(t, tbl.Define(&Symbol{Name: "x", Type: typesystem.TString}))
	require.True(t, tbl.IsDefinedLocally("x"))

	sym := tbl.Find("x")
	require.Equal(t, typesystem.TString, sym.Type)

	tbl.ExitScope()
	sym = tbl.Find("x")
	require.Equal(t, typesystem.TI32, sym.Type)
}

func TestExitScopeNeverPopsGlobal(t *testing.T) {
	tbl := New()
	require.Equal(t, 1, tbl.Depth())
	tbl.ExitScope()
	require.Equal(t, 1, tbl.Depth())
}

func TestMarkUsedAndInitialized(t *testing.T) {
	tbl := New()
	tbl.Define(&Symbol{Name: "x", Type: typesystem.TI32, Initialized: false})

	require.True(t, tbl.MarkUsed("x"))
	require.True(t, tbl.Find("x").Used)

	require.True(t, tbl.MarkInitialized("x"))
	require.True(t, tbl.Find("x").Initialized)

	require.False(t, tbl.MarkUsed("missing"))
}
