package typesystem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerceComptimeAdapts(t *testing.T) {
	require.Equal(t, ComptimeAdapts, Coerce(TComptimeInt, TI64))
	require.Equal(t, ComptimeAdapts, Coerce(TComptimeInt, TF64))
	require.Equal(t, ComptimeAdapts, Coerce(TComptimeFloat, TF32))
	require.Equal(t, NoCoercion, Coerce(TComptimeFloat, TI32))
}

func TestCoerceLosslessWiden(t *testing.T) {
	require.Equal(t, LosslessWiden, Coerce(TI32, TI64))
	require.Equal(t, LosslessWiden, Coerce(TI32, TF64))
	require.Equal(t, NoCoercion, Coerce(TI64, TI32))
	require.Equal(t, NoCoercion, Coerce(TUsize, TI32))
	require.Equal(t, NoCoercion, Coerce(TI32, TUsize))
}

func TestCoerceIdentity(t *testing.T) {
	require.Equal(t, Identity, Coerce(TBool, TBool))
	require.Equal(t, Identity, Coerce(TString, TString))
}

func TestCanExplicitlyConvertNarrowing(t *testing.T) {
	require.True(t, CanExplicitlyConvert(TI64, TI32))
	require.True(t, CanExplicitlyConvert(TUsize, TI32))
	require.False(t, CanExplicitlyConvert(TString, TI32))
	require.False(t, CanExplicitlyConvert(TBool, TI32))
}

func TestClassificationPredicates(t *testing.T) {
	require.True(t, IsInteger(TUsize))
	require.False(t, IsSignedInteger(TUsize))
	require.True(t, IsSignedInteger(TI64))
	require.True(t, IsFloat(TComptimeFloat))
	require.True(t, IsComptime(TComptimeInt))
	require.False(t, IsConcrete(TComptimeInt))
	require.True(t, IsConcrete(TI32))
}

func TestArrayEqualAndString(t *testing.T) {
	a := Array(TI32, []int{3})
	b := Array(TI32, []int{3})
	c := Array(TI32, []int{4})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.Equal(t, "[3]i32", a.String())
}

func TestDefaultConcrete(t *testing.T) {
	require.Equal(t, TI32, DefaultConcrete(TComptimeInt))
	require.Equal(t, TF64, DefaultConcrete(TComptimeFloat))
}
