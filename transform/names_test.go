package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamesAvoidProgramIdentifiers(t *testing.T) {
	program := parseProgram(t, "var $t1 = 1; f($t1, $t3)")
	names := NewNames(program)
	require.Equal(t, "$t2", names.Generate())
	require.Equal(t, "$t4", names.Generate())
	require.Equal(t, "$t5", names.Generate())
}

func TestNamesNeverRepeat(t *testing.T) {
	names := NewNames(nil)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := names.Generate()
		require.False(t, seen[name])
		seen[name] = true
	}
}

func TestNamesReserve(t *testing.T) {
	names := NewNames(nil)
	names.Reserve("$t1")
	require.Equal(t, "$t2", names.Generate())
}

func TestNamesWithPrefix(t *testing.T) {
	names := NewNames(nil, WithPrefix("$key"))
	require.Equal(t, "$key1", names.Generate())
}

func TestNamesWithRandomSalt(t *testing.T) {
	a := NewNames(nil, WithRandomSalt())
	b := NewNames(nil, WithRandomSalt())
	nameA := a.Generate()
	nameB := b.Generate()
	require.NotEqual(t, nameA, nameB)
	require.True(t, strings.HasPrefix(nameA, "$t"))
}
