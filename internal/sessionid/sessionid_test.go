package sessionid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	id := Generate()
	assert.Len(t, id, 26)
	require.NoError(t, Validate(id))
}

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateSortsByCreationTime(t *testing.T) {
	a := Generate()
	b := Generate()
	// same millisecond ties are fine either way, later must never sort first
	assert.LessOrEqual(t, a[:9], b[:9], "timestamp prefix is monotonic")
}

func TestDeterministicWithRandSource(t *testing.T) {
	id := GenerateWithRandSource(rand.New(rand.NewSource(42)))
	require.NoError(t, Validate(id))
}

func TestValidateRejectsBadIDs(t *testing.T) {
	assert.Error(t, Validate("short"))
	assert.Error(t, Validate("z2345678901234567890123456"), "first char above 7")
	assert.Error(t, Validate("0234567890123456789012345!"))
	assert.NoError(t, Validate("01234567890123456789abcdef"))
}
