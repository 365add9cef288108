package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, CheckPassword(hash, "correct-horse"))
	assert.Error(t, CheckPassword(hash, "wrong-horse"))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("correct-horse")
	require.NoError(t, err)
	second, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
