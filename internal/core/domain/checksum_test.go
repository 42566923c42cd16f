package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/internal/core/domain"
)

func TestGenerateChecksum_Deterministic(t *testing.T) {
	t.Parallel()

	code := []byte("func add_one 1\nget 0\npush 1\nadd\nret\n")

	first := domain.GenerateChecksum(code)
	second := domain.GenerateChecksum(append([]byte(nil), code...))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, domain.GenerateChecksum([]byte("func other 0\npush 1\nret\n")))
}

func TestChecksum_Hex(t *testing.T) {
	t.Parallel()

	// sha256("") is a well known vector.
	c := domain.GenerateChecksum(nil)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", c.Hex())
	assert.Equal(t, c.Hex(), c.String())
}

func TestParseChecksum(t *testing.T) {
	t.Parallel()

	want := domain.GenerateChecksum([]byte("hello"))

	t.Run("lowercase", func(t *testing.T) {
		t.Parallel()
		got, err := domain.ParseChecksum(want.Hex())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("uppercase", func(t *testing.T) {
		t.Parallel()
		got, err := domain.ParseChecksum(strings.ToUpper(want.Hex()))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Parallel()
		_, err := domain.ParseChecksum("abcd")
		require.ErrorIs(t, err, domain.ErrInvalidChecksum)
	})

	t.Run("not hex", func(t *testing.T) {
		t.Parallel()
		_, err := domain.ParseChecksum(strings.Repeat("zz", domain.ChecksumSize))
		require.ErrorIs(t, err, domain.ErrInvalidChecksum)
	})
}
