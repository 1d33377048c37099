package safeconv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/contribfang/pkg/safeconv"
)

func TestMustUintToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, safeconv.MustUintToInt(0))
	assert.Equal(t, 42, safeconv.MustUintToInt(42))
	assert.Equal(t, safeconv.MaxInt, safeconv.MustUintToInt(uint(safeconv.MaxInt)))
}

func TestMustUintToInt_Overflow(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		safeconv.MustUintToInt(uint(safeconv.MaxInt) + 1)
	})
}

func TestMustIntToUint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(0), safeconv.MustIntToUint(0))
	assert.Equal(t, uint(7), safeconv.MustIntToUint(7))
}

func TestMustIntToUint_Negative(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		safeconv.MustIntToUint(-1)
	})
}
