package contrib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInWindow_Boundary(t *testing.T) {
	t.Parallel()

	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	assert.False(t, inWindow(cutoff.Add(-time.Second), cutoff), "strictly before cutoff is outside")
	assert.True(t, inWindow(cutoff, cutoff), "exactly at cutoff is inside")
	assert.True(t, inWindow(cutoff.Add(time.Second), cutoff), "after cutoff is inside")
}

func TestBranchTally_Record(t *testing.T) {
	t.Parallel()

	var tally BranchTally

	tally.record(false, true)
	tally.record(false, true)
	tally.record(false, false)
	tally.record(true, true)
	tally.record(true, false)

	assert.Equal(t, 5, tally.Total)
	assert.Equal(t, 2, tally.UniqueInside)
	assert.Equal(t, 1, tally.UniqueOutside)
	assert.Equal(t, 1, tally.DuplicateInside)
	assert.Equal(t, 1, tally.DuplicateOutside)
}
