package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Diff wraps a libgit2 diff.
type Diff struct {
	diff *git2go.Diff
}

// ChangeStats holds line-change totals with unambiguous direction.
// Downstream code reads these fields instead of the underlying
// library's insertions/deletions counters; the mapping is pinned by
// test so a library whose counters are named backwards cannot skew
// the statistics silently.
type ChangeStats struct {
	LinesAdded   int
	LinesRemoved int
	FilesChanged int
}

// ChangeStats computes the aggregate line-change totals for the diff.
// For libgit2, insertions are lines added in old->new direction, so the
// mapping is direct.
func (d *Diff) ChangeStats() (ChangeStats, error) {
	stats, err := d.diff.Stats()
	if err != nil {
		return ChangeStats{}, fmt.Errorf("get diff stats: %w", err)
	}

	result := ChangeStats{
		LinesAdded:   stats.Insertions(),
		LinesRemoved: stats.Deletions(),
		FilesChanged: stats.FilesChanged(),
	}

	freeErr := stats.Free()
	// Consume error - Free() errors are non-actionable in cleanup.
	_ = freeErr

	return result, nil
}

// Free releases the diff resources.
func (d *Diff) Free() {
	if d.diff == nil {
		return
	}

	err := d.diff.Free()
	d.diff = nil
	// Consume error - Free() errors are non-actionable in cleanup.
	_ = err
}
