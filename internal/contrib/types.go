// Package contrib implements the contribution statistics pipeline:
// branch selection, window-filtered history walking, and per-committer
// and per-domain aggregation.
package contrib

import (
	"time"

	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
)

// CommitRecord is one retained commit, reduced to the plain fields the
// aggregation and export stages need. Records are immutable once inserted.
type CommitRecord struct {
	ShortHash   string
	AuthorName  string
	AuthorEmail string
	When        time.Time
	Branch      string
	Stats       gitlib.ChangeStats
}

// CommitSet accumulates retained commits keyed by short hash. It is
// owned by exactly one stage at a time and handed forward by return
// value; membership is the sole de-duplication mechanism across
// branches.
type CommitSet map[string]*CommitRecord

// NewCommitSet returns an empty accumulator.
func NewCommitSet() CommitSet {
	return make(CommitSet)
}

// Insert adds the record unless its short hash is already present.
// The first branch to claim a commit keeps it: entries are never
// overwritten. Reports whether the record was added.
func (s CommitSet) Insert(rec *CommitRecord) bool {
	_, exists := s[rec.ShortHash]
	if exists {
		return false
	}

	s[rec.ShortHash] = rec

	return true
}
