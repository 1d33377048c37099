package contrib

import (
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
)

// BranchTally is the per-branch diagnostic cross-tabulation of
// {first-seen, duplicate} x {inside, outside the recency window}.
// Merge commits discarded by the merge-skip option appear nowhere,
// including Total.
type BranchTally struct {
	Total            int
	UniqueInside     int
	UniqueOutside    int
	DuplicateInside  int
	DuplicateOutside int
}

func (t *BranchTally) record(seen, inside bool) {
	t.Total++

	switch {
	case !seen && inside:
		t.UniqueInside++
	case !seen && !inside:
		t.UniqueOutside++
	case seen && inside:
		t.DuplicateInside++
	default:
		t.DuplicateOutside++
	}
}

// inWindow reports whether a commit timestamp falls inside the trailing
// window: strictly before the cutoff is outside, equal-or-after is inside.
func inWindow(when, cutoff time.Time) bool {
	return !when.Before(cutoff)
}

// ExamineBranch walks the ancestry of the branch tip oldest-first and
// folds eligible commits into the set. A commit is kept only when it is
// both first-seen across all branches walked so far and inside the
// window; only then is its first-parent diff computed, since diffing is
// the expensive step. The updated set is returned to the caller, which
// owns it between calls.
func ExamineBranch(
	repo *gitlib.Repository,
	branch gitlib.RemoteBranch,
	cutoff time.Time,
	set CommitSet,
	skipMerges bool,
	logger *slog.Logger,
) (CommitSet, error) {
	logger.Info("finding relevant commits", "branch", branch.FullName)

	walk, err := repo.Walk()
	if err != nil {
		return set, err
	}
	defer walk.Free()

	walk.SortTopologicalReverse()

	pushErr := walk.Push(branch.Tip)
	if pushErr != nil {
		return set, pushErr
	}

	var (
		tally   BranchTally
		walkErr error
	)

	iterErr := walk.Iterate(func(commit *gitlib.Commit) bool {
		defer commit.Free()

		short := commit.Hash().Short()

		if commit.NumParents() > 1 && skipMerges {
			logger.Debug("skipping merge commit", "sha", short)

			return true
		}

		_, seen := set[short]
		inside := inWindow(commit.Committer().When, cutoff)
		tally.record(seen, inside)

		logger.Debug("examined commit", "sha", short, "seen", seen, "inside", inside)

		if seen || !inside {
			return true
		}

		rec, recErr := retainCommit(repo, commit, branch)
		if recErr != nil {
			walkErr = recErr

			return false
		}

		set.Insert(rec)

		return true
	})

	if walkErr != nil {
		return set, walkErr
	}

	if iterErr != nil {
		return set, iterErr
	}

	logger.Info("branch statistics",
		"branch", branch.FullName,
		"total", tally.Total,
		"unique_inside", tally.UniqueInside,
		"unique_outside", tally.UniqueOutside,
		"duplicate_inside", tally.DuplicateInside,
		"duplicate_outside", tally.DuplicateOutside,
	)

	return set, nil
}

func retainCommit(repo *gitlib.Repository, commit *gitlib.Commit, branch gitlib.RemoteBranch) (*CommitRecord, error) {
	diff, err := repo.DiffWithFirstParent(commit)
	if err != nil {
		return nil, err
	}
	defer diff.Free()

	stats, err := diff.ChangeStats()
	if err != nil {
		return nil, err
	}

	author := commit.Author()

	return &CommitRecord{
		ShortHash:   commit.Hash().Short(),
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		When:        commit.Committer().When,
		Branch:      branch.FullName,
		Stats:       stats,
	}, nil
}
