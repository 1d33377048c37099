package contrib

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
)

// fallbackDefaultBranches are tried in order when the remote HEAD
// pointer is not present locally.
var fallbackDefaultBranches = []string{"master", "main"}

// SelectBranches enumerates the remote-tracking branches of the given
// remote, excluding the symbolic HEAD pointer. When allowList is
// non-empty (comma-separated short names), only listed branches pass.
func SelectBranches(
	repo *gitlib.Repository,
	remote *gitlib.Remote,
	allowList string,
	logger *slog.Logger,
) ([]gitlib.RemoteBranch, error) {
	var desired []string
	if allowList != "" {
		desired = strings.Split(allowList, ",")
	}

	all, err := repo.RemoteBranches()
	if err != nil {
		return nil, err
	}

	var selected []gitlib.RemoteBranch

	for _, branch := range all {
		if branch.Remote != remote.Name() {
			logger.Debug("skipping branch", "branch", branch.FullName, "reason", "wrong remote")

			continue
		}

		if desired != nil && !slices.Contains(desired, branch.Short) {
			logger.Debug("skipping branch", "branch", branch.FullName, "reason", "not a desired branch")

			continue
		}

		logger.Info("found branch", "branch", branch.FullName)
		selected = append(selected, branch)
	}

	return selected, nil
}

// DefaultBranch picks the branch to walk first so that ancestry shared
// across branches is attributed to it. The remote HEAD pointer wins
// when present; otherwise the first of master/main found in the
// selection. Reports false when no candidate exists.
func DefaultBranch(
	repo *gitlib.Repository,
	remote *gitlib.Remote,
	branches []gitlib.RemoteBranch,
) (gitlib.RemoteBranch, bool) {
	headShort := repo.RemoteHeadShort(remote.Name())
	if headShort != "" {
		for _, branch := range branches {
			if branch.Short == headShort {
				return branch, true
			}
		}
	}

	for _, name := range fallbackDefaultBranches {
		for _, branch := range branches {
			if branch.Short == name {
				return branch, true
			}
		}
	}

	return gitlib.RemoteBranch{}, false
}
