package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Remote wraps a libgit2 remote.
type Remote struct {
	remote *git2go.Remote
	name   string
}

// LookupRemote resolves a remote by name. A missing remote is an error;
// callers treat it as fatal.
func (r *Repository) LookupRemote(name string) (*Remote, error) {
	remote, err := r.repo.Remotes.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("lookup remote %q: %w", name, err)
	}

	return &Remote{remote: remote, name: name}, nil
}

// Name returns the remote name.
func (m *Remote) Name() string {
	return m.name
}

// URL returns the remote fetch URL.
func (m *Remote) URL() string {
	return m.remote.Url()
}

// Free releases the remote resources.
func (m *Remote) Free() {
	if m.remote != nil {
		m.remote.Free()
		m.remote = nil
	}
}

// RemoteBranch describes a remote-tracking branch reference.
type RemoteBranch struct {
	// FullName is the remote-qualified short name, e.g. "origin/main".
	FullName string
	// Remote is the remote part of FullName.
	Remote string
	// Short is the branch part of FullName.
	Short string
	// Tip is the commit the branch points at.
	Tip Hash
}

// RemoteBranches enumerates all remote-tracking branches in the
// repository. Symbolic entries (the remote HEAD pointer) are skipped
// here; filtering by remote is left to the caller.
func (r *Repository) RemoteBranches() ([]RemoteBranch, error) {
	iter, err := r.repo.NewBranchIterator(git2go.BranchRemote)
	if err != nil {
		return nil, fmt.Errorf("create branch iterator: %w", err)
	}
	defer iter.Free()

	var branches []RemoteBranch

	err = iter.ForEach(func(branch *git2go.Branch, _ git2go.BranchType) error {
		if branch.Reference.Type() == git2go.ReferenceSymbolic {
			return nil
		}

		name, nameErr := branch.Name()
		if nameErr != nil {
			return fmt.Errorf("branch name: %w", nameErr)
		}

		target := branch.Reference.Target()
		if target == nil {
			return nil
		}

		remoteName, short, found := strings.Cut(name, "/")
		if !found || short == "HEAD" {
			return nil
		}

		branches = append(branches, RemoteBranch{
			FullName: name,
			Remote:   remoteName,
			Short:    short,
			Tip:      HashFromOid(target),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}

	return branches, nil
}

// RemoteHeadShort resolves the branch short name the remote HEAD
// symbolic reference points at, e.g. "main" for
// refs/remotes/origin/HEAD -> refs/remotes/origin/main.
// Returns empty when the remote has no HEAD pointer locally.
func (r *Repository) RemoteHeadShort(remoteName string) string {
	refName := "refs/remotes/" + remoteName + "/HEAD"

	ref, err := r.repo.References.Lookup(refName)
	if err != nil {
		return ""
	}
	defer ref.Free()

	if ref.Type() != git2go.ReferenceSymbolic {
		return ""
	}

	target := ref.SymbolicTarget()
	prefix := "refs/remotes/" + remoteName + "/"

	return strings.TrimPrefix(target, prefix)
}
