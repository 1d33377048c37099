package gitlib_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
)

// testRepo wraps a throwaway repository for integration testing.
type testRepo struct {
	t      *testing.T
	path   string
	native *git2go.Repository
}

// newTestRepo creates a new test repository.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(repo.Free)

	return &testRepo{t: t, path: dir, native: repo}
}

// createFile creates a file in the working directory.
func (tr *testRepo) createFile(name, content string) {
	tr.t.Helper()

	err := os.WriteFile(filepath.Join(tr.path, name), []byte(content), 0o644)
	require.NoError(tr.t, err)
}

// commit stages all files and creates a commit on HEAD.
func (tr *testRepo) commit(message string) gitlib.Hash {
	tr.t.Helper()

	index, err := tr.native.Index()
	require.NoError(tr.t, err)

	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	require.NoError(tr.t, err)

	err = index.Write()
	require.NoError(tr.t, err)

	treeID, err := index.WriteTree()
	require.NoError(tr.t, err)

	tree, err := tr.native.LookupTree(treeID)
	require.NoError(tr.t, err)

	defer tree.Free()

	sig := &git2go.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  time.Now(),
	}

	var parents []*git2go.Commit

	head, err := tr.native.Head()
	if err == nil {
		headCommit, lookupErr := tr.native.LookupCommit(head.Target())
		require.NoError(tr.t, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := tr.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(tr.t, err)

	for _, parent := range parents {
		parent.Free()
	}

	return gitlib.HashFromOid(oid)
}

func TestDiffWithFirstParent_RootCommitUsesEmptyTree(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "one\ntwo\nthree\n")
	rootHash := tr.commit("initial")

	repo, err := gitlib.OpenRepository(tr.path)
	require.NoError(t, err)

	defer repo.Free()

	commit, err := repo.LookupCommit(rootHash)
	require.NoError(t, err)

	defer commit.Free()

	require.Equal(t, 0, commit.NumParents())

	diff, err := repo.DiffWithFirstParent(commit)
	require.NoError(t, err)

	defer diff.Free()

	stats, err := diff.ChangeStats()
	require.NoError(t, err)

	// The whole file counts as added relative to the empty tree.
	assert.Equal(t, 3, stats.LinesAdded)
	assert.Equal(t, 0, stats.LinesRemoved)
	assert.Equal(t, 1, stats.FilesChanged)
}

func TestChangeStats_DirectionMapping(t *testing.T) {
	tr := newTestRepo(t)

	tr.createFile("a.txt", "one\ntwo\nthree\n")
	tr.commit("initial")

	tr.createFile("a.txt", "one\nfour\n")
	secondHash := tr.commit("rewrite")

	repo, err := gitlib.OpenRepository(tr.path)
	require.NoError(t, err)

	defer repo.Free()

	commit, err := repo.LookupCommit(secondHash)
	require.NoError(t, err)

	defer commit.Free()

	diff, err := repo.DiffWithFirstParent(commit)
	require.NoError(t, err)

	defer diff.Free()

	stats, err := diff.ChangeStats()
	require.NoError(t, err)

	// "two" and "three" left, "four" arrived. If the underlying
	// counters were read backwards these assertions would swap.
	assert.Equal(t, 1, stats.LinesAdded)
	assert.Equal(t, 2, stats.LinesRemoved)
}
