package contrib_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
	"github.com/Sumatoshi-tech/contribfang/pkg/gitlib"
	"github.com/Sumatoshi-tech/contribfang/pkg/mailmap"
)

func record(sha, name, email string, added, removed int) *contrib.CommitRecord {
	return &contrib.CommitRecord{
		ShortHash:   sha,
		AuthorName:  name,
		AuthorEmail: email,
		Branch:      "origin/master",
		Stats:       gitlib.ChangeStats{LinesAdded: added, LinesRemoved: removed},
	}
}

func buildSet(records ...*contrib.CommitRecord) contrib.CommitSet {
	set := contrib.NewCommitSet()
	for _, rec := range records {
		set.Insert(rec)
	}

	return set
}

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		want   string
	}{
		{"example.com", "example.com"},
		{"lists.foo.example.com", "example.com"},
		{"example.co.uk", "co.uk"}, // last-two-labels rule, not public-suffix aware
		{"localhost", "localhost"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, contrib.NormalizeDomain(tc.domain), "domain %q", tc.domain)
	}
}

func TestAggregate_GroupsByEmailAndDomain(t *testing.T) {
	t.Parallel()

	set := buildSet(
		record("aaaaaaaaaa", "Jane", "jane@example.com", 10, 2),
		record("bbbbbbbbbb", "Jane", "jane@example.com", 5, 1),
		record("cccccccccc", "Raj", "raj@dev.example.com", 7, 3),
		record("dddddddddd", "Li", "li@other.org", 1, 0),
	)

	agg := contrib.Aggregate(set, mailmap.Map{})

	require.Len(t, agg.Committers, 3)
	require.Len(t, agg.Domains, 2)
	assert.Zero(t, agg.Skipped)

	jane := agg.Committers["jane@example.com"]
	require.NotNil(t, jane)
	assert.Equal(t, "Jane", jane.Name)
	assert.Equal(t, "example.com", jane.Domain)
	assert.Equal(t, 2, jane.NumCommits)
	assert.Equal(t, 15, jane.NumAdditions)
	assert.Equal(t, 3, jane.NumDeletions)

	// raj's subdomain collapses into the same domain bucket as jane.
	exampleCom := agg.Domains["example.com"]
	require.NotNil(t, exampleCom)
	assert.Equal(t, 3, exampleCom.NumCommits)
	assert.Equal(t, 22, exampleCom.NumAdditions)
	assert.Equal(t, 6, exampleCom.NumDeletions)

	otherOrg := agg.Domains["other.org"]
	require.NotNil(t, otherOrg)
	assert.Equal(t, 1, otherOrg.NumCommits)
}

func TestAggregate_SkipsBogusEmails(t *testing.T) {
	t.Parallel()

	set := buildSet(
		record("aaaaaaaaaa", "Jane", "jane@example.com", 1, 1),
		record("bbbbbbbbbb", "Ghost", "no-email-here", 9, 9),
	)

	agg := contrib.Aggregate(set, mailmap.Map{})

	assert.Len(t, agg.Committers, 1)
	assert.Equal(t, 1, agg.Skipped)
	assert.Empty(t, agg.SanityCheck(len(set)), "skip count must balance the totals")
}

func TestAggregate_Conservation(t *testing.T) {
	t.Parallel()

	const commits = 20

	set := contrib.NewCommitSet()
	for i := range commits {
		email := fmt.Sprintf("dev%d@host%d.example.com", i%5, i%3)
		set.Insert(record(fmt.Sprintf("%010d", i), "Dev", email, i, i))
	}

	agg := contrib.Aggregate(set, mailmap.Map{})

	committerSum := 0
	for _, committer := range agg.Committers {
		committerSum += committer.NumCommits
	}
	assert.Equal(t, commits, committerSum+agg.Skipped)

	domainSum := 0
	for _, bucket := range agg.Domains {
		domainSum += bucket.NumCommits
	}
	assert.Equal(t, commits, domainSum+agg.Skipped)

	assert.Empty(t, agg.SanityCheck(len(set)))
}

func TestSanityCheck_ReportsMismatch(t *testing.T) {
	t.Parallel()

	set := buildSet(record("aaaaaaaaaa", "Jane", "jane@example.com", 1, 1))
	agg := contrib.Aggregate(set, mailmap.Map{})

	// Claim a bigger set than was aggregated.
	warnings := agg.SanityCheck(len(set) + 1)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "committers")
	assert.Contains(t, warnings[1], "domains")
}
