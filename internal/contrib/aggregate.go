package contrib

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/contribfang/pkg/mailmap"
)

// domainLabelLimit is how many trailing dot-labels a domain is
// collapsed to. Deliberately not public-suffix aware.
const domainLabelLimit = 2

// Committer holds per-author-email contribution totals.
type Committer struct {
	Name         string
	Email        string
	Domain       string
	NumCommits   int
	NumAdditions int
	NumDeletions int
}

// Domain holds per-email-domain contribution totals.
type Domain struct {
	Domain       string
	NumCommits   int
	NumAdditions int
	NumDeletions int
}

// Aggregates is the result of one pass over a frozen commit set.
type Aggregates struct {
	Committers map[string]*Committer
	Domains    map[string]*Domain
	// Skipped counts commits excluded from aggregation because the
	// author email has no @ separator. They still count in the set.
	Skipped int
}

// NormalizeDomain collapses a domain to its last two dot-separated
// labels: "lists.foo.example.com" -> "example.com". Domains with two
// labels or fewer pass through unchanged.
func NormalizeDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) > domainLabelLimit {
		domain = strings.Join(labels[len(labels)-domainLabelLimit:], ".")
	}

	return domain
}

// Aggregate groups the frozen set by author email and by normalized
// email domain. The alias map is accepted for future canonicalization
// but is not consulted yet: remapping emails would silently change
// attribution keys relative to prior runs.
func Aggregate(set CommitSet, _ mailmap.Map) *Aggregates {
	agg := &Aggregates{
		Committers: make(map[string]*Committer),
		Domains:    make(map[string]*Domain),
	}

	for _, rec := range set {
		_, domainPart, found := strings.Cut(rec.AuthorEmail, "@")
		if !found {
			agg.Skipped++

			continue
		}

		domain := NormalizeDomain(domainPart)

		committer, exists := agg.Committers[rec.AuthorEmail]
		if !exists {
			committer = &Committer{
				Name:   rec.AuthorName,
				Email:  rec.AuthorEmail,
				Domain: domain,
			}
			agg.Committers[rec.AuthorEmail] = committer
		}

		committer.NumCommits++
		committer.NumAdditions += rec.Stats.LinesAdded
		committer.NumDeletions += rec.Stats.LinesRemoved

		bucket, exists := agg.Domains[domain]
		if !exists {
			bucket = &Domain{Domain: domain}
			agg.Domains[domain] = bucket
		}

		bucket.NumCommits++
		bucket.NumAdditions += rec.Stats.LinesAdded
		bucket.NumDeletions += rec.Stats.LinesRemoved
	}

	return agg
}

// SanityCheck verifies that per-committer and per-domain commit counts,
// plus the commits skipped for bogus emails, add up to the set size.
// Mismatches are reported as warning strings, never as errors: the run
// favors best-effort output over halting.
func (a *Aggregates) SanityCheck(total int) []string {
	var warnings []string

	committerSum := 0
	for _, committer := range a.Committers {
		committerSum += committer.NumCommits
	}

	if committerSum+a.Skipped != total {
		warnings = append(warnings, fmt.Sprintf(
			"total number of commits (%d) != sum of committers' commits (%d) + skipped (%d)",
			total, committerSum, a.Skipped))
	}

	domainSum := 0
	for _, bucket := range a.Domains {
		domainSum += bucket.NumCommits
	}

	if domainSum+a.Skipped != total {
		warnings = append(warnings, fmt.Sprintf(
			"total number of commits (%d) != sum of domains' commits (%d) + skipped (%d)",
			total, domainSum, a.Skipped))
	}

	return warnings
}
