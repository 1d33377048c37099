// Package export serializes aggregated contribution statistics to CSV
// tables, pie charts, and a terminal summary.
package export

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
)

// filePerm is the permission for written artifacts.
const filePerm = 0o644

// dateLayout formats commit timestamps in CSV output.
const dateLayout = "2006-01-02 15:04:05"

// Table is a fully materialized CSV table: a header row and data rows
// with positionally matching values. Each export kind declares its own
// header explicitly instead of inferring fields from a representative
// record; headers are kept in lexicographic order.
type Table struct {
	Header []string
	Rows   [][]string
}

// CommitsTable builds one row per retained commit, sorted by short
// hash. remoteURL is used to construct per-commit web links.
func CommitsTable(set contrib.CommitSet, remoteURL string) Table {
	shas := make([]string, 0, len(set))
	for sha := range set {
		shas = append(shas, sha)
	}

	sort.Strings(shas)

	table := Table{
		Header: []string{"branch", "date", "email", "name", "num_additions", "num_deletions", "sha", "url"},
		Rows:   make([][]string, 0, len(set)),
	}

	for _, sha := range shas {
		rec := set[sha]
		table.Rows = append(table.Rows, []string{
			rec.Branch,
			rec.When.Format(dateLayout),
			rec.AuthorEmail,
			rec.AuthorName,
			strconv.Itoa(rec.Stats.LinesAdded),
			strconv.Itoa(rec.Stats.LinesRemoved),
			rec.ShortHash,
			CommitWebURL(remoteURL, rec.ShortHash),
		})
	}

	return table
}

// CommittersTable builds one row per committer, sorted by email.
func CommittersTable(agg *contrib.Aggregates) Table {
	emails := make([]string, 0, len(agg.Committers))
	for email := range agg.Committers {
		emails = append(emails, email)
	}

	sort.Strings(emails)

	table := Table{
		Header: []string{"domain", "email", "name", "num_additions", "num_commits", "num_deletions"},
		Rows:   make([][]string, 0, len(emails)),
	}

	for _, email := range emails {
		committer := agg.Committers[email]
		table.Rows = append(table.Rows, []string{
			committer.Domain,
			committer.Email,
			committer.Name,
			strconv.Itoa(committer.NumAdditions),
			strconv.Itoa(committer.NumCommits),
			strconv.Itoa(committer.NumDeletions),
		})
	}

	return table
}

// DomainsTable builds one row per domain, sorted by domain.
func DomainsTable(agg *contrib.Aggregates) Table {
	domains := make([]string, 0, len(agg.Domains))
	for domain := range agg.Domains {
		domains = append(domains, domain)
	}

	sort.Strings(domains)

	table := Table{
		Header: []string{"domain", "num_additions", "num_commits", "num_deletions"},
		Rows:   make([][]string, 0, len(domains)),
	}

	for _, domain := range domains {
		bucket := agg.Domains[domain]
		table.Rows = append(table.Rows, []string{
			bucket.Domain,
			strconv.Itoa(bucket.NumAdditions),
			strconv.Itoa(bucket.NumCommits),
			strconv.Itoa(bucket.NumDeletions),
		})
	}

	return table
}

// WriteCSV writes the table to path. Every value is quoted, including
// the header; encoding/csv only quotes on demand, which is why the
// quoting is done here.
func (t Table) WriteCSV(path string) error {
	var builder strings.Builder

	writeRow(&builder, t.Header)

	for _, row := range t.Rows {
		writeRow(&builder, row)
	}

	err := os.WriteFile(path, []byte(builder.String()), filePerm)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	return nil
}

func writeRow(builder *strings.Builder, row []string) {
	for i, field := range row {
		if i > 0 {
			builder.WriteByte(',')
		}

		builder.WriteByte('"')
		builder.WriteString(strings.ReplaceAll(field, `"`, `""`))
		builder.WriteByte('"')
	}

	builder.WriteByte('\n')
}

// CommitWebURL derives a commit's web URL from the remote fetch URL.
// Handles https://host/org/repo[.git] and git@host:org/repo[.git]
// forms; any other shape yields an empty string.
func CommitWebURL(remoteURL, sha string) string {
	host, path := splitRemoteURL(remoteURL)
	if host == "" {
		return ""
	}

	return "https://" + host + "/" + path + "/commit/" + sha
}

func splitRemoteURL(remoteURL string) (host, path string) {
	if remoteURL == "" {
		return "", ""
	}

	if after, found := strings.CutPrefix(remoteURL, "git@"); found {
		host, path, found = strings.Cut(after, ":")
		if !found || host == "" || path == "" {
			return "", ""
		}

		return host, strings.TrimSuffix(path, ".git")
	}

	parsed, err := url.Parse(remoteURL)
	if err != nil || parsed.Host == "" || parsed.Path == "" {
		return "", ""
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" && parsed.Scheme != "ssh" {
		return "", ""
	}

	path = strings.TrimSuffix(strings.Trim(parsed.Path, "/"), ".git")
	if path == "" {
		return "", ""
	}

	return parsed.Host, path
}
