package export

import (
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
)

// summaryLimit caps how many committers the terminal summary shows.
const summaryLimit = 15

// WriteSummary renders a top-committers table to w, ordered by commit
// count descending, with overall totals in the footer.
func WriteSummary(w io.Writer, agg *contrib.Aggregates, totalCommits int) {
	committers := make([]*contrib.Committer, 0, len(agg.Committers))
	for _, committer := range agg.Committers {
		committers = append(committers, committer)
	}

	sort.Slice(committers, func(i, j int) bool {
		if committers[i].NumCommits != committers[j].NumCommits {
			return committers[i].NumCommits > committers[j].NumCommits
		}

		return committers[i].Email < committers[j].Email
	})

	if len(committers) > summaryLimit {
		committers = committers[:summaryLimit]
	}

	var totalAdditions, totalDeletions int
	for _, bucket := range agg.Domains {
		totalAdditions += bucket.NumAdditions
		totalDeletions += bucket.NumDeletions
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.AppendHeader(table.Row{"Name", "Email", "Domain", "Commits", "Added", "Removed"})

	for _, committer := range committers {
		writer.AppendRow(table.Row{
			committer.Name,
			committer.Email,
			committer.Domain,
			humanize.Comma(int64(committer.NumCommits)),
			humanize.Comma(int64(committer.NumAdditions)),
			humanize.Comma(int64(committer.NumDeletions)),
		})
	}

	writer.AppendFooter(table.Row{
		"Total", "", "",
		humanize.Comma(int64(totalCommits)),
		humanize.Comma(int64(totalAdditions)),
		humanize.Comma(int64(totalDeletions)),
	})

	writer.Render()
}
