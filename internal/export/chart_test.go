package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/contribfang/internal/contrib"
	"github.com/Sumatoshi-tech/contribfang/internal/export"
	"github.com/Sumatoshi-tech/contribfang/pkg/mailmap"
)

func TestRenderPie(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := export.RenderPie(&buf, "Number of commits per committer", []export.PieSlice{
		{Label: "jane@example.com", Value: 12},
		{Label: "raj@example.com", Value: 3},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "raj@example.com")
	assert.Contains(t, html, "Number of commits per committer")
	assert.Contains(t, html, "{d}%", "slices carry a percentage annotation")
}

func TestSliceBuilders(t *testing.T) {
	t.Parallel()

	agg := contrib.Aggregate(testSet(t), mailmap.Map{})

	byCommits := export.CommitterCommitSlices(agg)
	require.Len(t, byCommits, 2)
	assert.Equal(t, "jane@example.com", byCommits[0].Label)
	assert.Equal(t, 1, byCommits[0].Value)

	byAdditions := export.CommitterAdditionSlices(agg)
	require.Len(t, byAdditions, 2)
	assert.Equal(t, "jane@example.com", byAdditions[0].Label, "largest value first")
	assert.Equal(t, 12, byAdditions[0].Value)

	domainCommits := export.DomainCommitSlices(agg)
	require.Len(t, domainCommits, 1)
	assert.Equal(t, "example.com", domainCommits[0].Label)
	assert.Equal(t, 2, domainCommits[0].Value)

	domainAdds := export.DomainAdditionSlices(agg)
	require.Len(t, domainAdds, 1)
	assert.Equal(t, 13, domainAdds[0].Value)
}
