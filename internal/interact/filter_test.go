package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treemap/internal/trees"
)

func sample() trees.SampleSet {
	return trees.SampleSet{
		{ID: 1, Borough: "Manhattan", Health: trees.Good},
		{ID: 2, Borough: "Brooklyn", Health: trees.Poor},
		{ID: 3, Borough: "Brooklyn", Health: trees.Fair},
		{ID: 4, Borough: "brooklyn", Health: trees.Fair},
		{ID: 5, Borough: "", Health: trees.Good},
	}
}

func ids(rs []trees.Record) []int {
	out := make([]int, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestVisibleSubset_All(t *testing.T) {
	s := sample()
	assert.Equal(t, []trees.Record(s), VisibleSubset(s, AllBoroughs))
	assert.Equal(t, []trees.Record(s), NewFilterState().Visible(s))
}

func TestVisibleSubset_ExactMatch(t *testing.T) {
	s := sample()
	assert.Equal(t, []int{2, 3}, ids(VisibleSubset(s, "Brooklyn")))
	assert.Equal(t, []int{1}, ids(VisibleSubset(s, "Manhattan")))
	assert.Empty(t, VisibleSubset(s, "Staten Island"))
	assert.Equal(t, []int{4}, ids(FilterState{Borough: "brooklyn"}.Visible(s)))
}

func TestVisibleSubset_DoesNotMutateSample(t *testing.T) {
	s := sample()
	_ = VisibleSubset(s, "Brooklyn")
	assert.Equal(t, sample(), s)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "All Boroughs", Label(AllBoroughs))
	assert.Equal(t, "Queens", Label("Queens"))
	assert.Equal(t, AllBoroughs, Boroughs[0])
	assert.Len(t, Boroughs, 6)
}
