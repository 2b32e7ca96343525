package trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Partitions(t *testing.T) {
	records := []Record{
		{Health: Good}, {Health: Good}, {Health: Fair},
		{Health: Poor}, {Health: "Dead"}, {Health: "Stump"},
	}
	s := Summarize(records)
	assert.Equal(t, Summary{Good: 2, Fair: 1, Poor: 1, Unknown: 2}, s)
	assert.Equal(t, len(records), s.Total())
}

func TestSummaryLines(t *testing.T) {
	lines := Summary{Good: 3, Fair: 2, Poor: 1}.Lines()
	assert.Equal(t, "Tree Summary", lines[0])
	assert.Equal(t, "Total Trees: 6", lines[1])
	assert.Equal(t, "Unknown: 0", lines[5])
}

func drawSample(records []Record, n int) SampleSet {
	s := newSampler(n, NewRand(4))
	for _, r := range records {
		s.offer(r)
	}
	return s.result()
}

func TestSampler(t *testing.T) {
	records := make([]Record, 50)
	for i := range records {
		records[i] = Record{ID: i + 1, Health: Good}
	}
	s := drawSample(records, 10)
	assert.Len(t, s, 10)

	seen := map[int]bool{}
	for _, r := range s {
		seen[r.ID] = true
	}
	assert.Len(t, seen, 10)

	all := drawSample(records, 100)
	assert.Len(t, all, 50)
	assert.ElementsMatch(t, records, []Record(all))
}
