package interact

import "treemap/internal/trees"

// AllBoroughs selects the whole sample.
const AllBoroughs = "All"

// Boroughs are the filter choices, in display order.
var Boroughs = []string{AllBoroughs, "Manhattan", "Brooklyn", "Queens", "Bronx", "Staten Island"}

// FilterState is the current borough selection.
type FilterState struct {
	Borough string
}

// NewFilterState starts on All.
func NewFilterState() FilterState {
	return FilterState{Borough: AllBoroughs}
}

// Label is the dropdown text for a choice.
func Label(borough string) string {
	if borough == AllBoroughs {
		return "All Boroughs"
	}
	return borough
}

// Visible applies the state to a sample.
func (f FilterState) Visible(sample trees.SampleSet) []trees.Record {
	return VisibleSubset(sample, f.Borough)
}

// VisibleSubset returns the full sample for All (or an empty selection), otherwise
// the records whose borough equals the selection exactly.
func VisibleSubset(sample trees.SampleSet, borough string) []trees.Record {
	if borough == AllBoroughs || borough == "" {
		return []trees.Record(sample)
	}
	out := make([]trees.Record, 0, len(sample)/4)
	for _, r := range sample {
		if r.Borough == borough {
			out = append(out, r)
		}
	}
	return out
}
