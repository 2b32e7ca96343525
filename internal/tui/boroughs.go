package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"treemap/internal/interact"
	"treemap/internal/trees"
)

type boroughItem struct {
	value string
	count int
}

func (b boroughItem) Title() string {
	if b.count > 0 {
		return fmt.Sprintf("%s (%d)", interact.Label(b.value), b.count)
	}
	return interact.Label(b.value)
}

func (b boroughItem) Description() string { return "" }
func (b boroughItem) FilterValue() string { return b.value }

func newBoroughList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	l := list.New(boroughItems(nil), d, 0, 0)
	l.Title = "Borough"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func boroughItems(counts map[string]int) []list.Item {
	items := make([]list.Item, 0, len(interact.Boroughs))
	for _, b := range interact.Boroughs {
		items = append(items, boroughItem{value: b, count: counts[b]})
	}
	return items
}

// selectBorough moves the cursor onto borough.
func selectBorough(l *list.Model, borough string) {
	for i, it := range l.Items() {
		if it.(boroughItem).value == borough {
			l.Select(i)
			return
		}
	}
}

// boroughCounts counts sampled trees per borough choice.
func boroughCounts(sample trees.SampleSet) map[string]int {
	counts := map[string]int{interact.AllBoroughs: len(sample)}
	for _, r := range sample {
		counts[r.Borough]++
	}
	return counts
}
