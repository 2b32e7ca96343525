package trees

import "fmt"

// Summary counts sampled trees per health category.
type Summary struct {
	Good    int `json:"good"`
	Fair    int `json:"fair"`
	Poor    int `json:"poor"`
	Unknown int `json:"unknown"`
}

// Summarize partitions records by health category.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Health.Category() {
		case Good:
			s.Good++
		case Fair:
			s.Fair++
		case Poor:
			s.Poor++
		default:
			s.Unknown++
		}
	}
	return s
}

// Total is the number of records counted.
func (s Summary) Total() int {
	return s.Good + s.Fair + s.Poor + s.Unknown
}

// Lines renders the summary panel text.
func (s Summary) Lines() []string {
	return []string{
		"Tree Summary",
		fmt.Sprintf("Total Trees: %d", s.Total()),
		fmt.Sprintf("Good: %d", s.Good),
		fmt.Sprintf("Fair: %d", s.Fair),
		fmt.Sprintf("Poor: %d", s.Poor),
		fmt.Sprintf("Unknown: %d", s.Unknown),
	}
}
