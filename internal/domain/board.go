package domain

// Board holds the categorized issues of one fetch. Each lane keeps the order
// in which issues arrived (open issues first, then closed).
type Board struct {
	Todo       []Issue `json:"todo" yaml:"todo"`
	InProgress []Issue `json:"inprogress" yaml:"inprogress"`
	Done       []Issue `json:"done" yaml:"done"`
}

// Counts summarises a board for the header counters.
type Counts struct {
	Todo       int `json:"todo" yaml:"todo"`
	InProgress int `json:"inprogress" yaml:"inprogress"`
	Done       int `json:"done" yaml:"done"`
}

// Total returns the number of issues across all lanes.
func (c Counts) Total() int {
	return c.Todo + c.InProgress + c.Done
}

// NewBoard returns a board with empty, non-nil lanes.
func NewBoard() Board {
	return Board{
		Todo:       []Issue{},
		InProgress: []Issue{},
		Done:       []Issue{},
	}
}

// Categorize splits issues into lanes. It is pure: the input is not modified
// and no deduplication happens.
func Categorize(issues []Issue) Board {
	b := NewBoard()
	for _, issue := range issues {
		switch Classify(issue) {
		case CategoryDone:
			b.Done = append(b.Done, issue)
		case CategoryInProgress:
			b.InProgress = append(b.InProgress, issue)
		default:
			b.Todo = append(b.Todo, issue)
		}
	}
	return b
}

// Lane returns the issues for c.
func (b Board) Lane(c Category) []Issue {
	switch c {
	case CategoryTodo:
		return b.Todo
	case CategoryInProgress:
		return b.InProgress
	case CategoryDone:
		return b.Done
	default:
		return nil
	}
}

// Counts returns the lane sizes.
func (b Board) Counts() Counts {
	return Counts{
		Todo:       len(b.Todo),
		InProgress: len(b.InProgress),
		Done:       len(b.Done),
	}
}
