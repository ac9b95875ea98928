package domain

// Category is the board lane an issue lands in. It is derived on every
// categorization and never stored on the issue.
type Category string

const (
	CategoryTodo       Category = "todo"
	CategoryInProgress Category = "inprogress"
	CategoryDone       Category = "done"
)

// labelDone moves an open issue straight to Done.
const labelDone = "done"

// inProgressLabels are the label names that mark an open issue as in progress.
var inProgressLabels = []string{"in-progress", "inprogress", "progress"}

// Column describes how a category is presented.
type Column struct {
	Category Category
	Title    string
	// StatLabel is the caption used by the summary counters.
	StatLabel string
	Icon      string
}

// Columns lists the board lanes in display order.
var Columns = []Column{
	{Category: CategoryTodo, Title: "To Do", StatLabel: "To Do", Icon: "📋"},
	{Category: CategoryInProgress, Title: "In Progress", StatLabel: "In Progress", Icon: "⚡"},
	{Category: CategoryDone, Title: "Done", StatLabel: "Completed", Icon: "✅"},
}

// Classify returns the lane for a single issue. The first matching rule wins:
// closed or labelled "done" goes to Done, an in-progress label goes to In
// Progress, anything else is To Do.
func Classify(issue Issue) Category {
	if issue.State.IsClosed() || issue.HasLabel(labelDone) {
		return CategoryDone
	}
	for _, name := range inProgressLabels {
		if issue.HasLabel(name) {
			return CategoryInProgress
		}
	}
	return CategoryTodo
}

// ColumnFor returns the presentation metadata for c.
func ColumnFor(c Category) (Column, bool) {
	for _, col := range Columns {
		if col.Category == c {
			return col, true
		}
	}
	return Column{}, false
}
