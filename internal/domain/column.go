package domain

// Column is a workflow column on the board.
type Column string

const (
	ColumnToDo       Column = "To Do"
	ColumnInProgress Column = "In Progress"
	ColumnDone       Column = "Done"
)

// Columns returns the board columns in display order.
func Columns() []Column {
	return []Column{ColumnToDo, ColumnInProgress, ColumnDone}
}

// ParseColumn converts raw text to a Column, reporting whether it names a board column.
func ParseColumn(s string) (Column, bool) {
	c := Column(s)
	return c, c.IsValid()
}

// IsValid reports whether the column is one of the three board columns.
func (c Column) IsValid() bool {
	switch c {
	case ColumnToDo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

// IsActivity reports whether a task in this column counts as worked on.
func (c Column) IsActivity() bool {
	return c == ColumnInProgress || c == ColumnDone
}

// String returns the column name for display purposes.
func (c Column) String() string {
	return string(c)
}
