package negs

// column binds a column name to the accessor of a decoded record.
type column[T any] struct {
	name  string
	value func(T) any
}

func columnNames[T any](cols ...[]column[T]) []string {
	var out []string
	for _, set := range cols {
		for _, c := range set {
			out = append(out, c.name)
		}
	}
	return out
}

func columnValues[T any](v T, cols ...[]column[T]) []any {
	var out []any
	for _, set := range cols {
		for _, c := range set {
			out = append(out, c.value(v))
		}
	}
	return out
}

// Table is the tabular view of one record kind: ordered column names and
// one row of values per record.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}
