package etl

// FilterColumns drops excluded columns from an ordered column list. The
// exclusion set is evaluated once per source pass and applied uniformly to
// every row of the table, so an excluded column can never surface as a node
// property.
func FilterColumns(columns []string, excluded map[string]struct{}) []string {
	if len(excluded) == 0 {
		out := make([]string, len(columns))
		copy(out, columns)
		return out
	}
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, drop := excluded[col]; drop {
			continue
		}
		out = append(out, col)
	}
	return out
}
