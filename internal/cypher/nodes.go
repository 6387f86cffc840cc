package cypher

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Labels is the table-name to node-label snapshot loaded from the control
// store at the start of a run.
type Labels map[string]string

// For resolves the node label for a table. Unmapped tables fall back to the
// table name with its first letter upper-cased and the rest unchanged, so a
// generated label is never empty.
func (m Labels) For(table string) string {
	if label, ok := m[table]; ok && label != "" {
		return label
	}
	return capitalize(table)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NodeBatch is one table's worth of extracted rows, ready for node
// generation. Columns is the included list after exclusions, in ordinal
// order; PrimaryKey is empty when the table has none.
type NodeBatch struct {
	Source      string
	Table       string
	Label       string
	Columns     []string
	PrimaryKey  string
	Rows        []Row
	GeneratedAt time.Time
}

// GenerateNodes appends the table banner, the idempotent uniqueness
// constraint (when a primary key is among the included columns) and one
// CREATE statement per row. Rows where every included column is null are
// dropped: a node with no properties is indistinguishable from any other
// and carries nothing worth migrating. Returns the number of node
// statements emitted.
func GenerateNodes(out *Script, b NodeBatch) int {
	out.Append(
		"// ============================================",
		fmt.Sprintf("// Source: %s", b.Source),
		fmt.Sprintf("// Table: %s", b.Table),
		fmt.Sprintf("// Node Label: %s", b.Label),
		fmt.Sprintf("// Rows: %d", len(b.Rows)),
		fmt.Sprintf("// Generated: %s", b.GeneratedAt.Format(time.RFC3339Nano)),
		"// ============================================",
		"",
	)

	if b.PrimaryKey != "" && contains(b.Columns, b.PrimaryKey) {
		constraintName := fmt.Sprintf("constraint_%s_%s", b.Table, b.PrimaryKey)
		out.Append(
			fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE;",
				constraintName, b.Label, b.PrimaryKey),
			"",
		)
	}

	created := 0
	for _, row := range b.Rows {
		properties := make([]string, 0, len(b.Columns))
		for _, col := range b.Columns {
			v, ok := row[col]
			if !ok || v.IsNull() {
				continue
			}
			properties = append(properties, fmt.Sprintf("%s: %s", col, v.Encode()))
		}
		if len(properties) == 0 {
			continue
		}
		out.Append(fmt.Sprintf("CREATE (:%s {%s});", b.Label, strings.Join(properties, ", ")))
		created++
	}

	out.Append("")
	return created
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
