package cypher

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// junctionAlias names the middle entity of a three-entity match pattern.
const junctionAlias = "link"

// Rule is one declarative relationship definition, already scoped to a
// single source and ordered by its execution order. The join condition is
// authored by the metadata owner and emitted verbatim.
type Rule struct {
	Type          string
	FromLabel     string
	ToLabel       string
	FromAlias     string
	ToAlias       string
	JoinCondition string
	JunctionTable string
	JunctionLabel string
	Description   string
}

func (r Rule) hasJunction() bool {
	return r.JunctionTable != "" && r.JunctionLabel != ""
}

// DefaultAlias derives the match variable for a label: its lowercased first
// letter. Rules carry explicit alias overrides when single-letter defaults
// would collide.
func DefaultAlias(label string) string {
	if label == "" {
		return label
	}
	runes := []rune(label)
	return string(unicode.ToLower(runes[0]))
}

func aliasFor(label, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return DefaultAlias(label)
}

// GenerateRelationships appends match/create pairs for every rule, in the
// given order. Rules with both junction fields set match three entities;
// either way the created edge connects the from-entity to the to-entity.
// A source with no rules appends nothing.
func GenerateRelationships(out *Script, source string, rules []Rule, generatedAt time.Time) {
	if len(rules) == 0 {
		return
	}

	out.Append(
		"// ============================================",
		fmt.Sprintf("// Relationships for: %s", source),
		fmt.Sprintf("// Generated: %s", generatedAt.Format(time.RFC3339Nano)),
		"// ============================================",
		"",
	)

	for _, rule := range rules {
		if rule.Description != "" {
			out.Append(fmt.Sprintf("// %s", rule.Description))
		}

		fromVar := aliasFor(rule.FromLabel, rule.FromAlias)
		toVar := aliasFor(rule.ToLabel, rule.ToAlias)

		if rule.hasJunction() {
			out.Append(fmt.Sprintf("MATCH (%s:%s), (%s:%s), (%s:%s)",
				fromVar, rule.FromLabel,
				junctionAlias, rule.JunctionLabel,
				toVar, rule.ToLabel))
		} else {
			out.Append(fmt.Sprintf("MATCH (%s:%s), (%s:%s)",
				fromVar, rule.FromLabel, toVar, rule.ToLabel))
		}

		out.Append(fmt.Sprintf("WHERE %s", rule.JoinCondition))
		out.Append(fmt.Sprintf("CREATE (%s)-[:%s]->(%s);", fromVar, rule.Type, toVar))
		out.Append("")
	}
}
