package cypher

import (
	"strings"
	"testing"
)

func TestGenerateRelationshipsJunction(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", []Rule{{
		Type:          "LIKES",
		FromLabel:     "Person",
		ToLabel:       "Tag",
		ToAlias:       "tag",
		JoinCondition: "p.id = l.person_id AND l.tag_id = t.id",
		JunctionTable: "likes",
		JunctionLabel: "Like",
	}}, testTime)

	text := strings.Join(out.Lines(), "\n")
	if !strings.Contains(text, "MATCH (p:Person), (link:Like), (tag:Tag)") {
		t.Fatalf("junction rule must match three entities:\n%s", text)
	}
	if !strings.Contains(text, "WHERE p.id = l.person_id AND l.tag_id = t.id") {
		t.Fatalf("join condition must be emitted verbatim:\n%s", text)
	}
	if !strings.Contains(text, "CREATE (p)-[:LIKES]->(tag);") {
		t.Fatalf("edge must connect from-entity to to-entity:\n%s", text)
	}
	if strings.Contains(text, "(link)-[") || strings.Contains(text, "]->(link)") {
		t.Fatalf("junction entity must never be an edge endpoint:\n%s", text)
	}
}

func TestGenerateRelationshipsDirect(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", []Rule{{
		Type:          "OWNS",
		FromLabel:     "Person",
		ToLabel:       "Account",
		JoinCondition: "p.id = a.person_id",
		Description:   "Each account belongs to one person",
	}}, testTime)

	text := strings.Join(out.Lines(), "\n")
	if !strings.Contains(text, "MATCH (p:Person), (a:Account)") {
		t.Fatalf("direct rule must match two entities:\n%s", text)
	}
	if strings.Contains(text, "link:") {
		t.Fatalf("direct rule must not name a junction entity:\n%s", text)
	}
	if !strings.Contains(text, "// Each account belongs to one person") {
		t.Fatalf("description must precede the match:\n%s", text)
	}
	if !strings.Contains(text, "CREATE (p)-[:OWNS]->(a);") {
		t.Fatalf("missing create statement:\n%s", text)
	}
}

func TestGenerateRelationshipsPartialJunctionDegradesToDirect(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", []Rule{{
		Type:          "USES",
		FromLabel:     "Person",
		ToLabel:       "Device",
		JoinCondition: "p.id = d.person_id",
		JunctionTable: "person_devices",
	}}, testTime)
	text := strings.Join(out.Lines(), "\n")
	if !strings.Contains(text, "MATCH (p:Person), (d:Device)") {
		t.Fatalf("junction table without label must use the direct pattern:\n%s", text)
	}
}

func TestGenerateRelationshipsAliasOverrides(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", []Rule{{
		Type:          "PAID_WITH",
		FromLabel:     "Person",
		ToLabel:       "PaymentMethod",
		ToAlias:       "pm",
		JoinCondition: "p.id = pm.person_id",
	}}, testTime)
	text := strings.Join(out.Lines(), "\n")
	if !strings.Contains(text, "MATCH (p:Person), (pm:PaymentMethod)") {
		t.Fatalf("alias override must be honored:\n%s", text)
	}
	if !strings.Contains(text, "CREATE (p)-[:PAID_WITH]->(pm);") {
		t.Fatalf("create must use the override alias:\n%s", text)
	}
}

func TestGenerateRelationshipsEmptyRules(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", nil, testTime)
	if out.LineCount() != 0 {
		t.Fatalf("no rules must append nothing, got %d lines", out.LineCount())
	}
}

func TestGenerateRelationshipsKeepsRuleOrder(t *testing.T) {
	out := NewScript()
	GenerateRelationships(out, "S1", []Rule{
		{Type: "FIRST", FromLabel: "A", ToLabel: "B", JoinCondition: "a.x = b.x"},
		{Type: "SECOND", FromLabel: "C", ToLabel: "D", JoinCondition: "c.x = d.x"},
	}, testTime)
	text := strings.Join(out.Lines(), "\n")
	if strings.Index(text, "FIRST") > strings.Index(text, "SECOND") {
		t.Fatalf("rules must be emitted in the given order:\n%s", text)
	}
}

func TestDefaultAlias(t *testing.T) {
	if got := DefaultAlias("Person"); got != "p" {
		t.Fatalf("want=p got=%s", got)
	}
	if got := DefaultAlias("Tag"); got != "t" {
		t.Fatalf("want=t got=%s", got)
	}
}
