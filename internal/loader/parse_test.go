package loader

import (
	"strings"
	"testing"
)

func TestSplitStatementsMultiLine(t *testing.T) {
	script := `// ============================================
// Relationships for: S1
// ============================================

MATCH (p:Person), (t:Tag)
// interleaved comment, structurally insignificant
WHERE p.id = t.person_id
CREATE (p)-[:TAGGED]->(t);
`
	statements, err := SplitStatements(strings.NewReader(script))
	if err != nil {
		t.Fatalf("SplitStatements: %v", err)
	}
	if len(statements) != 1 {
		t.Fatalf("want 1 statement, got %d: %v", len(statements), statements)
	}
	want := "MATCH (p:Person), (t:Tag) WHERE p.id = t.person_id CREATE (p)-[:TAGGED]->(t);"
	if statements[0] != want {
		t.Fatalf("want=%q got=%q", want, statements[0])
	}
}

func TestSplitStatementsMany(t *testing.T) {
	script := `// header
CREATE (:A {x: 1});

CREATE (:A {x: 2});
MATCH (a:A), (b:B)
WHERE a.x = b.x
CREATE (a)-[:R]->(b);
// trailing comment
CREATE (:A {x: 3});
`
	statements, err := SplitStatements(strings.NewReader(script))
	if err != nil {
		t.Fatalf("SplitStatements: %v", err)
	}
	if len(statements) != 4 {
		t.Fatalf("want 4 statements, got %d: %v", len(statements), statements)
	}
	if statements[1] != "CREATE (:A {x: 2});" {
		t.Fatalf("statement 2: got %q", statements[1])
	}
	if !strings.HasPrefix(statements[2], "MATCH (a:A), (b:B) WHERE") {
		t.Fatalf("statement 3 must join its lines: got %q", statements[2])
	}
}

func TestSplitStatementsEmptyInput(t *testing.T) {
	statements, err := SplitStatements(strings.NewReader("// only comments\n\n"))
	if err != nil {
		t.Fatalf("SplitStatements: %v", err)
	}
	if len(statements) != 0 {
		t.Fatalf("want 0 statements, got %d", len(statements))
	}
}

func TestSplitStatementsUnterminatedTailDropped(t *testing.T) {
	statements, err := SplitStatements(strings.NewReader("CREATE (:A {x: 1});\nMATCH (a:A)\n"))
	if err != nil {
		t.Fatalf("SplitStatements: %v", err)
	}
	// A trailing fragment with no terminator never becomes a statement.
	if len(statements) != 1 {
		t.Fatalf("want 1 statement, got %d: %v", len(statements), statements)
	}
}
