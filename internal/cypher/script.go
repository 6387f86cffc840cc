package cypher

import (
	"os"
	"strings"
	"time"
)

const commentMarker = "//"

// Script is the append-only line buffer the generators write into. One
// Script accumulates the whole run, across every source, in call order.
type Script struct {
	lines []string
}

func NewScript() *Script { return &Script{} }

func (s *Script) Append(lines ...string) {
	s.lines = append(s.lines, lines...)
}

func (s *Script) Lines() []string { return s.lines }

func (s *Script) LineCount() int { return len(s.lines) }

// Render produces the full artifact text: the fixed file header banner with
// the generation timestamp, then every accumulated line.
func (s *Script) Render(generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("// ========================================\n")
	b.WriteString("// COMPLETE GRAPH DATABASE IMPORT\n")
	b.WriteString("// Generated: " + generatedAt.Format(time.RFC3339Nano) + "\n")
	b.WriteString("// ========================================\n\n")
	b.WriteString(strings.Join(s.lines, "\n"))
	return b.String()
}

// WriteFile persists the rendered artifact as UTF-8 text and returns its
// size in whole kilobytes.
func (s *Script) WriteFile(path string, generatedAt time.Time) (int64, error) {
	data := []byte(s.Render(generatedAt))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)) / 1024, nil
}
