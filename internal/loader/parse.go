package loader

import (
	"bufio"
	"io"
	"strings"
)

// maxStatementLine bounds a single script line; node statements put a whole
// row on one line, so this is generous.
const maxStatementLine = 16 * 1024 * 1024

// SplitStatements turns script text into discrete statements: blank lines
// and `//` comment lines are dropped, remaining lines accumulate, and every
// line ending in `;` closes one statement, its lines joined by single
// spaces. A statement may span any number of lines but always ends at
// exactly one terminating `;`.
//
// A `;` inside a quoted literal would close a statement early. The
// generators never produce one (semicolons are not escaped and literals are
// single-line), so the simple scan is kept rather than a quote-aware one.
func SplitStatements(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStatementLine)

	var statements []string
	var current []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		current = append(current, line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.Join(current, " "))
			current = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return statements, nil
}

const commentMarker = "//"
