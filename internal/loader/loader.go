// Package loader replays a generated Cypher script against the graph store,
// one statement at a time, isolating per-statement failures.
package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/graphbridge/internal/data/repos"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
	"github.com/yungbote/graphbridge/internal/platform/neo4jdb"
)

// StatementRunner executes one statement. The production runner wraps a
// Neo4j session; tests substitute a fake.
type StatementRunner interface {
	Run(ctx context.Context, statement string) error
}

type sessionRunner struct {
	session neo4j.SessionWithContext
}

func (r sessionRunner) Run(ctx context.Context, statement string) error {
	res, err := r.session.Run(ctx, statement, nil)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// Result aggregates a replay. The load counts as failed when any statement
// failed, but every statement is always attempted regardless.
type Result struct {
	Succeeded int
	Failed    int
	Total     int
}

func (r Result) OK() bool { return r.Failed == 0 }

type Options struct {
	// ClearFirst wipes all relationships then all nodes before replay.
	ClearFirst bool
	// ProgressEvery is the statement cadence for progress logging
	// (default 100).
	ProgressEvery int
}

type Loader struct {
	client  *neo4jdb.Client
	scripts repos.CypherScriptRepo
	log     *logger.Logger
}

func New(client *neo4jdb.Client, scripts repos.CypherScriptRepo, baseLog *logger.Logger) *Loader {
	return &Loader{client: client, scripts: scripts, log: baseLog.With("component", "Loader")}
}

// Load replays the most recently updated registered script. Statements run
// strictly in order within one session; each failure is counted and skipped.
func (l *Loader) Load(ctx context.Context, opts Options) (Result, error) {
	script, err := l.scripts.Latest(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("loader: resolve latest script: %w", err)
	}
	if script == nil {
		return Result{}, fmt.Errorf("loader: no script registered")
	}
	l.log.Info("Loading script", "script", script.ScriptName, "path", script.FilePath, "size_kb", script.FileSizeKB)

	f, err := os.Open(script.FilePath)
	if err != nil {
		return Result{}, fmt.Errorf("loader: open script file: %w", err)
	}
	defer f.Close()

	statements, err := SplitStatements(f)
	if err != nil {
		return Result{}, fmt.Errorf("loader: parse script: %w", err)
	}
	if len(statements) == 0 {
		return Result{}, fmt.Errorf("loader: no statements to execute")
	}
	l.log.Info("Parsed statements", "count", len(statements))

	session := l.client.WriteSession(ctx)
	defer session.Close(ctx)
	runner := sessionRunner{session: session}

	if opts.ClearFirst {
		l.log.Warn("Clearing graph database before load")
		wipe(ctx, runner, l.log)
	}

	result := ExecuteStatements(ctx, runner, statements, opts.ProgressEvery, l.log)

	if err := l.scripts.TouchLastRun(ctx, nil, script.ID); err != nil {
		l.log.Error("Failed to update script run time", "error", err)
	}

	l.log.Info("Load complete", "succeeded", result.Succeeded, "failed", result.Failed, "total", result.Total)
	return result, nil
}

// wipe removes relationships first, then nodes. Failures are logged and the
// load proceeds; replay statements will surface any real connectivity loss.
func wipe(ctx context.Context, runner StatementRunner, log *logger.Logger) {
	for _, stmt := range []string{
		"MATCH ()-[r]->() DELETE r",
		"MATCH (n) DELETE n",
	} {
		if err := runner.Run(ctx, stmt); err != nil {
			log.Error("Failed to clear graph database", "statement", stmt, "error", err)
		}
	}
}

// ExecuteStatements runs every statement in order, isolating failures to
// the statement that raised them. Progress is logged every progressEvery
// statements (default 100).
func ExecuteStatements(ctx context.Context, runner StatementRunner, statements []string, progressEvery int, log *logger.Logger) Result {
	if progressEvery <= 0 {
		progressEvery = 100
	}
	result := Result{Total: len(statements)}
	for i, stmt := range statements {
		if err := runner.Run(ctx, stmt); err != nil {
			result.Failed++
			log.Error("Statement failed", "index", i+1, "error", truncate(err.Error(), 100), "statement", truncate(stmt, 100))
		} else {
			result.Succeeded++
		}
		if (i+1)%progressEvery == 0 {
			log.Info("Progress", "executed", i+1, "total", len(statements))
		}
	}
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
