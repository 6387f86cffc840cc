// Package etl runs the extract+generate phase: it walks every active source
// sequentially, turns rows into node statements and rules into relationship
// statements, and persists the combined script.
package etl

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yungbote/graphbridge/internal/cypher"
	"github.com/yungbote/graphbridge/internal/data/repos"
	types "github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
	"github.com/yungbote/graphbridge/internal/source"
)

// Connector opens a source database. Injectable so tests can fake the
// source side without a live Postgres.
type Connector func(ctx context.Context, src *types.SourceDatabase, log *logger.Logger) (source.Conn, error)

type Deps struct {
	Log *logger.Logger

	Sources       repos.SourceDatabaseRepo
	Labels        repos.NodeLabelMappingRepo
	Relationships repos.RelationshipMappingRepo
	Exclusions    repos.FieldExclusionRuleRepo
	Runs          repos.RunLogRepo
	Tables        repos.TableLogRepo
	Scripts       repos.CypherScriptRepo

	// Connect defaults to source.Connect.
	Connect Connector
	// OutputDir is where the script artifact is written.
	OutputDir string
	// Now defaults to time.Now; pinned in tests.
	Now func() time.Time
}

type Pipeline struct {
	deps Deps
	log  *logger.Logger
}

func NewPipeline(deps Deps) *Pipeline {
	if deps.Connect == nil {
		deps.Connect = source.Connect
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.OutputDir == "" {
		deps.OutputDir = "."
	}
	return &Pipeline{deps: deps, log: deps.Log.With("component", "Pipeline")}
}

// Run executes the whole generation phase. Per-table and per-source
// failures are recorded and skipped; only configuration, control-store or
// artifact-level failures propagate, and those flip the run status to
// failed. The returned error mirrors that status.
func (p *Pipeline) Run(ctx context.Context) error {
	labels, err := p.deps.Labels.ActiveLabels(ctx, nil)
	if err != nil {
		return fmt.Errorf("etl: load label mappings: %w", err)
	}
	p.log.Info("Loaded node label mappings", "count", len(labels))

	rules, err := p.deps.Relationships.ActiveBySource(ctx, nil)
	if err != nil {
		return fmt.Errorf("etl: load relationship mappings: %w", err)
	}

	run, err := p.deps.Runs.Start(ctx, nil)
	if err != nil {
		return fmt.Errorf("etl: start run log: %w", err)
	}
	p.log.Info("Started run", "run_id", run.ID)

	summary, err := p.execute(ctx, run, cypher.Labels(labels), rules)

	status := types.RunStatusCompleted
	if err != nil {
		status = types.RunStatusFailed
	}
	if cerr := p.deps.Runs.Complete(ctx, nil, run.ID, status, summary); cerr != nil {
		p.log.Error("Failed to complete run log", "run_id", run.ID, "error", cerr)
	}
	p.log.Info("Run finished", "run_id", run.ID, "status", status)
	return err
}

func (p *Pipeline) execute(ctx context.Context, run *types.RunLog, labels cypher.Labels, rules map[string][]*types.RelationshipMapping) (*types.RunSummary, error) {
	summary := &types.RunSummary{}
	generatedAt := p.deps.Now().UTC()
	script := cypher.NewScript()

	sources, err := p.deps.Sources.ListActive(ctx, nil)
	if err != nil {
		// Treated as an empty registry: the run completes with nothing to do.
		p.log.Error("Failed to list active sources", "error", err)
		sources = nil
	}
	if len(sources) == 0 {
		p.log.Warn("No active source databases found")
		return summary, nil
	}

	for _, src := range sources {
		if err := p.processSource(ctx, run, src, labels, rules[src.SourceName], script, summary); err != nil {
			// Source-scoped failure: skip this source, keep the run going.
			p.log.Error("Failed to process source", "source", src.SourceName, "error", err)
			continue
		}
		summary.SourcesProcessed++
	}

	scriptName := fmt.Sprintf("graph_output_%s.cypher", generatedAt.Format("20060102_150405"))
	path := filepath.Join(p.deps.OutputDir, scriptName)
	sizeKB, err := script.WriteFile(path, generatedAt)
	if err != nil {
		return summary, fmt.Errorf("etl: write script artifact: %w", err)
	}
	summary.ScriptPath = path

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := p.deps.Scripts.Upsert(ctx, nil, scriptName, abs, sizeKB); err != nil {
		p.log.Error("Failed to register script", "script", scriptName, "error", err)
	} else {
		p.log.Info("Registered script", "script", scriptName, "path", abs, "size_kb", sizeKB, "lines", script.LineCount())
	}
	return summary, nil
}

func (p *Pipeline) processSource(ctx context.Context, run *types.RunLog, src *types.SourceDatabase, labels cypher.Labels, srcRules []*types.RelationshipMapping, script *cypher.Script, summary *types.RunSummary) error {
	log := p.log.With("source", src.SourceName)
	log.Info("Processing source")

	conn, err := p.deps.Connect(ctx, src, p.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(ctx); cerr != nil {
			log.Warn("Failed to close source connection", "error", cerr)
		}
	}()

	if err := p.deps.Sources.TouchLastAccessed(ctx, nil, src.ID); err != nil {
		log.Warn("Failed to update last_accessed", "error", err)
	}

	exclusions, err := p.deps.Exclusions.ExcludedColumns(ctx, nil, src.ID)
	if err != nil {
		log.Error("Failed to load exclusion rules, continuing without", "error", err)
		exclusions = map[string]map[string]struct{}{}
	}

	tables, err := conn.Tables(ctx)
	if err != nil {
		log.Error("Failed to list tables", "error", err)
		tables = nil
	}
	log.Info("Found tables", "count", len(tables))

	script.Append(
		"",
		"// ========================================",
		fmt.Sprintf("// DATABASE: %s", src.SourceName),
		fmt.Sprintf("// Total tables: %d", len(tables)),
		"// ========================================",
		"",
	)

	for _, table := range tables {
		p.processTable(ctx, run, src, conn, table, labels, exclusions[table], script, summary)
	}

	if len(srcRules) == 0 {
		log.Info("No relationships defined for source")
		return nil
	}
	cypher.GenerateRelationships(script, src.SourceName, toRules(srcRules), p.deps.Now().UTC())
	log.Info("Generated relationships", "count", len(srcRules))
	return nil
}

// processTable isolates every failure to the table: the table log records
// the outcome and the source keeps going either way.
func (p *Pipeline) processTable(ctx context.Context, run *types.RunLog, src *types.SourceDatabase, conn source.Conn, table string, labels cypher.Labels, excluded map[string]struct{}, script *cypher.Script, summary *types.RunSummary) {
	log := p.log.With("source", src.SourceName, "table", table)
	log.Info("Processing table")

	tlog, err := p.deps.Tables.Start(ctx, nil, run.ID, src.ID, table)
	if err != nil {
		log.Error("Failed to create table log", "error", err)
	}

	finish := func(status string, rows int64, errMsg string) {
		if tlog == nil {
			return
		}
		if err := p.deps.Tables.Finish(ctx, nil, tlog.ID, status, rows, errMsg); err != nil {
			log.Error("Failed to update table log", "error", err)
		}
	}

	fail := func(msg string) {
		log.Error("Table failed", "error", msg)
		finish(types.TableStatusFailed, 0, msg)
		summary.TablesFailed++
	}

	columns, err := conn.Columns(ctx, table)
	if err != nil {
		fail(fmt.Sprintf("list columns: %v", err))
		return
	}
	included := FilterColumns(columns, excluded)
	if len(excluded) > 0 {
		log.Info("Applied column exclusions", "excluded", len(columns)-len(included))
	}
	if len(included) == 0 {
		fail("no columns available after exclusions")
		return
	}

	primaryKey, err := conn.PrimaryKey(ctx, table)
	if err != nil {
		// Constraint generation is skipped; rows still migrate.
		log.Warn("Failed to resolve primary key", "error", err)
		primaryKey = ""
	}

	rows, err := conn.Extract(ctx, table, included)
	if err != nil {
		fail(fmt.Sprintf("extract rows: %v", err))
		return
	}

	created := cypher.GenerateNodes(script, cypher.NodeBatch{
		Source:      src.SourceName,
		Table:       table,
		Label:       labels.For(table),
		Columns:     included,
		PrimaryKey:  primaryKey,
		Rows:        rows,
		GeneratedAt: p.deps.Now().UTC(),
	})

	finish(types.TableStatusCompleted, int64(len(rows)), "")
	summary.TablesCompleted++
	summary.RowsProcessed += int64(len(rows))
	log.Info("Completed table", "rows", len(rows), "statements", created)
}

func toRules(mappings []*types.RelationshipMapping) []cypher.Rule {
	out := make([]cypher.Rule, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, cypher.Rule{
			Type:          m.RelationshipType,
			FromLabel:     m.FromLabel,
			ToLabel:       m.ToLabel,
			FromAlias:     m.FromAlias,
			ToAlias:       m.ToAlias,
			JoinCondition: m.JoinCondition,
			JunctionTable: m.JunctionTable,
			JunctionLabel: m.JunctionLabel,
			Description:   m.Description,
		})
	}
	return out
}
