package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/graphbridge/internal/app"
	"github.com/yungbote/graphbridge/internal/data/repos"
	"github.com/yungbote/graphbridge/internal/db"
	"github.com/yungbote/graphbridge/internal/etl"
	"github.com/yungbote/graphbridge/internal/loader"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
	"github.com/yungbote/graphbridge/internal/platform/neo4jdb"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log); err != nil {
		log.Error("Migration failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	cfg, err := app.LoadConfig(log)
	if err != nil {
		return err
	}

	gdb, err := db.NewControlDB(cfg.ControlDB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, derr := gdb.DB(); derr == nil {
			_ = sqlDB.Close()
		}
	}()

	sourcesRepo := repos.NewSourceDatabaseRepo(gdb, log)
	labelsRepo := repos.NewNodeLabelMappingRepo(gdb, log)
	relationshipsRepo := repos.NewRelationshipMappingRepo(gdb, log)
	exclusionsRepo := repos.NewFieldExclusionRuleRepo(gdb, log)
	runsRepo := repos.NewRunLogRepo(gdb, log)
	tablesRepo := repos.NewTableLogRepo(gdb, log)
	scriptsRepo := repos.NewCypherScriptRepo(gdb, log)

	pipeline := etl.NewPipeline(etl.Deps{
		Log:           log,
		Sources:       sourcesRepo,
		Labels:        labelsRepo,
		Relationships: relationshipsRepo,
		Exclusions:    exclusionsRepo,
		Runs:          runsRepo,
		Tables:        tablesRepo,
		Scripts:       scriptsRepo,
		OutputDir:     cfg.OutputDir,
	})
	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	if !cfg.LoadAfterGenerate {
		log.Info("Load phase disabled, generation only")
		return nil
	}

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	result, err := loader.New(client, scriptsRepo, log).Load(ctx, loader.Options{
		ClearFirst:    cfg.ClearBeforeLoad,
		ProgressEvery: cfg.ProgressEvery,
	})
	if err != nil {
		return err
	}
	if !result.OK() {
		// Per-statement failures are best-effort losses, not a failed run.
		log.Warn("Some statements failed during load", "failed", result.Failed, "total", result.Total)
	}
	return nil
}
