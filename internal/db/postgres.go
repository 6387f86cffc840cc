package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/graphbridge/internal/app"
	"github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

// NewControlDB connects to the migration control store and migrates its
// tables. A failure here aborts the whole run; nothing downstream can work
// without the control store.
func NewControlDB(cfg app.ControlDBConfig, log *logger.Logger) (*gorm.DB, error) {
	log.Info("Connecting to control database...", "host", cfg.Host, "name", cfg.Name)
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: connect to control database: %w", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}
	log.Info("Connected to control database", "name", cfg.Name)
	return gdb, nil
}

// AutoMigrate creates or updates the control-store tables. Split out so
// sqlite-backed tests can reuse it.
func AutoMigrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&domain.SourceDatabase{},
		&domain.NodeLabelMapping{},
		&domain.RelationshipMapping{},
		&domain.FieldExclusionRule{},
		&domain.RunLog{},
		&domain.TableLog{},
		&domain.CypherScript{},
	)
	if err != nil {
		return fmt.Errorf("db: auto migrate control tables: %w", err)
	}
	return nil
}
