package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/graphbridge/internal/pkg/logger"
	"github.com/yungbote/graphbridge/internal/platform/envutil"
)

// ControlDBConfig holds the connection settings for the migration control
// store (the database owning mappings, rules and run logs).
type ControlDBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

func (c ControlDBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type Config struct {
	ControlDB ControlDBConfig

	// OutputDir is where generated Cypher scripts are written.
	OutputDir string
	// LoadAfterGenerate runs the load phase right after generation.
	LoadAfterGenerate bool
	// ClearBeforeLoad wipes all relationships and nodes before replay.
	ClearBeforeLoad bool
	// ProgressEvery is the statement cadence for load progress logging.
	ProgressEvery int
}

// fileConfig is the optional YAML overlay (GRAPHBRIDGE_CONFIG). Environment
// variables win for the control store; the overlay wins for run options.
type fileConfig struct {
	OutputDir         *string `yaml:"output_dir"`
	LoadAfterGenerate *bool   `yaml:"load_after_generate"`
	ClearBeforeLoad   *bool   `yaml:"clear_before_load"`
	ProgressEvery     *int    `yaml:"progress_every"`
}

// LoadConfig resolves the full configuration. Missing required settings are
// reported together and before any connection is attempted.
func LoadConfig(log *logger.Logger) (Config, error) {
	var missing []string
	need := func(name string) string {
		v, err := envutil.Require(name)
		if err != nil {
			missing = append(missing, name)
		}
		return v
	}

	cfg := Config{
		ControlDB: ControlDBConfig{
			Host:     need("ETL_DB_HOST"),
			Port:     envutil.Int("ETL_DB_PORT", 5432),
			Name:     need("ETL_DB_NAME"),
			User:     need("ETL_DB_USER"),
			Password: need("ETL_DB_PASSWORD"),
		},
		OutputDir:         envutil.Str("ETL_OUTPUT_DIR", "."),
		LoadAfterGenerate: envutil.Bool("ETL_LOAD_AFTER_GENERATE", true),
		ClearBeforeLoad:   envutil.Bool("ETL_CLEAR_BEFORE_LOAD", true),
		ProgressEvery:     envutil.Int("ETL_PROGRESS_EVERY", 100),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("app: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if path := strings.TrimSpace(os.Getenv("GRAPHBRIDGE_CONFIG")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
		log.Info("Applied config file overlay", "path", path)
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 100
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("app: read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("app: parse config file: %w", err)
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = *fc.OutputDir
	}
	if fc.LoadAfterGenerate != nil {
		cfg.LoadAfterGenerate = *fc.LoadAfterGenerate
	}
	if fc.ClearBeforeLoad != nil {
		cfg.ClearBeforeLoad = *fc.ClearBeforeLoad
	}
	if fc.ProgressEvery != nil {
		cfg.ProgressEvery = *fc.ProgressEvery
	}
	return nil
}
