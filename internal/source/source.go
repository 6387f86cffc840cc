// Package source is the relational-source collaborator: catalog
// introspection and bulk row extraction over pgx.
package source

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yungbote/graphbridge/internal/cypher"
	"github.com/yungbote/graphbridge/internal/domain"
	"github.com/yungbote/graphbridge/internal/pkg/logger"
)

// Conn is what the generation pipeline needs from a connected source:
// base-table enumeration, ordered column enumeration, single-column primary
// key lookup and bulk extraction.
type Conn interface {
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]string, error)
	PrimaryKey(ctx context.Context, table string) (string, error)
	Extract(ctx context.Context, table string, columns []string) ([]cypher.Row, error)
	Close(ctx context.Context) error
}

type pgxConn struct {
	conn *pgx.Conn
	log  *logger.Logger
}

// Connect opens a source database registered in the control store.
func Connect(ctx context.Context, src *domain.SourceDatabase, baseLog *logger.Logger) (Conn, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		src.DBUser, src.DBPassword, src.DBHost, src.DBPort, src.DBName)
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("source: connect to %s: %w", src.SourceName, err)
	}
	return &pgxConn{
		conn: conn,
		log:  baseLog.With("source", src.SourceName),
	}, nil
}

func (c *pgxConn) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("source: list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("source: scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: list tables: %w", err)
	}
	return tables, nil
}

func (c *pgxConn) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("source: list columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("source: scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: list columns for %s: %w", table, err)
	}
	return columns, nil
}

// PrimaryKey returns the table's primary key column, or "" when it has
// none. Composite keys yield the lowest-numbered attribute.
func (c *pgxConn) PrimaryKey(ctx context.Context, table string) (string, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = $1::regclass AND i.indisprimary
		ORDER BY a.attnum`, table)
	if err != nil {
		return "", fmt.Errorf("source: primary key for %s: %w", table, err)
	}
	defer rows.Close()

	if rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("source: scan primary key: %w", err)
		}
		return name, nil
	}
	return "", rows.Err()
}

// Extract pulls every row for the included columns. Identifiers come from
// the source catalog itself, so they are interpolated unquoted the same way
// the catalog reported them.
func (c *pgxConn) Extract(ctx context.Context, table string, columns []string) ([]cypher.Row, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("source: extract from %s: no columns", table)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)
	rows, err := c.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: extract from %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []cypher.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("source: read row from %s: %w", table, err)
		}
		row := make(cypher.Row, len(fields))
		for i, f := range fields {
			row[string(f.Name)] = toValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: extract from %s: %w", table, err)
	}
	c.log.Debug("Extracted rows", "table", table, "rows", len(out))
	return out, nil
}

// toValue normalizes driver-specific scalars before the generic mapping:
// uuid columns arrive as [16]byte and pgtype wrappers (numeric, interval)
// expose their text form through driver.Valuer.
func toValue(v interface{}) cypher.Value {
	switch x := v.(type) {
	case [16]byte:
		return cypher.TextValue(uuid.UUID(x).String())
	case driver.Valuer:
		if out, err := x.Value(); err == nil {
			return cypher.FromAny(out)
		}
	}
	return cypher.FromAny(v)
}

func (c *pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
