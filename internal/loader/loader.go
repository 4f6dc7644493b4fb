package loader

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dohalabs/bankgen/internal/dataset"
	"github.com/fatih/color"
)

// Loader pushes the generated flat files into the target store, table by
// table, in bounded-size row batches.
type Loader struct {
	db        *sql.DB
	provider  string
	batchSize int
	qb        squirrel.StatementBuilderType
}

// Result summarizes one table's load.
type Result struct {
	Table   string
	Rows    int
	Batches int
}

func New(db *sql.DB, provider string, batchSize int) *Loader {
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	if provider == "postgresql" || provider == "postgres" {
		qb = qb.PlaceholderFormat(squirrel.Dollar)
	}

	return &Loader{
		db:        db,
		provider:  provider,
		batchSize: batchSize,
		qb:        qb,
	}
}

// LoadAll loads every table in the fixed dependency order: customers,
// then accounts, then transactions. A failing table aborts the run;
// tables already loaded stay in place.
func (l *Loader) LoadAll(ctx context.Context, dir string) ([]Result, error) {
	var results []Result

	for _, schema := range Schemas() {
		path := filepath.Join(dir, schema.File)
		result, err := l.LoadTable(ctx, path, schema)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// LoadTable loads one (file, table) pair with full-replace semantics: the
// first batch recreates the table fresh, later batches append. A batch
// failure is logged with sample rows and column types, then returned
// unchanged; batches already committed are not rolled back.
func (l *Loader) LoadTable(ctx context.Context, path string, schema TableSchema) (Result, error) {
	result := Result{Table: schema.Name}

	reader, err := dataset.OpenChunkReader(path)
	if err != nil {
		return result, err
	}
	defer reader.Close()

	// Only schema columns present in the file are loaded; the rest of the
	// table stays NULL. Extra file columns are ignored.
	columns, indexes := matchColumns(schema, reader.Header())
	if len(columns) == 0 {
		return result, fmt.Errorf("file %s has no columns matching table %s", path, schema.Name)
	}

	color.Cyan("📥 Loading %s into table '%s' (batch size %d)...", path, schema.Name, l.batchSize)

	recreated := false
	for {
		rows, err := reader.Next(l.batchSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read batch %d of %s: %w", result.Batches+1, path, err)
		}

		if !recreated {
			if err := l.recreateTable(ctx, schema); err != nil {
				return result, err
			}
			recreated = true
		}

		result.Batches++
		if err := l.insertBatch(ctx, schema, columns, indexes, rows); err != nil {
			l.logBatchFailure(schema, columns, result.Batches, rows, err)
			return result, fmt.Errorf("failed to load batch %d into '%s': %w", result.Batches, schema.Name, err)
		}
		result.Rows += len(rows)
	}

	color.Green("✅ Loaded %d rows into '%s' (%d batches)", result.Rows, schema.Name, result.Batches)
	return result, nil
}

// matchColumns intersects the schema with the file header, keeping schema
// order. indexes holds each matched column's position in the file rows.
func matchColumns(schema TableSchema, header []string) ([]Column, []int) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}

	var columns []Column
	var indexes []int
	for _, col := range schema.Columns {
		if idx, ok := position[col.Name]; ok {
			columns = append(columns, col)
			indexes = append(indexes, idx)
		}
	}
	return columns, indexes
}

func (l *Loader) recreateTable(ctx context.Context, schema TableSchema) error {
	if _, err := l.db.ExecContext(ctx, schema.DropSQL()); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", schema.Name, err)
	}
	if _, err := l.db.ExecContext(ctx, schema.CreateSQL(l.provider)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", schema.Name, err)
	}
	return nil
}

// maxBindParams is the bind-variable ceiling per statement. SQLite rejects
// statements with more than 32766 variables; the server providers allow
// 65535.
func maxBindParams(provider string) int {
	switch provider {
	case "sqlite", "sqlite3":
		return 32766
	default:
		return 65535
	}
}

// insertBatch inserts one batch of rows. A multi-row insert binds
// len(columns) variables per row, so a batch whose total would exceed the
// provider's ceiling is split into several statements.
func (l *Loader) insertBatch(ctx context.Context, schema TableSchema, columns []Column, indexes []int, rows [][]string) error {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	maxRows := maxBindParams(l.provider) / len(columns)
	for start := 0; start < len(rows); start += maxRows {
		end := min(start+maxRows, len(rows))

		builder := l.qb.Insert(schema.Name).Columns(names...)
		for _, row := range rows[start:end] {
			values, err := normalizeRow(columns, indexes, row)
			if err != nil {
				return err
			}
			builder = builder.Values(values...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert statement: %w", err)
		}

		if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

// normalizeRow applies the schema-aware type normalization to one row:
// date columns become time values (unparsable ones become NULL), numeric
// columns become floats, and string columns stay strings with defaults
// substituted for empties.
func normalizeRow(columns []Column, indexes []int, row []string) ([]interface{}, error) {
	values := make([]interface{}, len(columns))
	for i, col := range columns {
		if indexes[i] >= len(row) {
			values[i] = nil
			continue
		}
		raw := row[indexes[i]]

		switch col.Kind {
		case KindDate, KindTimestamp:
			values[i] = parseTemporal(raw)
		case KindNumeric:
			if raw == "" {
				values[i] = nil
				continue
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid numeric value %q: %w", col.Name, raw, err)
			}
			values[i] = f
		default:
			if raw == "" && col.Default != "" {
				raw = col.Default
			}
			values[i] = raw
		}
	}
	return values, nil
}

// parseTemporal coerces a date/timestamp string to a time value, or to
// NULL when it does not parse. A bad date never fails the batch.
func parseTemporal(raw string) interface{} {
	for _, layout := range []string{dataset.TimestampFormat, dataset.DateFormat} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return nil
}

// logBatchFailure prints the offending batch's sample rows and column
// types before the error propagates.
func (l *Loader) logBatchFailure(schema TableSchema, columns []Column, batch int, rows [][]string, err error) {
	color.Red("❌ Error loading batch %d into '%s': %v", batch, schema.Name, err)

	var types []string
	for _, col := range columns {
		types = append(types, fmt.Sprintf("%s=%s", col.Name, col.Kind))
	}
	color.Yellow("   column types: %s", strings.Join(types, ", "))

	sample := rows
	if len(sample) > 5 {
		sample = sample[:5]
	}
	for _, row := range sample {
		color.Yellow("   sample row: %s", strings.Join(row, ", "))
	}
}
