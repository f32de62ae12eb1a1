package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"complaints-dashboard/models"
	"complaints-dashboard/utils"
)

// Driver names registered by the imported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// tableNameRegexp accepts plain or schema-qualified identifiers.
var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableSource is one entity and the table holding its complaints.
type TableSource struct {
	Entity string
	Table  string
}

var _ SourceReader = (*SQLReader)(nil)

// SQLReader loads complaint tables from a SQL database (PostgreSQL or SQLite).
type SQLReader struct {
	db     *sql.DB
	tables []TableSource
	logger *utils.Logger
}

// OpenSQLReader opens a connection with the given driver and waits for the
// database to answer a ping, retrying with back-off.
func OpenSQLReader(ctx context.Context, driver, dsn string, tables []TableSource, maxRetries int, logger *utils.Logger) (*SQLReader, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: maxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do(ctx, driver+"-ping", func(ctx context.Context) error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", driver, err)
	}

	return NewSQLReader(db, tables, logger), nil
}

// NewSQLReader wraps an already open database.
func NewSQLReader(db *sql.DB, tables []TableSource, logger *utils.Logger) *SQLReader {
	return &SQLReader{db: db, tables: tables, logger: logger}
}

// Read loads every configured table in order.
func (r *SQLReader) Read(ctx context.Context) ([]models.SourceTable, error) {
	tables := make([]models.SourceTable, 0, len(r.tables))
	for _, src := range r.tables {
		table, err := r.readTable(ctx, src)
		if err != nil {
			return nil, err
		}
		r.logger.Info("[sql] Loaded %d rows for %s from %s", len(table.Rows), src.Entity, src.Table)
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *SQLReader) readTable(ctx context.Context, src TableSource) (models.SourceTable, error) {
	if !tableNameRegexp.MatchString(src.Table) {
		return models.SourceTable{}, fmt.Errorf("sql: invalid table name %q", src.Table)
	}

	query := fmt.Sprintf(`SELECT "id", "tempo", "local", "status", "descricao" FROM %s`, src.Table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return models.SourceTable{}, fmt.Errorf("sql: query %s: %w", src.Table, err)
	}
	defer rows.Close()

	table := models.SourceTable{Entity: src.Entity}
	for rows.Next() {
		var id, tempo, local, status, descricao sql.NullString
		if err := rows.Scan(&id, &tempo, &local, &status, &descricao); err != nil {
			return models.SourceTable{}, fmt.Errorf("sql: scan %s: %w", src.Table, err)
		}
		table.Rows = append(table.Rows, models.RawComplaint{
			ID:          id.String,
			Time:        tempo.String,
			Location:    local.String,
			Status:      status.String,
			Description: descricao.String,
		})
	}
	if err := rows.Err(); err != nil {
		return models.SourceTable{}, fmt.Errorf("sql: read %s: %w", src.Table, err)
	}
	return table, nil
}

// Close closes the database connection.
func (r *SQLReader) Close() error {
	return r.db.Close()
}
