package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"netzero-nexus/internal/models"

	"github.com/lib/pq"
)

// PostgresSource loads the initiative table from PostgreSQL
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres connects and pings the database behind dsn.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresSource{db: db}, nil
}

func (p *PostgresSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// ListTables returns the tables of the public schema.
func (p *PostgresSource) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// Load reads every row of table and decodes it like a spreadsheet, so the
// same header validation applies.
func (p *PostgresSource) Load(ctx context.Context, table string) (*models.Dataset, error) {
	source := "postgres:" + table
	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(table))

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	raw := [][]string{columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = cellString(v)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	return Decode(source, raw)
}

// cellString renders a scanned driver value the way a spreadsheet cell reads.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		// Handle byte slices (common for strings and numerics in pq)
		return string(val)
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
