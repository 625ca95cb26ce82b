package feed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

var requiredPriceColumns = []string{"open", "high", "low", "close", "volume"}

// CSVSource replays ticks from a CSV file with a header row.
//
// The file needs a timestamp (or time) column and open, high, low, close, volume columns.
// A symbol column is optional; rows without one use the fallback symbol.
type CSVSource struct {
	path           string
	fallbackSymbol string
	logger         *logger.Logger
	sq             squirrel.StatementBuilderType
}

// NewCSVSource creates a source over the CSV file at path.
func NewCSVSource(path, fallbackSymbol string, log *logger.Logger) *CSVSource {
	return &CSVSource{
		path:           path,
		fallbackSymbol: fallbackSymbol,
		logger:         log,
		sq:             squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *CSVSource) Name() string {
	return fmt.Sprintf("csv:%s", s.path)
}

// Load reads the whole file through an in-memory DuckDB view and returns the rows ordered by timestamp.
func (s *CSVSource) Load(ctx context.Context) ([]types.MarketTick, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeedReadFailed, err, "cannot read csv file %s", s.path)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFeedReadFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	escaped := strings.ReplaceAll(s.path, "'", "''")
	view := fmt.Sprintf("CREATE VIEW ticks AS SELECT * FROM read_csv_auto('%s', header=true)", escaped)

	if _, err := db.ExecContext(ctx, view); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeedReadFailed, err, "failed to read csv file %s", s.path)
	}

	columns, err := s.columns(ctx, db)
	if err != nil {
		return nil, err
	}

	timeColumn, err := pickColumn(columns, "timestamp", "time")
	if err != nil {
		return nil, err
	}

	for _, name := range requiredPriceColumns {
		if !columns[name] {
			return nil, errors.Newf(errors.ErrCodeFeedParseFailed, "csv file is missing the %s column", name)
		}
	}

	symbolExpr := "NULL"
	if columns["symbol"] {
		symbolExpr = "CAST(symbol AS VARCHAR)"
	}

	query, args, err := s.sq.
		Select(
			fmt.Sprintf("%s AS symbol", symbolExpr),
			fmt.Sprintf("CAST(%s AS TIMESTAMP) AS ts", quoteIdent(timeColumn)),
			"CAST(open AS DOUBLE)",
			"CAST(high AS DOUBLE)",
			"CAST(low AS DOUBLE)",
			"CAST(close AS DOUBLE)",
			"CAST(volume AS DOUBLE)",
		).
		From("ticks").
		OrderBy("ts ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFeedReadFailed, "failed to build csv query", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeedParseFailed, err, "failed to parse csv file %s", s.path)
	}
	defer rows.Close()

	ticks := make([]types.MarketTick, 0)

	for rows.Next() {
		var (
			symbol sql.NullString
			ts     time.Time
			tick   types.MarketTick
		)

		if err := rows.Scan(&symbol, &ts, &tick.Open, &tick.High, &tick.Low, &tick.Close, &tick.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFeedParseFailed, "failed to scan csv row", err)
		}

		tick.Symbol = s.fallbackSymbol
		if symbol.Valid && symbol.String != "" {
			tick.Symbol = symbol.String
		}

		tick.Timestamp = ts.UTC()
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFeedParseFailed, "failed to iterate csv rows", err)
	}

	s.logger.Debug("Loaded csv ticks", zap.String("path", s.path), zap.Int("count", len(ticks)))

	return ticks, nil
}

func (s *CSVSource) columns(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	query, args, err := s.sq.
		Select("column_name").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": "ticks"}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFeedReadFailed, "failed to build column query", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFeedReadFailed, "failed to list csv columns", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFeedReadFailed, "failed to scan column name", err)
		}

		columns[strings.ToLower(name)] = true
	}

	return columns, rows.Err()
}

func pickColumn(columns map[string]bool, candidates ...string) (string, error) {
	for _, c := range candidates {
		if columns[c] {
			return c, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeFeedParseFailed, "csv file needs one of the columns %s", strings.Join(candidates, ", "))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
