package tradestore

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBStore persists trade events in a DuckDB database file.
type DuckDBStore struct {
	db     *sql.DB
	path   string
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
	mu     sync.Mutex
}

// NewDuckDBStore opens (or creates) the database at path and prepares the trade_events table.
// Use ":memory:" for a throwaway store.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradeSinkUnavailable, "failed to create data directory", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		log.Error("Failed to open trade database", zap.String("path", path), zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeTradeSinkUnavailable, "failed to open trade database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeTradeSinkUnavailable, "failed to connect to trade database", err)
	}

	store := &DuckDBStore{
		db:     db,
		path:   path,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		mu:     sync.Mutex{},
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (s *DuckDBStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS trade_event_seq START 1;
		CREATE TABLE IF NOT EXISTS trade_events (
			seq BIGINT DEFAULT nextval('trade_event_seq'),
			id TEXT PRIMARY KEY,
			symbol TEXT,
			side TEXT,
			price DOUBLE,
			volume DOUBLE,
			realized_pnl DOUBLE,
			balance_after DOUBLE,
			position_size_after DOUBLE,
			timestamp TIMESTAMP,
			reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeSinkUnavailable, "failed to create trade_events table", err)
	}

	return nil
}

// Save implements TradeSink.
func (s *DuckDBStore) Save(trade types.TradeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errors.New(errors.ErrCodeTradeSinkUnavailable, "trade database is closed")
	}

	_, err := s.sq.
		Insert("trade_events").
		Columns(
			"id", "symbol", "side", "price", "volume", "realized_pnl",
			"balance_after", "position_size_after", "timestamp", "reason",
		).
		Values(
			trade.ID, trade.Symbol, string(trade.Side), trade.Price, trade.Volume, trade.RealizedPnL,
			trade.BalanceAfter, trade.PositionSizeAfter, trade.Timestamp.UTC(), trade.Reason,
		).
		RunWith(s.db).
		Exec()
	if err != nil {
		return errors.Wrapf(errors.ErrCodeTradeSinkFailed, err, "failed to insert trade %s", trade.ID)
	}

	return nil
}

// ListAll implements TradeSink.
func (s *DuckDBStore) ListAll() ([]types.TradeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errors.New(errors.ErrCodeTradeSinkUnavailable, "trade database is closed")
	}

	rows, err := s.sq.
		Select(
			"id", "symbol", "side", "price", "volume", "realized_pnl",
			"balance_after", "position_size_after", "timestamp", "reason",
		).
		From("trade_events").
		OrderBy("seq ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	trades := make([]types.TradeEvent, 0)

	for rows.Next() {
		var trade types.TradeEvent

		var side string

		err := rows.Scan(
			&trade.ID,
			&trade.Symbol,
			&side,
			&trade.Price,
			&trade.Volume,
			&trade.RealizedPnL,
			&trade.BalanceAfter,
			&trade.PositionSizeAfter,
			&trade.Timestamp,
			&trade.Reason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.Side = types.TradeSide(side)
		trade.Timestamp = trade.Timestamp.UTC()
		trades = append(trades, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// Path returns the database location.
func (s *DuckDBStore) Path() string {
	return s.path
}

// Close releases database resources.
func (s *DuckDBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeSinkFailed, "failed to close trade database", err)
	}

	s.logger.Debug("Closed trade database", zap.String("path", s.path))

	return nil
}
