package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
)

// maxBinanceKlines is the largest page the klines endpoint serves.
const maxBinanceKlines = 1000

// BinanceSource fetches recent klines from the Binance REST API and turns them into ticks.
type BinanceSource struct {
	client   *binance.Client
	symbol   string
	interval string
	limit    int
}

// BinanceOption customizes a BinanceSource.
type BinanceOption func(*BinanceSource)

// WithBinanceBaseURL points the source at a different REST endpoint.
func WithBinanceBaseURL(url string) BinanceOption {
	return func(s *BinanceSource) {
		s.client.BaseURL = url
	}
}

// NewBinanceSource creates a source for the last limit klines of symbol at interval (1m, 5m, 1h...).
func NewBinanceSource(symbol, interval string, limit int, opts ...BinanceOption) (*BinanceSource, error) {
	if symbol == "" {
		return nil, errors.New(errors.ErrCodeInvalidFeedOptions, "binance symbol is required")
	}

	if interval == "" {
		interval = "1m"
	}

	if limit <= 0 || limit > maxBinanceKlines {
		return nil, errors.Newf(errors.ErrCodeInvalidFeedOptions, "binance limit must be between 1 and %d", maxBinanceKlines)
	}

	s := &BinanceSource{
		client:   binance.NewClient("", ""),
		symbol:   symbol,
		interval: interval,
		limit:    limit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *BinanceSource) Name() string {
	return fmt.Sprintf("binance:%s@%s", s.symbol, s.interval)
}

// Load fetches the klines and returns one tick per kline keyed by its open time.
func (s *BinanceSource) Load(ctx context.Context) ([]types.MarketTick, error) {
	klines, err := s.client.NewKlinesService().
		Symbol(s.symbol).
		Interval(s.interval).
		Limit(s.limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeedRequestFailed, err, "failed to fetch klines for %s", s.symbol)
	}

	ticks := make([]types.MarketTick, 0, len(klines))

	for _, k := range klines {
		tick, err := s.toTick(k)
		if err != nil {
			return nil, err
		}

		ticks = append(ticks, tick)
	}

	return ticks, nil
}

func (s *BinanceSource) toTick(k *binance.Kline) (types.MarketTick, error) {
	values := make([]float64, 5)

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.MarketTick{}, errors.Wrapf(errors.ErrCodeFeedParseFailed, err, "invalid kline value %q", raw)
		}

		values[i] = v
	}

	return types.MarketTick{
		Symbol:    s.symbol,
		Timestamp: time.UnixMilli(k.OpenTime).UTC(),
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}, nil
}
