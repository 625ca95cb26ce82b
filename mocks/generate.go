package mocks

//go:generate mockgen -destination=./mock_trade_sink.go -package=mocks github.com/rxtech-lab/argo-paper-agent/internal/tradestore TradeSink
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/argo-paper-agent/internal/strategy Strategy
//go:generate mockgen -destination=./mock_clock.go -package=mocks github.com/rxtech-lab/argo-paper-agent/internal/clock Clock
//go:generate mockgen -destination=./mock_position_sizer.go -package=mocks github.com/rxtech-lab/argo-paper-agent/internal/risk PositionSizer
