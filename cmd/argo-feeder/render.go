package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for field names.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(20)

	// BoxStyle frames a block of fields.
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

func formatOptionalPrice(v optional.Option[float64]) string {
	if v.IsNone() {
		return "-"
	}

	return fmt.Sprintf("%.4f", v.Unwrap())
}

func formatOptionalTime(v optional.Option[time.Time]) string {
	if v.IsNone() {
		return "-"
	}

	return v.Unwrap().Format(time.RFC3339)
}

// formatPnL colors positive values green and negative values red.
func formatPnL(v float64) string {
	s := fmt.Sprintf("%+.4f", v)

	switch {
	case v > 0:
		return profitStyle.Render(s)
	case v < 0:
		return lossStyle.Render(s)
	default:
		return s
	}
}

func renderAccount(state types.AccountState) string {
	rows := []string{
		TitleStyle.Render("Account"),
		row("Balance", fmt.Sprintf("%.4f", state.Balance)),
		row("Equity", fmt.Sprintf("%.4f", state.Equity)),
		row("Realized PnL", formatPnL(state.RealizedPnL)),
		row("Position", string(state.PositionSide)),
		row("Size", fmt.Sprintf("%.4f", state.PositionSize)),
		row("Avg entry", fmt.Sprintf("%.4f", state.AvgEntryPrice)),
		row("Last price", formatOptionalPrice(state.LastPrice)),
		row("Take profit", formatOptionalPrice(state.TakeProfitPrice)),
		row("Stop loss", formatOptionalPrice(state.StopLossPrice)),
		row("Notional", formatOptionalPrice(state.PositionNotional)),
		row("Opened at", formatOptionalTime(state.PositionOpenTime)),
		row("Updated at", state.UpdatedAt.Format(time.RFC3339)),
	}

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderTrades(trades []types.TradeEvent) string {
	if len(trades) == 0 {
		return "No trades recorded"
	}

	header := fmt.Sprintf("%-20s %-4s %-10s %12s %10s %12s  %s", "TIME", "SIDE", "SYMBOL", "PRICE", "VOLUME", "PNL", "REASON")
	lines := []string{TitleStyle.Render(header)}

	for _, t := range trades {
		pnl := fmt.Sprintf("%12s", "")
		if t.Side == types.TradeSideSell {
			pnl = formatPnL(t.RealizedPnL)
			pnl = strings.Repeat(" ", max(0, 12-lipgloss.Width(pnl))) + pnl
		}

		lines = append(lines, fmt.Sprintf("%-20s %-4s %-10s %12.4f %10.4f %s  %s",
			t.Timestamp.Format(time.DateTime), t.Side, t.Symbol, t.Price, t.Volume, pnl, t.Reason))
	}

	return strings.Join(lines, "\n")
}

func renderStats(stats types.TradeStats) string {
	rows := []string{
		TitleStyle.Render(fmt.Sprintf("Stats (%s)", stats.Strategy)),
		row("Session start", stats.SessionStart.Format(time.RFC3339)),
		row("Equity", fmt.Sprintf("%.4f", stats.Equity)),
		row("Round trips", fmt.Sprintf("%d", stats.TradeResult.NumberOfTrades)),
		row("Win rate", fmt.Sprintf("%.2f%%", stats.TradeResult.WinRate*100)),
		row("Realized PnL", formatPnL(stats.TradePnl.RealizedPnL)),
		row("Unrealized PnL", formatPnL(stats.TradePnl.UnrealizedPnL)),
		row("Max drawdown", fmt.Sprintf("%.4f", stats.TradeResult.MaxDrawdown)),
		row("Avg hold (s)", fmt.Sprintf("%d", stats.TradeHoldingTime.Avg)),
	}

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
