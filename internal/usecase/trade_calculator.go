package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vitos/trade_text_builder/internal/domain"
)

var (
	tp1Mult = decimal.NewFromFloat(0.5)
	tp2Mult = decimal.NewFromInt(1)
	tp3Mult = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

type TradeCalculator struct{}

func NewTradeCalculator() *TradeCalculator {
	return &TradeCalculator{}
}

// Calculate derives stop loss, take profits and margin from a request.
// TP1/TP2/TP3 sit at 0.5x, 1x and 2x the stop distance from entry.
func (c *TradeCalculator) Calculate(req *domain.TradeRequest) (*domain.TradeLevels, error) {
	if !req.Entry.IsPositive() {
		return nil, fmt.Errorf("%w: entry price must be greater than 0", domain.ErrInvalidInput)
	}

	dist := req.StopDistance
	levels := &domain.TradeLevels{}

	switch req.Side {
	case domain.SideLong:
		levels.StopLoss = req.Entry.Sub(dist)
		levels.TakeProfit1 = req.Entry.Add(dist.Mul(tp1Mult))
		levels.TakeProfit2 = req.Entry.Add(dist.Mul(tp2Mult))
		levels.TakeProfit3 = req.Entry.Add(dist.Mul(tp3Mult))
	case domain.SideShort:
		levels.StopLoss = req.Entry.Add(dist)
		levels.TakeProfit1 = req.Entry.Sub(dist.Mul(tp1Mult))
		levels.TakeProfit2 = req.Entry.Sub(dist.Mul(tp2Mult))
		levels.TakeProfit3 = req.Entry.Sub(dist.Mul(tp3Mult))
	default:
		return nil, fmt.Errorf("%w: invalid direction %q", domain.ErrInvalidInput, req.Side)
	}

	levels.MoveFrac = c.MoveFraction(req.Entry, dist)
	levels.MovePct = levels.MoveFrac.Mul(hundred)
	levels.MarginPct = c.MarginPct(req.RiskPct, req.Entry, dist, req.Leverage)

	return levels, nil
}

// MoveFraction is distance / entry, or zero for a zero entry.
func (c *TradeCalculator) MoveFraction(entry, distance decimal.Decimal) decimal.Decimal {
	if entry.IsZero() {
		return decimal.Zero
	}
	return distance.Div(entry)
}

// MarginPct is risk / (fraction * leverage) with fraction = distance / entry.
// Evaluated as risk * entry / (distance * leverage).
// Zero when leverage <= 0 or the fraction is zero.
func (c *TradeCalculator) MarginPct(riskPct, entry, distance, leverage decimal.Decimal) decimal.Decimal {
	if !leverage.IsPositive() || c.MoveFraction(entry, distance).IsZero() {
		return decimal.Zero
	}
	return riskPct.Mul(entry).Div(distance.Mul(leverage))
}
