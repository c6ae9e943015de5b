package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vitos/trade_text_builder/internal/domain"
)

type TextBuilder struct{}

func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

// Build renders the chat messages for a trade. Prices keep the entry's decimals.
func (b *TextBuilder) Build(req *domain.TradeRequest, levels *domain.TradeLevels) *domain.TradeText {
	decs := req.Decimals
	t := &domain.TradeText{
		Symbol:   req.Symbol,
		Side:     req.Side,
		Entry:    FormatFixed(req.Entry, decs),
		StopLoss: FormatFixed(levels.StopLoss, decs),
		TP1:      FormatFixed(levels.TakeProfit1, decs),
		TP2:      FormatFixed(levels.TakeProfit2, decs),
		TP3:      FormatFixed(levels.TakeProfit3, decs),
	}

	t.Headline = fmt.Sprintf("Entriamo ora a Mercato - %s %s %s  -  Margine %s%%\n🟥SL %s  -  🟩TP1 %s  •  🟩TP2 %s  •  🟩TP3 %s",
		t.Symbol, t.Side, t.Entry, FormatFixed(levels.MarginPct, 0),
		t.StopLoss, t.TP1, t.TP2, t.TP3)

	t.ExtraInfo = fmt.Sprintf("SL distance: %s%% (≈%s$) | Risk: %s%% | Leverage: %sx",
		FormatFixed(levels.MovePct, 2), FormatFixed(req.StopDistance, 0),
		FormatFixed(req.RiskPct, 2), FormatFixed(req.Leverage, 0))

	t.TP1Update = "✅ Take Profit 1 preso a " + t.TP1
	t.TP2Update = "✅ Take Profit 2 preso a " + t.TP2
	t.TP3Update = "✅ Take Profit 3 preso a " + t.TP3
	t.SLUpdate = "❌ Stop Loss preso a " + t.StopLoss
	t.BreakEven = "🟦 Break Even preso a " + t.Entry
	t.FileName = FileName(t.Symbol, t.Side, t.Entry)

	return t
}

// FormatFixed rounds half to even and pads to exactly places digits.
func FormatFixed(d decimal.Decimal, places int32) string {
	return d.RoundBank(places).StringFixed(places)
}

var fileNameReplacer = strings.NewReplacer("/", "-", `\`, "-")

// FileName returns "{symbol}_{direction}_{entry}.txt".
func FileName(symbol string, side domain.Side, entry string) string {
	return fileNameReplacer.Replace(fmt.Sprintf("%s_%s_%s.txt", symbol, side, entry))
}

// CountDecimals counts the characters after the first dot.
func CountDecimals(s string) int32 {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return int32(len(s) - i - 1)
	}
	return 0
}
