package domain

import "github.com/shopspring/decimal"

// TradeRequest is a single submission of the trade form.
type TradeRequest struct {
	Symbol       string
	Side         Side
	Entry        decimal.Decimal
	EntryText    string // literal entry as typed, trimmed
	Decimals     int32  // digits after the dot in EntryText
	StopDistance decimal.Decimal
	RiskPct      decimal.Decimal
	Leverage     decimal.Decimal
}

// TradeLevels holds the prices derived from a TradeRequest.
type TradeLevels struct {
	StopLoss    decimal.Decimal `json:"stop_loss"`
	TakeProfit1 decimal.Decimal `json:"take_profit_1"`
	TakeProfit2 decimal.Decimal `json:"take_profit_2"`
	TakeProfit3 decimal.Decimal `json:"take_profit_3"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
	MoveFrac    decimal.Decimal `json:"move_fraction"`
	MovePct     decimal.Decimal `json:"move_pct"`
}

// TradeText is the rendered, copyable output of a trade.
type TradeText struct {
	Symbol    string `json:"symbol"`
	Side      Side   `json:"direction"`
	Entry     string `json:"entry"`
	StopLoss  string `json:"stop_loss"`
	TP1       string `json:"tp1"`
	TP2       string `json:"tp2"`
	TP3       string `json:"tp3"`
	Headline  string `json:"headline"`
	ExtraInfo string `json:"extra_info"`
	TP1Update string `json:"tp1_update"`
	TP2Update string `json:"tp2_update"`
	TP3Update string `json:"tp3_update"`
	SLUpdate  string `json:"sl_update"`
	BreakEven string `json:"break_even"`
	FileName  string `json:"file_name"`
}

// FileBody is the content of the downloadable .txt file.
func (t *TradeText) FileBody() string {
	return t.Headline + "\n\n" + t.ExtraInfo
}

// Settings are the sidebar values applied to every request.
type Settings struct {
	Symbol       string
	RiskPct      float64
	Leverage     float64
	StopDistance float64
}
