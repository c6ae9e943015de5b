package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vitos/trade_text_builder/internal/domain"
	"go.uber.org/zap"
)

// TradeInput is the raw form submission.
type TradeInput struct {
	Symbol       string  `json:"symbol"`
	Direction    string  `json:"direction"`
	Entry        string  `json:"entry"`
	RiskPct      float64 `json:"risk_pct"`
	Leverage     float64 `json:"leverage"`
	StopDistance float64 `json:"stop_distance"`
}

// TradeResult bundles the computed levels with their rendered text.
type TradeResult struct {
	Request *domain.TradeRequest `json:"-"`
	Levels  *domain.TradeLevels  `json:"levels"`
	Text    *domain.TradeText    `json:"text"`
}

// Plain decimal notation only; exponents and separators are rejected.
var entryPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

type TradeService struct {
	defaultSymbol string
	calculator    *TradeCalculator
	builder       *TextBuilder
	logger        *zap.Logger
}

func NewTradeService(defaultSymbol string, logger *zap.Logger) *TradeService {
	if defaultSymbol == "" {
		defaultSymbol = "ETH"
	}
	return &TradeService{
		defaultSymbol: strings.ToUpper(defaultSymbol),
		calculator:    NewTradeCalculator(),
		builder:       NewTextBuilder(),
		logger:        logger,
	}
}

// Generate validates the input, computes the levels and renders the text.
func (s *TradeService) Generate(ctx context.Context, in TradeInput) (*TradeResult, error) {
	req, err := s.NewRequest(in)
	if err != nil {
		s.logger.Warn("Rejected trade input", zap.String("entry", in.Entry), zap.String("direction", in.Direction), zap.Error(err))
		return nil, err
	}

	levels, err := s.calculator.Calculate(req)
	if err != nil {
		s.logger.Warn("Failed to calculate levels", zap.String("symbol", req.Symbol), zap.Error(err))
		return nil, err
	}

	text := s.builder.Build(req, levels)
	s.logger.Info("Trade text generated",
		zap.String("symbol", req.Symbol),
		zap.String("side", string(req.Side)),
		zap.String("entry", text.Entry),
		zap.String("sl", text.StopLoss),
		zap.String("tp1", text.TP1),
		zap.String("tp2", text.TP2),
		zap.String("tp3", text.TP3),
		zap.String("margin_pct", FormatFixed(levels.MarginPct, 2)),
	)

	return &TradeResult{Request: req, Levels: levels, Text: text}, nil
}

// NewRequest builds an immutable TradeRequest from raw input.
func (s *TradeService) NewRequest(in TradeInput) (*domain.TradeRequest, error) {
	entry, decs, err := ParseEntry(in.Entry)
	if err != nil {
		return nil, err
	}

	side, err := domain.ParseSide(in.Direction)
	if err != nil {
		return nil, err
	}

	risk, err := nonNegative("risk", in.RiskPct)
	if err != nil {
		return nil, err
	}
	leverage, err := nonNegative("leverage", in.Leverage)
	if err != nil {
		return nil, err
	}
	dist, err := nonNegative("stop distance", in.StopDistance)
	if err != nil {
		return nil, err
	}

	return &domain.TradeRequest{
		Symbol:       s.normalizeSymbol(in.Symbol),
		Side:         side,
		Entry:        entry,
		EntryText:    strings.TrimSpace(in.Entry),
		Decimals:     decs,
		StopDistance: dist,
		RiskPct:      risk,
		Leverage:     leverage,
	}, nil
}

func (s *TradeService) normalizeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return s.defaultSymbol
	}
	return symbol
}

// ParseEntry parses the entry price text and returns its decimal digit count.
func ParseEntry(raw string) (decimal.Decimal, int32, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return decimal.Zero, 0, fmt.Errorf("%w: please enter an entry price", domain.ErrInvalidInput)
	}
	if !entryPattern.MatchString(text) {
		return decimal.Zero, 0, fmt.Errorf("%w: invalid entry format, use numbers only (e.g., 3543.5)", domain.ErrInvalidInput)
	}

	entry, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("%w: invalid entry format, use numbers only (e.g., 3543.5)", domain.ErrInvalidInput)
	}
	if !entry.IsPositive() {
		return decimal.Zero, 0, fmt.Errorf("%w: entry price must be greater than 0", domain.ErrInvalidInput)
	}

	return entry, CountDecimals(text), nil
}

func nonNegative(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	if v < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s must be >= 0", domain.ErrInvalidInput, field)
	}
	return decimal.NewFromFloat(v), nil
}

// UserMessage strips the error kind prefix for display.
func UserMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	}
	return err.Error()
}
