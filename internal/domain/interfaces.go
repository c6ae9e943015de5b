package domain

import "context"

// TextExporter writes the .txt file for a generated trade.
type TextExporter interface {
	Export(ctx context.Context, text *TradeText) (string, error)
}

// Clipboard copies text blocks for pasting into chat.
type Clipboard interface {
	Copy(text string) error
}
