package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vitos/trade_text_builder/internal/domain"
)

// FileExporter writes trade texts as .txt files into a directory.
type FileExporter struct {
	dir string
}

func NewFileExporter(dir string) (*FileExporter, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir %s: %w", dir, err)
	}
	return &FileExporter{dir: dir}, nil
}

// Export writes headline and summary to {dir}/{file name} and returns the path.
func (e *FileExporter) Export(ctx context.Context, text *domain.TradeText) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, filepath.Base(text.FileName))
	if err := os.WriteFile(path, []byte(text.FileBody()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
