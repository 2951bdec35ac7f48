package feed

import (
	"context"
	"fmt"
	"os"

	"money_saver/internal/domain/entity"
)

// FileFeed reads deals.json from disk.
type FileFeed struct {
	path string
}

func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

func (f *FileFeed) Fetch(ctx context.Context) ([]entity.Deal, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return Decode(ctx, data)
}

func (f *FileFeed) String() string {
	return f.path
}
