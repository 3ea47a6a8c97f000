package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/standings"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// FileSource reads the results document from the local filesystem on every
// Load.
type FileSource struct {
	path   string
	logger *logging.Logger
}

func NewFileSource(path string, logger *logging.Logger) *FileSource {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileSource{path: strings.TrimSpace(path), logger: logger}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) (standings.Document, error) {
	if err := ctx.Err(); err != nil {
		return standings.Document{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return standings.Document{}, fmt.Errorf("read results file %s: %w", s.path, err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return standings.Document{}, fmt.Errorf("results file %s: %w", s.path, err)
	}

	s.logger.DebugContext(ctx, "results file loaded", "path", s.path, "bytes", len(data), "matchdays", len(doc.Matchdays))
	return doc, nil
}
