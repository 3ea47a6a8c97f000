package standings

import "context"

// Source loads the raw results document from wherever the league keeps it.
// Implementations return an already normalised Document.
type Source interface {
	Name() string
	Load(ctx context.Context) (Document, error)
}
