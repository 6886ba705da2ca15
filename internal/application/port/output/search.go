package output

import (
	"context"

	"travel-agent/internal/domain/entity"
)

type SearchPort interface {
	Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error)
}
